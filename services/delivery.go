package services

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// FreeDeliveryThreshold is the subtotal above which delivery is free.
const FreeDeliveryThreshold = 5000

// DefaultDeliveryCost applies when neither the categories nor the location
// give a better answer.
const DefaultDeliveryCost = 300

// CategoryCostLookup resolves the delivery cost configured on a category.
// The second return is false when the category has no configured cost.
type CategoryCostLookup interface {
	CategoryDeliveryCost(ctx context.Context, category string) (float64, bool, error)
}

// DeliveryItem is one unit being shipped. Cart lines are expanded per
// quantity before quoting.
type DeliveryItem struct {
	Category string
}

// DeliveryInput is everything the quote depends on.
type DeliveryInput struct {
	Subtotal float64
	Location string
	Weight   float64
	Items    []DeliveryItem
}

// DeliveryQuote is the result of a delivery-cost calculation. When Success is
// false the numeric fields carry defaults and must not be trusted.
type DeliveryQuote struct {
	DeliveryCost float64 `json:"delivery_cost"`
	Total        float64 `json:"total"`
	Message      string  `json:"message"`
	Success      bool    `json:"success"`
}

// locationTiers maps destination keywords to a flat delivery cost. Tiers are
// checked in order and the last match wins.
var locationTiers = []struct {
	Cost  float64
	Towns []string
}{
	{300, []string{"colombo", "dehiwala", "moratuwa", "kotte", "negombo", "kandy", "galle"}},
	{400, []string{"gampaha", "kalutara", "panadura", "kurunegala", "ratnapura", "matara"}},
	{600, []string{"jaffna", "trincomalee", "batticaloa", "anuradhapura", "vavuniya", "ampara"}},
	{800, []string{"mullaitivu", "kilinochchi", "mannar", "monaragala"}},
}

// CalculateDelivery computes the shipping fee for an order as a
// priority-ordered rule list:
//
//  1. subtotal at or over the free threshold ships free,
//  2. otherwise the base cost is the highest configured cost among the item
//     categories (default 300),
//  3. a recognized destination overrides the base cost,
//  4. weight over 2 kg adds 50 per started kg,
//  5. more than 5 items adds 25 per extra item.
//
// A category lookup error is swallowed: the quote comes back with defaults
// and Success false, and callers must check the flag.
func CalculateDelivery(ctx context.Context, lookup CategoryCostLookup, in DeliveryInput) DeliveryQuote {
	if in.Subtotal >= FreeDeliveryThreshold {
		return DeliveryQuote{
			DeliveryCost: 0,
			Total:        in.Subtotal,
			Message:      fmt.Sprintf("Free delivery for orders of Rs. %d and above", FreeDeliveryThreshold),
			Success:      true,
		}
	}

	cost := float64(DefaultDeliveryCost)
	if len(in.Items) > 0 && lookup != nil {
		base, err := maxCategoryCost(ctx, lookup, in.Items)
		if err != nil {
			return DeliveryQuote{
				DeliveryCost: DefaultDeliveryCost,
				Total:        DefaultDeliveryCost,
				Message:      "Could not calculate delivery cost, using default",
				Success:      false,
			}
		}
		if base > 0 {
			cost = base
		}
	}

	location := strings.ToLower(in.Location)
	if location != "" {
		for _, tier := range locationTiers {
			for _, town := range tier.Towns {
				if strings.Contains(location, town) {
					cost = tier.Cost
				}
			}
		}
	}

	if in.Weight > 2 {
		cost += math.Ceil(in.Weight-2) * 50
	}

	if n := len(in.Items); n > 5 {
		cost += float64(n-5) * 25
	}

	return DeliveryQuote{
		DeliveryCost: cost,
		Total:        in.Subtotal + cost,
		Message:      fmt.Sprintf("Delivery cost Rs. %.0f", cost),
		Success:      true,
	}
}

// maxCategoryCost looks up every distinct category among the items and
// returns the highest configured cost, or 0 when none is configured.
func maxCategoryCost(ctx context.Context, lookup CategoryCostLookup, items []DeliveryItem) (float64, error) {
	seen := map[string]bool{}
	var max float64
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true

		cost, ok, err := lookup.CategoryDeliveryCost(ctx, item.Category)
		if err != nil {
			return 0, err
		}
		if ok && cost > max {
			max = cost
		}
	}
	return max, nil
}
