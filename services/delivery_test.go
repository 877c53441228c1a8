package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	costs map[string]float64
	err   error
}

func (s *stubLookup) CategoryDeliveryCost(_ context.Context, category string) (float64, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	cost, ok := s.costs[category]
	return cost, ok, nil
}

func nItems(n int, category string) []DeliveryItem {
	items := make([]DeliveryItem, n)
	for i := range items {
		items[i] = DeliveryItem{Category: category}
	}
	return items
}

func TestFreeDeliveryOverThreshold(t *testing.T) {
	inputs := []DeliveryInput{
		{Subtotal: 5000},
		{Subtotal: 7500, Location: "Mullaitivu"},
		{Subtotal: 12000, Weight: 18, Items: nItems(30, "sarees")},
	}
	for _, in := range inputs {
		quote := CalculateDelivery(context.Background(), &stubLookup{}, in)
		require.True(t, quote.Success)
		assert.Equal(t, 0.0, quote.DeliveryCost)
		assert.Equal(t, in.Subtotal, quote.Total)
	}
}

func TestDefaultCostWithoutLocationOrItems(t *testing.T) {
	quote := CalculateDelivery(context.Background(), &stubLookup{}, DeliveryInput{Subtotal: 1200})
	require.True(t, quote.Success)
	assert.Equal(t, 300.0, quote.DeliveryCost)
	assert.Equal(t, 1500.0, quote.Total)
}

func TestCategoryBaseCostTakesMaximum(t *testing.T) {
	lookup := &stubLookup{costs: map[string]float64{"sarees": 450, "shirts": 350}}

	items := append(nItems(1, "sarees"), nItems(1, "shirts")...)
	quote := CalculateDelivery(context.Background(), lookup, DeliveryInput{Subtotal: 1000, Items: items})
	require.True(t, quote.Success)
	assert.Equal(t, 450.0, quote.DeliveryCost)
}

func TestCategoryWithoutConfiguredCostFallsBack(t *testing.T) {
	quote := CalculateDelivery(context.Background(), &stubLookup{}, DeliveryInput{
		Subtotal: 1000,
		Items:    nItems(2, "unmapped"),
	})
	require.True(t, quote.Success)
	assert.Equal(t, 300.0, quote.DeliveryCost)
}

func TestLocationTierOverridesBase(t *testing.T) {
	cases := []struct {
		location string
		want     float64
	}{
		{"Colombo 07", 300},
		{"Panadura, Kalutara district", 400},
		{"Jaffna", 600},
		{"Mannar island", 800},
		{"somewhere unrecognized", 300},
	}
	for _, tc := range cases {
		quote := CalculateDelivery(context.Background(), &stubLookup{}, DeliveryInput{
			Subtotal: 2000,
			Location: tc.location,
		})
		require.True(t, quote.Success, tc.location)
		assert.Equal(t, tc.want, quote.DeliveryCost, tc.location)
	}
}

func TestLastMatchingTierWins(t *testing.T) {
	quote := CalculateDelivery(context.Background(), &stubLookup{}, DeliveryInput{
		Subtotal: 2000,
		Location: "between Colombo and Kilinochchi",
	})
	require.True(t, quote.Success)
	assert.Equal(t, 800.0, quote.DeliveryCost)
}

func TestWeightSurcharge(t *testing.T) {
	cases := []struct {
		weight float64
		want   float64
	}{
		{0, 300},
		{2, 300},
		{2.5, 350},
		{3, 350},
		{3.5, 400}, // +50 for each started kg over 2
		{5, 450},
	}
	for _, tc := range cases {
		quote := CalculateDelivery(context.Background(), &stubLookup{}, DeliveryInput{
			Subtotal: 1000,
			Weight:   tc.weight,
		})
		require.True(t, quote.Success)
		assert.Equal(t, tc.want, quote.DeliveryCost, "weight %v", tc.weight)
	}
}

func TestBulkItemSurcharge(t *testing.T) {
	cases := []struct {
		count int
		want  float64
	}{
		{5, 300},
		{6, 325},
		{10, 425},
	}
	for _, tc := range cases {
		quote := CalculateDelivery(context.Background(), &stubLookup{}, DeliveryInput{
			Subtotal: 1000,
			Items:    nItems(tc.count, ""),
		})
		require.True(t, quote.Success)
		assert.Equal(t, tc.want, quote.DeliveryCost, "%d items", tc.count)
	}
}

func TestJaffnaExample(t *testing.T) {
	quote := CalculateDelivery(context.Background(), &stubLookup{}, DeliveryInput{
		Subtotal: 4000,
		Location: "Jaffna",
		Weight:   1,
	})
	require.True(t, quote.Success)
	assert.Equal(t, 600.0, quote.DeliveryCost)
	assert.Equal(t, 4600.0, quote.Total)
}

func TestLookupFailureReturnsDefaults(t *testing.T) {
	lookup := &stubLookup{err: errors.New("connection reset")}
	quote := CalculateDelivery(context.Background(), lookup, DeliveryInput{
		Subtotal: 4000,
		Items:    nItems(1, "sarees"),
	})
	assert.False(t, quote.Success)
	assert.Equal(t, 300.0, quote.DeliveryCost)
	assert.Equal(t, 300.0, quote.Total)
}
