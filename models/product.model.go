package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses.
const (
	ProductInStock    = "instock"
	ProductOutOfStock = "outofstock"
	ProductDisabled   = "disabled"
)

var productStatuses = map[string]bool{
	ProductInStock:    true,
	ProductOutOfStock: true,
	ProductDisabled:   true,
}

// ValidProductStatus reports whether s is a known product status.
func ValidProductStatus(s string) bool {
	return productStatuses[s]
}

// SizeStock holds the inventory for one size variant of a product.
type SizeStock struct {
	Size   string   `json:"size" bson:"size"`
	Stock  int      `json:"stock" bson:"stock"`
	Price  float64  `json:"price,omitempty" bson:"price,omitempty"`
	Colors []string `json:"colors,omitempty" bson:"colors,omitempty"`
}

// Product defines the structure for a catalog product.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProductID   int64              `json:"product_id" bson:"product_id"`
	Name        string             `json:"name" bson:"name"`
	Code        string             `json:"code" bson:"code"`
	Price       float64            `json:"price" bson:"price"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	Subcategory string             `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Image       string             `json:"image" bson:"image"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Sizes       SizeList           `json:"sizes" bson:"sizes"`
	Stock       int                `json:"stock" bson:"stock"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
	ImageBase64 string             `json:"image_base64,omitempty" bson:"-"`
}

// SizeList is a list of size variants. Older seed data stored sizes as a
// {"S": 10, "M": 5} map; UnmarshalBSONValue accepts both shapes so documents
// written by either generation decode into the array form.
type SizeList []SizeStock

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (s *SizeList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Array:
		var list []SizeStock
		if err := bson.UnmarshalValue(t, data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	case bsontype.EmbeddedDocument:
		var m map[string]int
		if err := bson.UnmarshalValue(t, data, &m); err != nil {
			return err
		}
		list := make([]SizeStock, 0, len(m))
		for size, stock := range m {
			list = append(list, SizeStock{Size: size, Stock: stock})
		}
		sortSizes(list)
		*s = list
		return nil
	case bsontype.Null:
		*s = nil
		return nil
	}
	return fmt.Errorf("cannot decode %s into SizeList", t)
}

// TotalStock sums the per-size quantities.
func (s SizeList) TotalStock() int {
	total := 0
	for _, v := range s {
		total += v.Stock
	}
	return total
}

// sizeRank orders conventional garment sizes; anything else sorts after them
// alphabetically.
var sizeRank = map[string]int{
	"XS": 0, "S": 1, "M": 2, "L": 3, "XL": 4, "XXL": 5, "XXXL": 6,
}

func sortSizes(list []SizeStock) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && sizeLess(list[j], list[j-1]); j-- {
			list[j], list[j-1] = list[j-1], list[j]
		}
	}
}

func sizeLess(a, b SizeStock) bool {
	ra, aok := sizeRank[a.Size]
	rb, bok := sizeRank[b.Size]
	switch {
	case aok && bok:
		return ra < rb
	case aok:
		return true
	case bok:
		return false
	default:
		return a.Size < b.Size
	}
}

// RestockRequest is the per-size quantity delta for a restock action.
type RestockRequest struct {
	Quantities map[string]int `json:"quantities" binding:"required"`
	Notify     bool           `json:"notify"`
}

// ApplyRestock adds the deltas to sizes already present on the product,
// recomputes the aggregate stock and flips status to instock when any
// quantity was added. It reports how many units were applied.
func (p *Product) ApplyRestock(quantities map[string]int) int {
	added := 0
	for i := range p.Sizes {
		delta, ok := quantities[p.Sizes[i].Size]
		if !ok || delta <= 0 {
			continue
		}
		p.Sizes[i].Stock += delta
		added += delta
	}
	p.Stock = p.Sizes.TotalStock()
	if added > 0 && p.Status != ProductDisabled {
		p.Status = ProductInStock
	}
	return added
}
