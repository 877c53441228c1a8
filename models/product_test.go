package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestApplyRestock(t *testing.T) {
	product := Product{
		Status: ProductOutOfStock,
		Sizes: SizeList{
			{Size: "S", Stock: 10},
			{Size: "M", Stock: 0},
		},
		Stock: 10,
	}

	added := product.ApplyRestock(map[string]int{"S": 5})

	assert.Equal(t, 5, added)
	assert.Equal(t, 15, product.Sizes[0].Stock)
	assert.Equal(t, 15, product.Stock)
	assert.Equal(t, ProductInStock, product.Status)
}

func TestApplyRestockIgnoresUnknownSizes(t *testing.T) {
	product := Product{
		Status: ProductOutOfStock,
		Sizes:  SizeList{{Size: "S", Stock: 2}},
		Stock:  2,
	}

	added := product.ApplyRestock(map[string]int{"XL": 7})

	assert.Equal(t, 0, added)
	assert.Equal(t, 2, product.Stock)
	assert.Equal(t, ProductOutOfStock, product.Status)
}

func TestApplyRestockKeepsDisabledStatus(t *testing.T) {
	product := Product{
		Status: ProductDisabled,
		Sizes:  SizeList{{Size: "M", Stock: 1}},
		Stock:  1,
	}

	product.ApplyRestock(map[string]int{"M": 3})

	assert.Equal(t, ProductDisabled, product.Status)
}

func TestSizeListDecodesArrayShape(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"sizes": bson.A{
		bson.M{"size": "S", "stock": 4},
		bson.M{"size": "M", "stock": 2, "colors": bson.A{"red"}},
	}})
	require.NoError(t, err)

	var doc struct {
		Sizes SizeList `bson:"sizes"`
	}
	require.NoError(t, bson.Unmarshal(raw, &doc))

	require.Len(t, doc.Sizes, 2)
	assert.Equal(t, SizeStock{Size: "S", Stock: 4}, doc.Sizes[0])
	assert.Equal(t, []string{"red"}, doc.Sizes[1].Colors)
}

func TestSizeListDecodesLegacyMapShape(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"sizes": bson.M{"M": 5, "S": 10, "XXL": 1}})
	require.NoError(t, err)

	var doc struct {
		Sizes SizeList `bson:"sizes"`
	}
	require.NoError(t, bson.Unmarshal(raw, &doc))

	require.Len(t, doc.Sizes, 3)
	assert.Equal(t, SizeList{
		{Size: "S", Stock: 10},
		{Size: "M", Stock: 5},
		{Size: "XXL", Stock: 1},
	}, doc.Sizes)
	assert.Equal(t, 16, doc.Sizes.TotalStock())
}

func TestValidProductStatus(t *testing.T) {
	assert.True(t, ValidProductStatus(ProductInStock))
	assert.True(t, ValidProductStatus(ProductOutOfStock))
	assert.True(t, ValidProductStatus(ProductDisabled))
	assert.False(t, ValidProductStatus("sold_out"))
	assert.False(t, ValidProductStatus(""))
}
