package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stitchlk-backend/models"
)

func TestBuildProductUpdatePartialPayload(t *testing.T) {
	now := time.Now()
	set := buildProductUpdate(models.Product{
		Price: 2500,
		Sizes: models.SizeList{{Size: "M", Stock: 3}, {Size: "L", Stock: 2}},
	}, now)

	assert.Equal(t, 2500.0, set["price"])
	assert.Equal(t, 5, set["stock"])
	assert.Equal(t, now, set["updated_at"])

	// Fields the caller left out must not be written at all. Cart lines
	// reference products by product_id, so zeroing it would orphan them.
	for _, key := range []string{"product_id", "created_at", "name", "code", "status", "image", "image_url"} {
		_, present := set[key]
		assert.False(t, present, "unexpected key %q", key)
	}
}

func TestBuildProductUpdateFullPayload(t *testing.T) {
	set := buildProductUpdate(models.Product{
		Name:        "Kandyan Saree",
		Code:        "SAR-001",
		Price:       12500,
		Description: "Handwoven",
		Category:    "sarees",
		Status:      models.ProductInStock,
		Sizes:       models.SizeList{{Size: "Free", Stock: 4}},
	}, time.Now())

	assert.Equal(t, "Kandyan Saree", set["name"])
	assert.Equal(t, "SAR-001", set["code"])
	assert.Equal(t, models.ProductInStock, set["status"])
	assert.Equal(t, 4, set["stock"])
	_, present := set["product_id"]
	assert.False(t, present)
}
