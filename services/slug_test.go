package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Sarees":              "sarees",
		"Men's Shirts":        "men-s-shirts",
		"  School  Uniforms ": "school-uniforms",
		"Kids (0-5)":          "kids-0-5",
		"--":                  "",
	}
	for name, want := range cases {
		assert.Equal(t, want, Slugify(name), name)
	}
}
