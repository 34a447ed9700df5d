package productutil_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/internal/productutil"
)

func TestStandardizeName(t *testing.T) {
	cases := []struct {
		name, category, want string
	}{
		{"  slim fit jeans ", productutil.MensCategory, "Men's Slim Fit Jeans"},
		{"Men denim jacket", productutil.MensCategory, "Men's Denim Jacket"},
		{"Men's polo", productutil.MensCategory, "Men's Polo"},
		{"Women summer dress", productutil.WomensCategory, "Women's Summer Dress"},
		{"leather belt", "Accessories", "Leather Belt"},
		{"", "Accessories", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, productutil.StandardizeName(tc.name, tc.category), tc.name)
	}
}

func TestIsValidName(t *testing.T) {
	assert.True(t, productutil.IsValidName("Linen Shirt"))
	assert.False(t, productutil.IsValidName("Cap"))
	assert.False(t, productutil.IsValidName(" New Cloth "))
	assert.False(t, productutil.IsValidName("PRODUCT"))
}

func TestNewSKU(t *testing.T) {
	now := time.UnixMilli(1718000000000)
	sku := productutil.NewSKU(now)
	assert.True(t, strings.HasPrefix(sku, "SKU1718000000000"))
	assert.LessOrEqual(t, len(sku), len("SKU1718000000000")+3)
}
