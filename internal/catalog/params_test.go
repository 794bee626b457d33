package catalog_test

import (
	"net/url"
	"testing"

	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseFilterSpec(t *testing.T) {
	defaults := catalog.Defaults{MaxPrice: 500000}

	t.Run("Empty query gives the default listing", func(t *testing.T) {
		spec := catalog.ParseFilterSpec(url.Values{}, defaults)

		assert.Equal(t, catalog.DefaultSpec(defaults), spec)
		assert.False(t, spec.FiltersApplied(defaults.MaxPrice))
	})

	t.Run("Navigational category and search", func(t *testing.T) {
		q, _ := url.ParseQuery("category=Electronics&search=%20phone%20")
		spec := catalog.ParseFilterSpec(q, defaults)

		assert.Equal(t, []string{"Electronics"}, spec.Categories)
		assert.Equal(t, "phone", spec.Search)
		assert.True(t, spec.FiltersApplied(defaults.MaxPrice))
	})

	t.Run("Repeated and comma separated sets", func(t *testing.T) {
		q, _ := url.ParseQuery("brand=Nike,Apple&brand=Nike&rating=4&rating=3,x&discount=20%25%20or%20more&discount=10")
		spec := catalog.ParseFilterSpec(q, defaults)

		assert.Equal(t, []string{"Nike", "Apple"}, spec.Brands)
		assert.Equal(t, []int{4, 3}, spec.Ratings)
		assert.Equal(t, []int{20, 10}, spec.Discounts)
	})

	t.Run("Scalars", func(t *testing.T) {
		q, _ := url.ParseQuery("min_price=1000&max_price=20000&include_out_of_stock=false&sort=price-desc&page=3")
		spec := catalog.ParseFilterSpec(q, defaults)

		assert.Equal(t, int64(1000), spec.MinPrice)
		assert.Equal(t, int64(20000), spec.MaxPrice)
		assert.False(t, spec.IncludeOutOfStock)
		assert.Equal(t, models.SortPriceDesc, spec.Sort)
		assert.Equal(t, 3, spec.Page)
	})

	t.Run("Invalid values keep defaults", func(t *testing.T) {
		q, _ := url.ParseQuery("min_price=-5&max_price=lots&include_out_of_stock=maybe&sort=cheapest&page=0")
		spec := catalog.ParseFilterSpec(q, defaults)

		assert.Equal(t, int64(0), spec.MinPrice)
		assert.Equal(t, int64(500000), spec.MaxPrice)
		assert.True(t, spec.IncludeOutOfStock)
		assert.Equal(t, models.SortPopularity, spec.Sort)
		assert.Equal(t, 1, spec.Page)
	})
}
