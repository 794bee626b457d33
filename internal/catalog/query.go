package catalog

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
)

// DefaultPageSize is the number of products on one catalog page.
const DefaultPageSize = 12

type Result struct {
	Items         []models.Product `json:"items"`
	TotalMatching int              `json:"total_matching"`
	TotalPages    int              `json:"total_pages"`
	Page          int              `json:"page"`
	PageSize      int              `json:"page_size"`
}

// Query filters, sorts and paginates products. It never fails: an empty
// match set or an out-of-range page yields an empty Items slice.
func Query(products []models.Product, spec models.FilterSpec, pageSize int) Result {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	matched := Filter(products, spec)
	Sort(matched, spec.Sort)

	return Result{
		Items:         paginate(matched, spec.Page, pageSize),
		TotalMatching: len(matched),
		TotalPages:    int(math.Ceil(float64(len(matched)) / float64(pageSize))),
		Page:          spec.Page,
		PageSize:      pageSize,
	}
}

// Filter returns the products passing every predicate of spec, in input
// order. The input slice is not modified.
func Filter(products []models.Product, spec models.FilterSpec) []models.Product {
	search := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, spec, search) {
			out = append(out, p)
		}
	}

	return out
}

// Matches applies the filter predicate to a single product. search must
// already be lower-cased.
func Matches(p models.Product, spec models.FilterSpec, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(p.Name), search) &&
		!strings.Contains(strings.ToLower(p.Description), search) &&
		!(p.HasBrand() && strings.Contains(strings.ToLower(p.Brand), search)) {
		return false
	}

	if len(spec.Categories) > 0 && !slices.Contains(spec.Categories, p.Category) {
		return false
	}

	if len(spec.Brands) > 0 && (!p.HasBrand() || !slices.Contains(spec.Brands, p.Brand)) {
		return false
	}

	if len(spec.Ratings) > 0 && !slices.Contains(spec.Ratings, int(math.Floor(p.Rating))) {
		return false
	}

	if p.Price < spec.MinPrice || p.Price > spec.MaxPrice {
		return false
	}

	if !spec.IncludeOutOfStock && !p.InStock() {
		return false
	}

	if len(spec.Discounts) > 0 && !slices.ContainsFunc(spec.Discounts, func(tier int) bool { return p.Discount >= tier }) {
		return false
	}

	return true
}

// Sort orders products in place by key. The sort is stable, so equal keys
// keep their catalog order.
func Sort(products []models.Product, key models.SortKey) {
	slices.SortStableFunc(products, comparator(key))
}

func comparator(key models.SortKey) func(a, b models.Product) int {
	switch key {
	case models.SortPriceAsc:
		return func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case models.SortPriceDesc:
		return func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) }
	case models.SortRating:
		return func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case models.SortNewest:
		return func(a, b models.Product) int { return cmp.Compare(b.ID, a.ID) }
	default:
		return func(a, b models.Product) int { return cmp.Compare(popularity(b), popularity(a)) }
	}
}

func popularity(p models.Product) float64 {
	return p.Rating * float64(p.Stock)
}

func paginate(products []models.Product, page, pageSize int) []models.Product {
	if page < 1 {
		return []models.Product{}
	}

	start := (page - 1) * pageSize
	if start >= len(products) {
		return []models.Product{}
	}

	end := min(start+pageSize, len(products))

	return products[start:end]
}
