package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
)

var (
	// RatingTiers are the minimum-rating choices offered by the storefront.
	RatingTiers = []int{4, 3, 2, 1}
	// DiscountTiers are the "N% or more" choices offered by the storefront.
	DiscountTiers = []int{10, 20, 30, 40, 50}
)

type Defaults struct {
	MaxPrice int64
}

// DefaultSpec is the unfiltered listing: full price range, out-of-stock
// included, popularity order, first page.
func DefaultSpec(d Defaults) models.FilterSpec {
	return models.FilterSpec{
		MinPrice:          0,
		MaxPrice:          d.MaxPrice,
		IncludeOutOfStock: true,
		Sort:              models.SortPopularity,
		Page:              1,
	}
}

// ParseFilterSpec builds a FilterSpec from URL query parameters. Set-valued
// keys accept repeats and comma-separated lists. Values that do not parse
// are ignored and the default is kept.
func ParseFilterSpec(q url.Values, d Defaults) models.FilterSpec {
	spec := DefaultSpec(d)

	spec.Search = strings.TrimSpace(q.Get("search"))
	spec.Categories = stringSet(q, "category")
	spec.Brands = stringSet(q, "brand")
	spec.Ratings = intSet(q, "rating")
	spec.Discounts = intSet(q, "discount")

	if v, ok := parseInt64(q.Get("min_price")); ok && v >= 0 {
		spec.MinPrice = v
	}
	if v, ok := parseInt64(q.Get("max_price")); ok && v >= 0 {
		spec.MaxPrice = v
	}

	if raw := q.Get("include_out_of_stock"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			spec.IncludeOutOfStock = v
		}
	}

	if sort := models.SortKey(q.Get("sort")); sort.Valid() {
		spec.Sort = sort
	}

	if v, ok := parseInt64(q.Get("page")); ok && v >= 1 {
		spec.Page = int(v)
	}

	return spec
}

func splitValues(q url.Values, key string) []string {
	var out []string

	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

func stringSet(q url.Values, key string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, v := range splitValues(q, key) {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

func intSet(q url.Values, key string) []int {
	seen := make(map[int]struct{})
	var out []int

	for _, raw := range splitValues(q, key) {
		// "20% or more" style labels parse by their leading number.
		v, ok := parseInt64(strings.TrimRight(strings.Fields(raw)[0], "%"))
		if !ok {
			continue
		}
		if _, dup := seen[int(v)]; dup {
			continue
		}
		seen[int(v)] = struct{}{}
		out = append(out, int(v))
	}

	return out
}

func parseInt64(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
