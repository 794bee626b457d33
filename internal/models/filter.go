package models

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRating     SortKey = "rating"
	SortNewest     SortKey = "newest"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortPopularity, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return true
	}

	return false
}

// FilterSpec is one catalog request: search, filter sets, price range,
// stock toggle, sort key and 1-based page.
type FilterSpec struct {
	Search            string   `json:"search,omitempty"`
	Categories        []string `json:"categories,omitempty"`
	Brands            []string `json:"brands,omitempty"`
	Ratings           []int    `json:"ratings,omitempty"`
	Discounts         []int    `json:"discounts,omitempty"`
	MinPrice          int64    `json:"min_price"`
	MaxPrice          int64    `json:"max_price"`
	IncludeOutOfStock bool     `json:"include_out_of_stock"`
	Sort              SortKey  `json:"sort"`
	Page              int      `json:"page"`
}

// FiltersApplied mirrors the storefront's "reset filters" indicator: true
// when anything differs from the default listing.
func (f *FilterSpec) FiltersApplied(maxPrice int64) bool {
	return len(f.Categories) > 0 ||
		len(f.Brands) > 0 ||
		len(f.Ratings) > 0 ||
		len(f.Discounts) > 0 ||
		f.MinPrice > 0 ||
		f.MaxPrice < maxPrice ||
		!f.IncludeOutOfStock ||
		f.Sort != SortPopularity
}
