package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
)

//go:embed data/products.json
var seedFS embed.FS

// Catalog is an immutable snapshot of the product collection, in catalog
// order. It is safe for concurrent readers.
type Catalog struct {
	products []models.Product
	byID     map[int64]int
}

func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[int64]int, len(products)),
	}

	for i, p := range c.products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive, got %d", p.Name, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
	}

	return c, nil
}

// Seed returns the catalog bundled with the binary.
func Seed() (*Catalog, error) {
	data, err := seedFS.ReadFile("data/products.json")
	if err != nil {
		return nil, fmt.Errorf("reading seed catalog: %w", err)
	}

	return parse(data)
}

// Load reads a JSON array of products from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	return New(products)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the products in catalog order.
func (c *Catalog) Products() []models.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Get(id int64) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}

	return c.products[i], true
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	return distinct(c.products, func(p models.Product) string { return p.Category })
}

// Brands lists distinct non-empty brands in first-seen order.
func (c *Catalog) Brands() []string {
	return distinct(c.products, func(p models.Product) string { return p.Brand })
}

// PriceBounds returns the lowest and highest price in the catalog.
func (c *Catalog) PriceBounds() (int64, int64) {
	if len(c.products) == 0 {
		return 0, 0
	}

	lo, hi := c.products[0].Price, c.products[0].Price
	for _, p := range c.products[1:] {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}

	return lo, hi
}

func distinct(products []models.Product, key func(models.Product) string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, p := range products {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	return out
}
