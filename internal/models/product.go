package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand,omitempty"`
	Rating      float64 `json:"rating"`
	Stock       int     `json:"stock"`
	Discount    int     `json:"discount"`
	Specs       Specs   `json:"specs"`
}

// HasBrand reports whether the product carries a brand label at all.
func (p *Product) HasBrand() bool {
	return p.Brand != ""
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// OriginalPrice is the list price before the discount, rounded to the
// nearest currency unit. Price is always the selling price.
func (p *Product) OriginalPrice() int64 {
	if p.Discount <= 0 || p.Discount >= 100 {
		return p.Price
	}

	list := decimal.NewFromInt(p.Price).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(100 - p.Discount))).
		Round(0)

	return list.IntPart()
}

type Spec struct {
	Name  string
	Value string
}

// Specs is an ordered attribute list. It is encoded as a JSON object and
// keeps the key order of the source document.
type Specs []Spec

func (s Specs) Get(name string) (string, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec.Value, true
		}
	}

	return "", false
}

func (s Specs) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, spec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(spec.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(spec.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (s *Specs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("specs: expected object, got %v", tok)
	}

	specs := Specs{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("specs: expected string key, got %v", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("specs: value of %q: %w", key, err)
		}

		specs = append(specs, Spec{Name: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = specs
	return nil
}

type ProductDetail struct {
	Product       Product       `json:"product"`
	OriginalPrice int64         `json:"original_price"`
	Reviews       []Review      `json:"reviews"`
	Rating        RatingSummary `json:"rating"`
	InWishlist    bool          `json:"in_wishlist"`
}

type Facets struct {
	Categories    []string `json:"categories"`
	Brands        []string `json:"brands"`
	RatingTiers   []int    `json:"rating_tiers"`
	DiscountTiers []int    `json:"discount_tiers"`
	MinPrice      int64    `json:"min_price"`
	MaxPrice      int64    `json:"max_price"`
}
