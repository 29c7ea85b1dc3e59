// Package catalog holds the trusted, server-controlled product list. It is
// the only source of product names and prices; nothing a client sends can
// override it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed products.json
var productsJSON []byte

// Product is a purchasable item with its authoritative price in cents.
type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	NameEn     string  `json:"nameEn"`
	PriceCents int64   `json:"priceCents"`
	Category   string  `json:"category"`
	Emoji      string  `json:"emoji,omitempty"`
	Origin     string  `json:"origin,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Unit       string  `json:"unit,omitempty"`
}

// Catalog is a read-only product index, loaded once at startup.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// Load parses the embedded product list.
func Load() (*Catalog, error) {
	return parse(productsJSON)
}

func parse(data []byte) (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %q has empty id", p.Name)
		}
		if p.PriceCents <= 0 {
			return nil, fmt.Errorf("catalog entry %q has non-positive price", p.ID)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q duplicated", p.ID)
		}
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}, nil
}

// Get looks up a product by id.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns every product in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ListByCategory returns the products of one category, in catalog order.
func (c *Catalog) ListByCategory(category string) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct category keys, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
