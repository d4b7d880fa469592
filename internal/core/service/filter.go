package service

import (
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsFinder = (*Catalog)(nil)

// A Catalog answers filter queries over a fixed product list.
type Catalog struct {
	products []domain.Product
}

func NewCatalog(products []domain.Product) Catalog {
	return Catalog{products: products}
}

func (c Catalog) FindProducts(f domain.FilterState) []domain.Product {
	return FilterProducts(c.products, f)
}

func (c Catalog) Categories() []string {
	return Categories(c.products)
}

// Lookup returns the product with the given id.
func (c Catalog) Lookup(id string) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// FilterProducts returns the products satisfying every active constraint
// of f, in their original order.
//
// Category is compared case-sensitively, the query case-insensitively
// against the name. Sizes match when any selected size is offered.
func FilterProducts(
	products []domain.Product, f domain.FilterState,
) []domain.Product {
	query := strings.ToLower(f.Query)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Category != domain.CategoryAll && p.Category != f.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if len(f.Sizes) != 0 && !anySize(p, f.Sizes) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

func anySize(p domain.Product, sizes []string) bool {
	for _, s := range sizes {
		if p.HasSize(s) {
			return true
		}
	}
	return false
}

// Categories returns [domain.CategoryAll] followed by the distinct
// product categories in catalog order, with their original casing.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{domain.CategoryAll}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
