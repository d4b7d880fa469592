// Package catalog holds the compiled-in product table.
package catalog

import (
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Categories are matched literally: "gowns" is lowercase in the table
// and a filter on "Gowns" does not match it.
var products = []domain.Product{
	mustProduct("D001", "Floral Summer Dress", 1299, "Dresses",
		[]string{"XS", "S", "M", "L"}, "floral-summer-dress.png", 4.6),
	mustProduct("T101", "Pastel Puff Sleeve Top", 699, "Tops",
		[]string{"S", "M", "L"}, "puff-sleeve-dress.png", 4.3),
	mustProduct("J201", "High-Waist Blue Jeans", 1499, "Jeans",
		[]string{"S", "M", "L", "XL"}, "high-waist-jean.png", 4.5),
	mustProduct("S301", "Pleated Tennis Skirt", 999, "Sharara",
		[]string{"XS", "S", "M"}, "sharara.png", 4.4),
	mustProduct("E401", "Festive Anarkali Kurta", 1999, "gowns",
		[]string{"S", "M", "L", "XL"}, "gown.png", 4.7),
	mustProduct("T102", "Graphic Tee – Girl Power", 599, "Crop Tops",
		[]string{"XS", "S", "M", "L", "XL"}, "crop-tops.png", 4.2),
	mustProduct("D002", "Polka Dot Midi Dress", 1399, "Anarkali",
		[]string{"S", "M", "L"}, "anarkali.png", 4.5),
}

var byID = index(products)

// Products returns the catalog in its fixed order.
//
// The returned slice is a copy.
func Products() []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

// Lookup returns the product with the given id.
func Lookup(id string) (domain.Product, error) {
	const op = "catalog.Lookup"
	p, ok := byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: %q", op, domain.ErrProductNotFound, id,
		)
	}
	return p, nil
}

func mustProduct(
	id, name string,
	price int64,
	category string,
	sizes []string,
	image string,
	rating float64,
) domain.Product {
	p, err := domain.NewProduct(id, name, price, category, sizes, image, rating)
	if err != nil {
		panic(err) // develop mistake
	}
	return p
}

func index(ps []domain.Product) map[string]domain.Product {
	m := make(map[string]domain.Product, len(ps))
	for _, p := range ps {
		if _, dup := m[p.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate product id %q", p.ID))
		}
		m[p.ID] = p
	}
	return m
}
