package domain

import (
	"fmt"
	"strings"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// A Product is an immutable catalog record.
//
// Price is in whole currency units.
type Product struct {
	ID       string
	Name     string
	Price    int64
	Category string
	Sizes    []string
	Image    string
	Rating   float64
}

// NewProduct returns a validated [Product].
//
// The sizes slice is copied, the caller keeps ownership of its argument.
func NewProduct(
	id, name string,
	price int64,
	category string,
	sizes []string,
	image string,
	rating float64,
) (Product, error) {
	const op = "NewProduct"

	switch {
	case strings.TrimSpace(id) == "":
		return Product{}, fmt.Errorf("%s: %w: empty id", op, ErrInvalidProduct)
	case strings.TrimSpace(name) == "":
		return Product{}, fmt.Errorf("%s: %w: empty name", op, ErrInvalidProduct)
	case price < 0:
		return Product{}, fmt.Errorf(
			"%s: %w: negative price %d", op, ErrInvalidProduct, price,
		)
	case len(sizes) == 0:
		return Product{}, fmt.Errorf("%s: %w: no sizes", op, ErrInvalidProduct)
	case rating < MinRating || rating > MaxRating:
		return Product{}, fmt.Errorf(
			"%s: %w: rating %v out of range", op, ErrInvalidProduct, rating,
		)
	}

	return Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: category,
		Sizes:    append([]string(nil), sizes...),
		Image:    image,
		Rating:   rating,
	}, nil
}

// HasSize reports whether size is offered by the product.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
