package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
)

func ids(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func price(v int64) *int64 {
	return &v
}

func TestFilterProducts(t *testing.T) {
	products := catalog.Products()

	t.Run("DefaultFilterKeepsCatalogOrder", func(t *testing.T) {
		got := service.FilterProducts(products, domain.DefaultFilter())
		assert.Equal(t,
			[]string{"D001", "T101", "J201", "S301", "E401", "T102", "D002"},
			ids(got),
		)
	})

	t.Run("QueryIsCaseInsensitive", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Query = "DrEsS"
		got := service.FilterProducts(products, f)
		assert.Equal(t, []string{"D001", "D002"}, ids(got))
	})

	t.Run("CategoryIsCaseSensitive", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Category = "Gowns"
		assert.Empty(t, service.FilterProducts(products, f))

		f.Category = "gowns"
		assert.Equal(t,
			[]string{"E401"}, ids(service.FilterProducts(products, f)),
		)
	})

	t.Run("SizesMatchAny", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Sizes = []string{"XL"}
		assert.Equal(t,
			[]string{"J201", "E401", "T102"},
			ids(service.FilterProducts(products, f)),
		)

		f.Sizes = []string{"XS", "XL"}
		assert.Equal(t,
			[]string{"D001", "J201", "S301", "E401", "T102"},
			ids(service.FilterProducts(products, f)),
		)
	})

	t.Run("PriceBoundsAreInclusive", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.MinPrice = price(1299)
		f.MaxPrice = price(1499)
		assert.Equal(t,
			[]string{"D001", "J201", "D002"},
			ids(service.FilterProducts(products, f)),
		)
	})

	t.Run("ConstraintsCombine", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Query = "dress"
		f.Sizes = []string{"XS"}
		f.MaxPrice = price(1300)
		assert.Equal(t,
			[]string{"D001"}, ids(service.FilterProducts(products, f)),
		)
	})

	t.Run("NoMatch", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Query = "sneakers"
		got := service.FilterProducts(products, f)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Sizes = []string{"M"}
		f.MinPrice = price(700)
		first := service.FilterProducts(products, f)
		second := service.FilterProducts(first, f)
		assert.Equal(t, first, second)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		before := catalog.Products()
		f := domain.DefaultFilter()
		f.Category = "Tops"
		service.FilterProducts(products, f)
		assert.Equal(t, before, products)
	})
}

func TestCategories(t *testing.T) {
	got := service.Categories(catalog.Products())
	assert.Equal(t, []string{
		"All", "Dresses", "Tops", "Jeans", "Sharara",
		"gowns", "Crop Tops", "Anarkali",
	}, got)

	assert.Equal(t, []string{"All"}, service.Categories(nil))
}

func TestCatalogLookup(t *testing.T) {
	c := service.NewCatalog(catalog.Products())

	p, ok := c.Lookup("J201")
	assert.True(t, ok)
	assert.Equal(t, "High-Waist Blue Jeans", p.Name)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}
