package catalog_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts(t *testing.T) {
	ps := catalog.Products()
	require.Len(t, ps, 7)

	seen := make(map[string]bool, len(ps))
	for _, p := range ps {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Sizes, p.ID)
		assert.GreaterOrEqual(t, p.Price, int64(0), p.ID)
		assert.GreaterOrEqual(t, p.Rating, domain.MinRating, p.ID)
		assert.LessOrEqual(t, p.Rating, domain.MaxRating, p.ID)
	}

	ps[0].Name = "changed"
	assert.Equal(t, "Floral Summer Dress", catalog.Products()[0].Name)
}

func TestLookup(t *testing.T) {
	p, err := catalog.Lookup("E401")
	require.NoError(t, err)
	assert.Equal(t, "gowns", p.Category)
	assert.Equal(t, int64(1999), p.Price)

	_, err = catalog.Lookup("nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
