package storage_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBlobStorage runs the behavior shared by every driver.
func testBlobStorage(t *testing.T, s storage.BlobStorage) {
	t.Helper()
	ctx := t.Context()
	const key = "pp_cart"

	_, err := s.Load(ctx, key)
	require.ErrorIs(t, err, port.ErrNotFound)

	require.NoError(t, s.Save(ctx, key, []byte(`{"D001-M":{"qty":1}}`)))
	blob, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"D001-M":{"qty":1}}`, string(blob))

	require.NoError(t, s.Save(ctx, key, []byte(`{}`)))
	blob, err = s.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(blob))

	require.NoError(t, s.Save(ctx, "other", []byte(`{"x":1}`)))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Load(ctx, key)
	require.ErrorIs(t, err, port.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, key), port.ErrNotFound)

	blob, err = s.Load(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(blob))
}
