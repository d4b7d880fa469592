package storage_test

import (
	"os"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/stretchr/testify/require"
)

// TestSQLStorage needs a migrated PostgreSQL database, see cmd/migrator.
func TestSQLStorage(t *testing.T) {
	dsn, ok := os.LookupEnv("STOREFRONT_TEST_SQL_DB")
	if !ok {
		t.Skip("STOREFRONT_TEST_SQL_DB is not set")
	}

	db, err := storage.NewSQLDB(t.Context(), dsn)
	require.NoError(t, err)
	s := storage.NewSQLStorage(db)
	t.Cleanup(s.Close)

	_, _ = db.ExecContext(t.Context(),
		`DELETE FROM cart_blobs WHERE blob_key IN ('pp_cart', 'other');`,
	)

	testBlobStorage(t, s)
}

func TestNewSQLDBInvalidDSN(t *testing.T) {
	_, err := storage.NewSQLDB(t.Context(), "postgres://%zz")
	require.Error(t, err)
}
