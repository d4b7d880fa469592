package adapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/storefront/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTLSConfig(t *testing.T) {
	t.Run("NoFiles", func(t *testing.T) {
		cfg, err := adapter.MakeTLSConfig("", "", "")
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("MissingCA", func(t *testing.T) {
		_, err := adapter.MakeTLSConfig("/nonexistent/ca.pem", "c.pem", "k.pem")
		assert.Error(t, err)
	})

	t.Run("InvalidCA", func(t *testing.T) {
		ca := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(ca, []byte("not a certificate"), 0o600))
		_, err := adapter.MakeTLSConfig(ca, "c.pem", "k.pem")
		assert.ErrorContains(t, err, "failed to parse CA certificate")
	})
}
