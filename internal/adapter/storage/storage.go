// Package storage implements the cart blob storage on top of a local
// directory, SQLite, PostgreSQL or Redis.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/port"
)

var ErrInvalidKey = errors.New("invalid storage key")

// A BlobStorage is a [port.CartStorage] holding an open resource.
type BlobStorage interface {
	port.CartStorage
	Close()
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func notFound(op, key string) error {
	return fmt.Errorf("%s: %w: %q", op, port.ErrNotFound, key)
}
