package port

import (
	"context"
	"errors"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ErrNotFound is returned by [CartStorage] when the key is absent.
var ErrNotFound = errors.New("not found")

// CartStorage is the durable key-value store holding the serialized cart.
type CartStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

type OrderNotifier interface {
	NotifyOrder(context.Context, domain.Order) error
}

// Dispatcher applies user commands to the session.
type Dispatcher interface {
	Dispatch(context.Context, domain.Command) (domain.Result, error)
	State() domain.Result
}

// ProductsFinder is the pure catalog query used by stateless views.
type ProductsFinder interface {
	FindProducts(domain.FilterState) []domain.Product
	Categories() []string
}
