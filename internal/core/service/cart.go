package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// DefaultCartKey is the storage key of the serialized cart.
const DefaultCartKey = "pp_cart"

// A CartStore holds the cart and mirrors it to durable storage.
//
// Every mutation is applied to a copy that is persisted before it
// replaces the current cart, so a failed write leaves both the storage
// and the in-memory cart as they were.
//
// A CartStore is not safe for concurrent use.
type CartStore struct {
	storage port.CartStorage
	key     string
	cart    domain.Cart
}

// LoadCartStore reads the cart stored under key.
//
// It never fails: an absent key, a read error or malformed content
// all yield an empty cart. Lines with a non-positive quantity are dropped.
func LoadCartStore(
	ctx context.Context, storage port.CartStorage, key string,
) *CartStore {
	const op = "service.LoadCartStore"
	log := slog.With("op", op, "key", key)

	s := &CartStore{storage: storage, key: key, cart: domain.Cart{}}

	blob, err := storage.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			log.Warn("failed to read cart, starting empty", "err", err)
		}
		return s
	}

	cart, err := decodeCart(blob)
	if err != nil {
		log.Warn("malformed cart, starting empty", "err", err)
		return s
	}

	s.cart = cart
	log.Debug("cart loaded", "lines", len(cart))
	return s
}

func decodeCart(blob []byte) (domain.Cart, error) {
	var raw map[domain.CartKey]domain.CartLine
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, err
	}

	cart := make(domain.Cart, len(raw))
	for k, l := range raw {
		if l.Qty <= 0 {
			continue
		}
		cart[k] = l
	}
	return cart, nil
}

// Add puts one unit of product in the given size into the cart.
func (s *CartStore) Add(
	ctx context.Context, p domain.Product, size string,
) error {
	const op = "CartStore.Add"

	next := s.cart.Clone()
	key := domain.NewCartKey(p.ID, size)
	line, ok := next[key]
	if ok {
		line.Qty++
	} else {
		line = domain.NewCartLine(p, size)
	}
	next[key] = line

	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CartStore) Increment(ctx context.Context, key domain.CartKey) error {
	const op = "CartStore.Increment"
	if err := s.adjust(ctx, key, 1); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Decrement removes one unit, deleting the line when none is left.
func (s *CartStore) Decrement(ctx context.Context, key domain.CartKey) error {
	const op = "CartStore.Decrement"
	if err := s.adjust(ctx, key, -1); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CartStore) adjust(
	ctx context.Context, key domain.CartKey, delta int,
) error {
	line, ok := s.cart[key]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrLineNotFound, key)
	}

	next := s.cart.Clone()
	line.Qty += delta
	if line.Qty <= 0 {
		delete(next, key)
	} else {
		next[key] = line
	}
	return s.commit(ctx, next)
}

// Remove deletes the line unconditionally.
func (s *CartStore) Remove(ctx context.Context, key domain.CartKey) error {
	const op = "CartStore.Remove"

	next := s.cart.Clone()
	delete(next, key)

	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear empties the cart and deletes the stored blob.
func (s *CartStore) Clear(ctx context.Context) error {
	const op = "CartStore.Clear"

	err := s.storage.Delete(ctx, s.key)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.cart = domain.Cart{}
	return nil
}

func (s *CartStore) TotalItemCount() int {
	return s.cart.ItemCount()
}

// Lines returns the lines ordered by key.
func (s *CartStore) Lines() []domain.CartLine {
	return s.cart.Lines()
}

// Cart returns a copy of the current cart.
func (s *CartStore) Cart() domain.Cart {
	return s.cart.Clone()
}

func (s *CartStore) Len() int {
	return len(s.cart)
}

func (s *CartStore) commit(ctx context.Context, next domain.Cart) error {
	blob, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, s.key, blob); err != nil {
		return err
	}
	s.cart = next
	return nil
}
