package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Dispatcher = (*Session)(nil)
var _ port.Dispatcher = (*SerialDispatcher)(nil)

type SessionOpt func(*Session)

func WithPricer(p Pricer) SessionOpt {
	return func(s *Session) { s.pricer = p }
}

func WithNotifier(n port.OrderNotifier) SessionOpt {
	return func(s *Session) { s.notifier = n }
}

func WithClock(now func() time.Time) SessionOpt {
	return func(s *Session) { s.now = now }
}

func WithOrderIDs(newID func() string) SessionOpt {
	return func(s *Session) { s.newID = newID }
}

// A Session owns the state of one storefront visitor: the filter,
// the cart and the visible section. All changes go through [Session.Dispatch].
//
// A Session is not safe for concurrent use, see [SerialDispatcher].
type Session struct {
	catalog  Catalog
	cart     *CartStore
	pricer   Pricer
	notifier port.OrderNotifier
	filter   domain.FilterState
	section  domain.Section
	now      func() time.Time
	newID    func() string
}

func NewSession(catalog Catalog, cart *CartStore, opts ...SessionOpt) *Session {
	s := &Session{
		catalog: catalog,
		cart:    cart,
		pricer:  DefaultPricer(),
		filter:  domain.DefaultFilter(),
		section: domain.SectionShop,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch handles one command and returns the resulting view state.
//
// The returned result reflects the session state even when err is not nil.
func (s *Session) Dispatch(
	ctx context.Context, cmd domain.Command,
) (domain.Result, error) {
	const op = "Session.Dispatch"

	if err := ctx.Err(); err != nil {
		return s.result(), fmt.Errorf("%s: %w", op, err)
	}

	var (
		errs domain.FieldErrors
		conf *domain.Confirmation
		err  error
	)

	switch c := cmd.(type) {
	case domain.AddToCart:
		err = s.addToCart(ctx, c.ProductID, c.Size)
	case domain.IncrementLine:
		err = s.cart.Increment(ctx, c.Key)
	case domain.DecrementLine:
		err = s.cart.Decrement(ctx, c.Key)
	case domain.RemoveLine:
		err = s.cart.Remove(ctx, c.Key)
	case domain.SetQuery:
		s.filter.Query = c.Query
	case domain.SetCategory:
		s.filter.Category = c.Category
	case domain.ToggleSize:
		s.filter.ToggleSize(c.Size)
	case domain.SetMinPrice:
		s.filter.MinPrice = copyPrice(c.Price)
	case domain.SetMaxPrice:
		s.filter.MaxPrice = copyPrice(c.Price)
	case domain.ResetFilters:
		s.filter = domain.DefaultFilter()
	case domain.Navigate:
		s.section = domain.ParseSection(c.Fragment)
	case domain.SubmitOrder:
		var confirmation domain.Confirmation
		confirmation, errs, err = s.Checkout(ctx, c.Form)
		if err == nil && errs.Valid() {
			conf = &confirmation
		}
	default:
		err = fmt.Errorf("%w: %T", domain.ErrUnknownCommand, cmd)
	}

	res := s.result()
	if len(errs) != 0 {
		res.FieldErrors = errs
	}
	res.Confirmation = conf

	if err != nil {
		return res, fmt.Errorf("%s: %s: %w", op, domain.CommandName(cmd), err)
	}
	return res, nil
}

func copyPrice(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s *Session) addToCart(
	ctx context.Context, productID, size string,
) error {
	p, ok := s.catalog.Lookup(productID)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrProductNotFound, productID)
	}
	if size != "" && !p.HasSize(size) {
		return fmt.Errorf("%w: %q for %q", domain.ErrInvalidSize, size, p.ID)
	}
	return s.cart.Add(ctx, p, size)
}

// Checkout validates the form and, when it is valid, places the order:
// the total is computed, the cart is cleared and the session moves
// to the success section.
//
// Invalid fields are returned as [domain.FieldErrors] with a nil error
// and leave the session untouched.
func (s *Session) Checkout(
	ctx context.Context, form domain.OrderForm,
) (domain.Confirmation, domain.FieldErrors, error) {
	const op = "Session.Checkout"
	log := slog.With("op", op)

	errs := ValidateForm(form)
	if !errs.Valid() {
		return domain.Confirmation{}, errs, nil
	}

	if s.cart.Len() == 0 {
		return domain.Confirmation{}, errs, fmt.Errorf(
			"%s: %w", op, domain.ErrEmptyCart,
		)
	}

	summary := s.Summary()
	order := domain.Order{
		ID:     s.newID(),
		Form:   form,
		Lines:  summary.Items,
		Amount: summary.Total,
		Date:   s.now().UTC(),
	}

	if err := s.cart.Clear(ctx); err != nil {
		return domain.Confirmation{}, errs, fmt.Errorf("%s: %w", op, err)
	}
	s.section = domain.SectionSuccess

	log.Info("order placed",
		"orderID", order.ID, "amount", order.Amount, "lines", len(order.Lines),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyOrder(ctx, order); err != nil {
			log.Warn("failed to notify order", "orderID", order.ID, "err", err)
		}
	}

	return domain.NewConfirmation(order), errs, nil
}

// Summary prices the current cart.
func (s *Session) Summary() domain.Summary {
	return s.pricer.Summarize(s.cart.Lines())
}

// Products returns the catalog narrowed by the current filter.
func (s *Session) Products() []domain.Product {
	return s.catalog.FindProducts(s.filter)
}

func (s *Session) Filter() domain.FilterState {
	return s.filter.Clone()
}

func (s *Session) Section() domain.Section {
	return s.section
}

// State returns the current view state without changing it.
func (s *Session) State() domain.Result {
	return s.result()
}

func (s *Session) result() domain.Result {
	return domain.Result{
		Section:  s.section,
		Filter:   s.filter.Clone(),
		Products: s.Products(),
		Summary:  s.Summary(),
	}
}

// A SerialDispatcher applies commands to a [Session] one at a time,
// in arrival order.
type SerialDispatcher struct {
	mu      sync.Mutex
	session *Session
}

func NewSerialDispatcher(s *Session) *SerialDispatcher {
	return &SerialDispatcher{session: s}
}

func (d *SerialDispatcher) Dispatch(
	ctx context.Context, cmd domain.Command,
) (domain.Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.Dispatch(ctx, cmd)
}

func (d *SerialDispatcher) State() domain.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.State()
}
