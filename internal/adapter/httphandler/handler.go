package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/products?q=&category=&size=&min_price=&max_price= (200 OK, 400 Bad request)
// GET v1/categories (200 OK)

type CatalogHandler struct {
	finder port.ProductsFinder
}

func RegisterCatalog(mux *http.ServeMux, finder port.ProductsFinder) {
	h := CatalogHandler{finder}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	f, err := parseFilter(r)
	if err != nil {
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, log, http.StatusOK, toProducts(h.finder.FindProducts(f)))
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	writeJSON(w, slog.With("op", op), http.StatusOK, h.finder.Categories())
}

func parseFilter(r *http.Request) (domain.FilterState, error) {
	q := r.URL.Query()

	f := domain.DefaultFilter()
	f.Query = q.Get("q")
	if c := q.Get("category"); c != "" {
		f.Category = c
	}
	for _, s := range q["size"] {
		if s != "" && !f.HasSize(s) {
			f.Sizes = append(f.Sizes, s)
		}
	}

	var err error
	if f.MinPrice, err = parsePrice(q.Get("min_price")); err != nil {
		return domain.FilterState{}, errors.New("invalid min_price")
	}
	if f.MaxPrice, err = parsePrice(q.Get("max_price")); err != nil {
		return domain.FilterState{}, errors.New("invalid max_price")
	}
	return f, nil
}

// parsePrice returns nil for an empty value.
func parsePrice(v string) (*int64, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"product_id" string, "size" string} (201 Created, 400, 404)
// POST v1/cart/items/{key}/increment, v1/cart/items/{key}/decrement (200 OK, 404)
// DELETE v1/cart/items/{key} (200 OK)
// POST v1/checkout JSON form (200 OK, 409 Conflict, 422 Unprocessable entity)

type CartHandler struct {
	dispatcher port.Dispatcher
}

func RegisterCart(mux *http.ServeMux, dispatcher port.Dispatcher) {
	h := CartHandler{dispatcher}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("POST /v1/cart/items/{key}/increment", h.PostIncrement)
	mux.HandleFunc("POST /v1/cart/items/{key}/decrement", h.PostDecrement)
	mux.HandleFunc("DELETE /v1/cart/items/{key}", h.DeleteItem)
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	res := h.dispatcher.State()
	writeJSON(w, slog.With("op", op), http.StatusOK, toSummary(res.Summary))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, log, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.ProductID == "" {
		writeError(w, log, http.StatusBadRequest, "product_id is required")
		return
	}

	h.dispatch(w, r, log, http.StatusCreated, domain.AddToCart{
		ProductID: req.ProductID,
		Size:      req.Size,
	})
}

func (h CartHandler) PostIncrement(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostIncrement"
	key := domain.CartKey(r.PathValue("key"))
	h.dispatch(w, r, slog.With("op", op), http.StatusOK,
		domain.IncrementLine{Key: key},
	)
}

func (h CartHandler) PostDecrement(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostDecrement"
	key := domain.CartKey(r.PathValue("key"))
	h.dispatch(w, r, slog.With("op", op), http.StatusOK,
		domain.DecrementLine{Key: key},
	)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	key := domain.CartKey(r.PathValue("key"))
	h.dispatch(w, r, slog.With("op", op), http.StatusOK,
		domain.RemoveLine{Key: key},
	)
}

func (h CartHandler) dispatch(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
	status int, cmd domain.Command,
) {
	res, err := h.dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	writeJSON(w, log, status, toSummary(res.Summary))
}

func (h CartHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCheckout"
	log := slog.With("op", op)

	var form OrderForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, log, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	res, err := h.dispatcher.Dispatch(
		r.Context(), domain.SubmitOrder{Form: form.toDomain()},
	)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	if !res.FieldErrors.Valid() {
		writeJSON(w, log, http.StatusUnprocessableEntity,
			FieldErrorsResponse{Errors: res.FieldErrors},
		)
		return
	}

	if res.Confirmation == nil {
		writeError(w, log, http.StatusInternalServerError, "order is not confirmed")
		log.Error("dispatch returned neither errors nor confirmation")
		return
	}

	log.Info("order is confirmed", "orderID", res.Confirmation.OrderID)
	writeJSON(w, log, http.StatusOK, toConfirmation(*res.Confirmation))
}

func writeDomainError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrLineNotFound):
		writeError(w, log, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidSize):
		writeError(w, log, http.StatusBadRequest, "size is not offered")
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(w, log, http.StatusConflict, "cart is empty")
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		writeError(w, log, http.StatusServiceUnavailable, "unavailable")
	default:
		writeError(w, log, http.StatusServiceUnavailable, "failed to update cart")
		log.Error("failed to dispatch", "err", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, status int, msg string) {
	writeJSON(w, log, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
