package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/money"
)

type (
	Product struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Price    int64    `json:"price"`
		Category string   `json:"category"`
		Sizes    []string `json:"sizes"`
		Image    string   `json:"image"`
		Rating   float64  `json:"rating"`
	}

	CartLine struct {
		Key       string `json:"key"`
		ID        string `json:"id"`
		Name      string `json:"name"`
		Price     int64  `json:"price"`
		Image     string `json:"image"`
		Size      string `json:"size"`
		Qty       int    `json:"qty"`
		LineTotal int64  `json:"line_total"`
	}

	Summary struct {
		Items          []CartLine `json:"items"`
		ItemCount      int        `json:"item_count"`
		Subtotal       int64      `json:"subtotal"`
		Shipping       int64      `json:"shipping"`
		Tax            int64      `json:"tax"`
		Total          int64      `json:"total"`
		TotalFormatted string     `json:"total_formatted"`
	}

	Confirmation struct {
		OrderID         string    `json:"order_id"`
		Message         string    `json:"message"`
		Amount          int64     `json:"amount"`
		AmountFormatted string    `json:"amount_formatted"`
		Payment         string    `json:"payment"`
		City            string    `json:"city"`
		PIN             string    `json:"pin"`
		Date            time.Time `json:"date"`
	}
)

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
}

type OrderForm struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	PIN      string `json:"pin"`
	Payment  string `json:"payment"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type FieldErrorsResponse struct {
	Errors map[string]string `json:"errors"`
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = Product{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Sizes:    p.Sizes,
			Image:    p.Image,
			Rating:   p.Rating,
		}
	}
	return out
}

func toSummary(s domain.Summary) Summary {
	items := make([]CartLine, len(s.Items))
	for i, l := range s.Items {
		items[i] = CartLine{
			Key:       string(l.Key()),
			ID:        l.ID,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			Size:      l.Size,
			Qty:       l.Qty,
			LineTotal: l.LineTotal(),
		}
	}
	return Summary{
		Items:          items,
		ItemCount:      s.ItemCount,
		Subtotal:       s.Subtotal,
		Shipping:       s.Shipping,
		Tax:            s.Tax,
		Total:          s.Total,
		TotalFormatted: money.Format(s.Total),
	}
}

func toConfirmation(c domain.Confirmation) Confirmation {
	return Confirmation{
		OrderID:         c.OrderID,
		Message:         c.Message,
		Amount:          c.Amount,
		AmountFormatted: money.Format(c.Amount),
		Payment:         c.Payment,
		City:            c.City,
		PIN:             c.PIN,
		Date:            c.Date,
	}
}

func (f OrderForm) toDomain() domain.OrderForm {
	return domain.OrderForm{
		FullName: f.FullName,
		Email:    f.Email,
		Phone:    f.Phone,
		Address:  f.Address,
		City:     f.City,
		PIN:      f.PIN,
		Payment:  f.Payment,
	}
}
