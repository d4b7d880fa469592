package domain

import (
	"fmt"
	"time"
)

// Form field names, as reported in [FieldErrors].
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldAddress  = "address"
	FieldCity     = "city"
	FieldPIN      = "pin"
	FieldPayment  = "payment"
)

// FormFields lists the validated fields in form order.
var FormFields = []string{
	FieldFullName, FieldEmail, FieldPhone, FieldAddress, FieldCity, FieldPIN,
}

// PaymentCOD is the preselected payment method.
const PaymentCOD = "cod"

// An OrderForm holds the raw checkout fields.
type OrderForm struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	PIN      string
	Payment  string
}

// FieldErrors maps a field name to a human-readable message.
//
// A field without a key is valid.
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// An Order is a checked out cart.
type Order struct {
	ID     string
	Form   OrderForm
	Lines  []CartLine
	Amount int64
	Date   time.Time
}

// A Confirmation is shown after a successful checkout.
type Confirmation struct {
	OrderID string
	Message string
	Amount  int64
	Payment string
	City    string
	PIN     string
	Date    time.Time
}

func NewConfirmation(o Order) Confirmation {
	return Confirmation{
		OrderID: o.ID,
		Message: fmt.Sprintf(
			"Thank you, %s. We sent a confirmation to %s.",
			o.Form.FullName, o.Form.Email,
		),
		Amount:  o.Amount,
		Payment: o.Form.Payment,
		City:    o.Form.City,
		PIN:     o.Form.PIN,
		Date:    o.Date,
	}
}
