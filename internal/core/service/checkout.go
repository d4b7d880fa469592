package service

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/niksmo/storefront/internal/core/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var fieldMessages = map[string]string{
	domain.FieldFullName: "Name is required",
	domain.FieldEmail:    "Valid email required",
	domain.FieldPhone:    "Enter 10-digit phone",
	domain.FieldAddress:  "Address too short",
	domain.FieldCity:     "City is required",
	domain.FieldPIN:      "6-digit PIN required",
}

type checkoutFields struct {
	FullName string `form:"fullName" validate:"nonblank"`
	Email    string `form:"email" validate:"plainemail"`
	Phone    string `form:"phone" validate:"ndigits=10"`
	Address  string `form:"address" validate:"trimmin=6"`
	City     string `form:"city" validate:"nonblank"`
	PIN      string `form:"pin" validate:"ndigits=6"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	mustRegister(v, "nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "plainemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "ndigits", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return isDigits(fl.Field().String(), n)
	})
	mustRegister(v, "trimmin", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		trimmed := strings.TrimSpace(fl.Field().String())
		return utf8.RuneCountInString(trimmed) >= n
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err) // develop mistake
	}
}

// isDigits reports whether s is exactly n ASCII decimal digits.
func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateForm checks the checkout fields and returns a message for
// every invalid one. Missing fields fail their rule like any other value.
//
// The payment method is not validated.
func ValidateForm(f domain.OrderForm) domain.FieldErrors {
	errs := domain.FieldErrors{}

	err := formValidator.Struct(checkoutFields{
		FullName: f.FullName,
		Email:    f.Email,
		Phone:    f.Phone,
		Address:  f.Address,
		City:     f.City,
		PIN:      f.PIN,
	})
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// not reachable for a struct argument; refuse the whole form
		for field, msg := range fieldMessages {
			errs[field] = msg
		}
		return errs
	}

	for _, fe := range verrs {
		errs[fe.Field()] = fieldMessages[fe.Field()]
	}
	return errs
}
