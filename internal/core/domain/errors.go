package domain

import "errors"

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidSize     = errors.New("size is not offered")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownCommand  = errors.New("unknown command")
)
