package services

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventNotBookable    = errors.New("event is not open for booking")
	ErrInsufficientTickets = errors.New("not enough tickets available")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrQueryNotAllowed     = errors.New("only single read statements are allowed")
	ErrTableNotFound       = errors.New("table not found")
)
