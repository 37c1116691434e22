package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidProduct     = errors.New("invalid product reference")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidProductData = errors.New("invalid product data")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// DispatchError reports a failed submission of an order to the fabrication
// queue. The local order it refers to is already persisted.
type DispatchError struct {
	OrderID int64
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch order %d: %v", e.OrderID, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
