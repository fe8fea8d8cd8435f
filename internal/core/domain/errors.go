package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers. The API error handler maps each to a
// stable HTTP status code.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrProductNotFound    = errors.New("product not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidQuantity    = errors.New("valid product ID and positive quantity are required")
	ErrLoginThrottled     = errors.New("too many failed login attempts")
)

// InsufficientStockError is returned when a sale requests more units than are
// available. It carries the availability observed under the row lock so the
// caller can surface the message verbatim.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Only %d units available.", e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError and
// returns it for access to the available quantity.
func IsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
