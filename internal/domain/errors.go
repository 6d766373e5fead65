package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrBlankShippingAddress = errors.New("shipping address is required")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview      = errors.New("product already reviewed by this user")
	ErrPaymentNotCompleted  = errors.New("payment not completed")
	ErrCheckoutInProgress   = errors.New("checkout already in progress")
)

// PaymentError is surfaced when the gateway reports a processing fault at
// intent creation. The order survives as cancelled; see OrderService.CreateOrder.
type PaymentError struct {
	OrderID uint64
	Err     error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment processing failed: %v", e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }
