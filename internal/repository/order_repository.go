package repository

import (
	"context"

	"shop-service/internal/domain"
)

type OrderRepository interface {
	// CreateFromCart converts the user's cart into a new pending order inside a
	// single transaction: snapshot the cart lines, freeze unit prices, persist the
	// order and its items, clear the cart. Returns domain.ErrEmptyCart when there
	// is nothing to convert; on any error nothing is persisted.
	CreateFromCart(ctx context.Context, userID uint64, shippingAddress string) (*domain.Order, error)

	// FindByIDForUser returns (nil, nil) when no order with this id belongs to the
	// user, so missing and foreign orders are indistinguishable to the caller.
	FindByIDForUser(ctx context.Context, id, userID uint64) (*domain.Order, error)
	FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error)

	UpdateStatus(ctx context.Context, order *domain.Order, status domain.OrderStatus) error
	// SetPaymentReference stores the gateway reference; it refuses to overwrite
	// one that is already set.
	SetPaymentReference(ctx context.Context, order *domain.Order, ref string) error
}
