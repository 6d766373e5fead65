package repository

import (
	"context"

	"shop-service/internal/domain"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID uint64) ([]domain.CartItem, error)
	// Upsert adds the product to the cart or bumps the quantity of an existing line.
	Upsert(ctx context.Context, userID, productID uint64, quantity uint32) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint64, quantity uint32) (*domain.CartItem, error)
	Remove(ctx context.Context, userID, itemID uint64) error
	Clear(ctx context.Context, userID uint64) error
}
