package repository

import (
	"context"

	"shop-service/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	// FindByID preloads reviews; returns (nil, nil) when the product does not exist.
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, userID, id uint64) error
	FindByIDForUser(ctx context.Context, id, userID uint64) (*domain.Review, error)
	ListByUser(ctx context.Context, userID uint64) ([]domain.Review, error)
	ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error)
}
