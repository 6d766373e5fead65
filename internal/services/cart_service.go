package services

import (
	"context"

	"shop-service/internal/cache"
	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"github.com/shopspring/decimal"
)

type CartService struct {
	repo     repository.CartRepository
	products *cache.ProductCache
}

func NewCartService(repo repository.CartRepository, products *cache.ProductCache) *CartService {
	return &CartService{repo: repo, products: products}
}

func (s *CartService) List(ctx context.Context, user domain.Identity) ([]domain.CartItem, error) {
	return s.repo.ListByUser(ctx, user.UserID)
}

func (s *CartService) Add(ctx context.Context, user domain.Identity, productID uint64, quantity uint32) (*domain.CartItem, error) {
	if quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	return s.repo.Upsert(ctx, user.UserID, productID, quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, user domain.Identity, itemID uint64, quantity uint32) (*domain.CartItem, error) {
	if quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, user.UserID, itemID, quantity)
}

func (s *CartService) Remove(ctx context.Context, user domain.Identity, itemID uint64) error {
	return s.repo.Remove(ctx, user.UserID, itemID)
}

func (s *CartService) Clear(ctx context.Context, user domain.Identity) error {
	return s.repo.Clear(ctx, user.UserID)
}

func (s *CartService) Totals(ctx context.Context, user domain.Identity) (*domain.CartTotals, error) {
	items, err := s.repo.ListByUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	totals := &domain.CartTotals{TotalAmount: decimal.Zero, ItemCount: len(items)}
	for _, item := range items {
		totals.TotalAmount = totals.TotalAmount.Add(item.TotalPrice())
		totals.TotalItems += item.Quantity
	}
	return totals, nil
}
