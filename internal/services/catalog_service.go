package services

import (
	"context"
	"strings"

	"shop-service/internal/domain"
	"shop-service/internal/repository"
)

type CatalogService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
}

func NewCatalogService(products repository.ProductRepository, reviews repository.ReviewRepository) *CatalogService {
	return &CatalogService{products: products, reviews: reviews}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) ProductReviews(ctx context.Context, productID uint64) ([]domain.Review, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.reviews.ListByProduct(ctx, productID)
}

func (s *CatalogService) CreateReview(ctx context.Context, user domain.Identity, productID uint64, rating uint8, title, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:    user.UserID,
		ProductID: productID,
		Rating:    rating,
		Title:     strings.TrimSpace(title),
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *CatalogService) UpdateReview(ctx context.Context, user domain.Identity, reviewID uint64, rating uint8, title, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	review, err := s.reviews.FindByIDForUser(ctx, reviewID, user.UserID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, domain.ErrReviewNotFound
	}

	review.Rating = rating
	review.Title = strings.TrimSpace(title)
	review.Comment = strings.TrimSpace(comment)
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *CatalogService) DeleteReview(ctx context.Context, user domain.Identity, reviewID uint64) error {
	return s.reviews.Delete(ctx, user.UserID, reviewID)
}

func (s *CatalogService) MyReviews(ctx context.Context, user domain.Identity) ([]domain.Review, error) {
	return s.reviews.ListByUser(ctx, user.UserID)
}
