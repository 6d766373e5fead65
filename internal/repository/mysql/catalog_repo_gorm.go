package mysql

import (
	"context"
	"errors"
	"strings"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).
		Preload("Reviews").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Reviews").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if err != nil && isDuplicateKey(err) {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *reviewRepo) Update(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Model(review).
		Updates(map[string]interface{}{
			"rating":  review.Rating,
			"title":   review.Title,
			"comment": review.Comment,
		}).Error
}

func (r *reviewRepo) Delete(ctx context.Context, userID, id uint64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepo) FindByIDForUser(ctx context.Context, id, userID uint64) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepo) ListByUser(ctx context.Context, userID uint64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
