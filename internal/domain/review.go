package domain

import "time"

// Review holds a 1-5 star rating; one review per user and product.
type Review struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_user_product"`
	ProductID uint64    `json:"product_id" gorm:"not null;uniqueIndex:idx_reviews_user_product;index"`
	Rating    uint8     `json:"rating" gorm:"not null"`
	Title     string    `json:"title" gorm:"type:varchar(200)"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
