package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string          `json:"name" gorm:"type:varchar(200);not null;index"`
	Description    string          `json:"description" gorm:"type:text"`
	Price          decimal.Decimal `json:"price" gorm:"not null;type:decimal(10,2);index"`
	InventoryCount uint32          `json:"inventory_count" gorm:"not null;default:0"`
	ImageURL       string          `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	Reviews        []Review        `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (p *Product) InStock() bool {
	return p.InventoryCount > 0
}

func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range p.Reviews {
		sum += int(r.Rating)
	}
	return float64(sum) / float64(len(p.Reviews))
}
