package services

import (
	"time"

	"shop-service/internal/domain"

	"github.com/shopspring/decimal"
)

func testIdentity() domain.Identity {
	return domain.Identity{UserID: 7, Username: "alice", Email: "alice@example.com"}
}

func pendingOrder(id uint64) *domain.Order {
	return &domain.Order{
		ID:              id,
		UserID:          7,
		TotalAmount:     decimal.RequireFromString("25.00"),
		Status:          domain.StatusPending,
		ShippingAddress: "1 Main St",
		Items: []domain.OrderItem{
			{ID: 1, OrderID: id, ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ID: 2, OrderID: id, ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
