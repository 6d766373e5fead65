package http

import (
	"shop-service/internal/domain"
)

type AddCartItemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  uint32 `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity uint32 `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

type ReviewRequest struct {
	ProductID uint64 `json:"product_id"`
	Rating    uint8  `json:"rating" binding:"required,min=1,max=5"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

type ProductResponse struct {
	domain.Product
	InStock       bool    `json:"in_stock"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

func toProductResponse(p domain.Product) ProductResponse {
	resp := ProductResponse{
		Product:       p,
		InStock:       p.InStock(),
		AverageRating: p.AverageRating(),
		ReviewCount:   len(p.Reviews),
	}
	resp.Product.Reviews = nil
	return resp
}

// OrderResponse carries the payment client secret only when the create
// endpoint built it; detail and list responses leave it empty.
type OrderResponse struct {
	domain.Order
	ItemsCount   int    `json:"items_count"`
	ClientSecret string `json:"client_secret,omitempty"`
}

func toOrderResponse(o *domain.Order, clientSecret string) OrderResponse {
	return OrderResponse{
		Order:        *o,
		ItemsCount:   o.ItemsCount(),
		ClientSecret: clientSecret,
	}
}
