package http

import (
	"errors"
	"net/http"
	"strconv"

	"shop-service/internal/controllers/http/middleware"
	"shop-service/internal/domain"
	"shop-service/internal/logging"
	"shop-service/internal/metrics"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	orders  *services.OrderService
	cart    *services.CartService
	catalog *services.CatalogService
}

func NewHandler(orders *services.OrderService, cart *services.CartService, catalog *services.CatalogService) *Handler {
	return &Handler{orders: orders, cart: cart, catalog: catalog}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/products/:id/reviews", h.ProductReviews)

	api := r.Group("/api")
	api.Use(auth)
	{
		api.GET("/cart", h.ListCart)
		api.POST("/cart", h.AddCartItem)
		api.PUT("/cart/:id", h.UpdateCartItem)
		api.DELETE("/cart/:id", h.RemoveCartItem)
		api.DELETE("/cart", h.ClearCart)
		api.GET("/cart/total", h.CartTotals)

		api.POST("/reviews", h.CreateReview)
		api.PUT("/reviews/:id", h.UpdateReview)
		api.DELETE("/reviews/:id", h.DeleteReview)
		api.GET("/reviews/mine", h.MyReviews)

		api.POST("/orders", h.CreateOrder)
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders/:id/confirm-payment", h.ConfirmPayment)
	}
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

func (h *Handler) ProductReviews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	reviews, err := h.catalog.ProductReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) ListCart(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	items, err := h.cart.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddCartItem(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.cart.Add(c.Request.Context(), user, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.cart.UpdateQuantity(c.Request.Context(), user, id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.cart.Remove(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearCart(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	if err := h.cart.Clear(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CartTotals(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	totals, err := h.cart.Totals(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *Handler) CreateReview(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := h.catalog.CreateReview(c.Request.Context(), user, req.ProductID, req.Rating, req.Title, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *Handler) UpdateReview(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := h.catalog.UpdateReview(c.Request.Context(), user, id, req.Rating, req.Title, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteReview(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) MyReviews(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	reviews, err := h.catalog.MyReviews(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}

	success := false
	defer func() { metrics.RecordOrderOperation("create", success) }()

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), user, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}
	success = true

	secret := h.orders.ClientSecret(c.Request.Context(), order)
	c.JSON(http.StatusCreated, toOrderResponse(order, secret))
}

func (h *Handler) ListOrders(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i], ""))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetOrder(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order, ""))
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	user, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	success := false
	defer func() { metrics.RecordOrderOperation("confirm_payment", success) }()

	order, err := h.orders.ConfirmPayment(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	success = true
	c.JSON(http.StatusOK, gin.H{"status": "Payment confirmed", "order_status": order.Status})
}

func identity(c *gin.Context) (domain.Identity, bool) {
	user, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return user, ok
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	var payErr *domain.PaymentError

	switch {
	case errors.Is(err, domain.ErrBlankShippingAddress),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrDuplicateReview),
		errors.Is(err, domain.ErrPaymentNotCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &payErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": payErr.Error()})
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logging.From(c).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
