package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/services"
)

type OrderController struct {
	Orders services.OrderService
}

func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type checkoutRequest struct {
	ShippingName    string `json:"shipping_name"`
	ShippingAddress string `json:"shipping_address"`
}

// Checkout converts the current cart into an order
func (oc *OrderController) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "code": services.CodeInvalidInput})
		return
	}

	result, svcErr := oc.Orders.PlaceOrder(
		c.Request.Context(),
		middleware.Identity(c),
		c.GetString(middleware.UserIDKey),
		req.ShippingName,
		req.ShippingAddress,
	)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order placed",
		"order_id": result.OrderID,
		"total":    result.Total,
		"redirect": result.Redirect,
	})
}

// GetOrderHistory returns the authenticated user's orders, newest first
func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	orders, svcErr := oc.Orders.GetUserOrders(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
