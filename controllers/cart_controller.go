package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/services"
)

type CartController struct {
	Carts services.CartService
}

func NewCartController(carts services.CartService) *CartController {
	return &CartController{Carts: carts}
}

type addItemRequest struct {
	ProductSlug string `json:"product_slug" binding:"required"`
}

// GetCart returns the raw cart for the current identity
func (cc *CartController) GetCart(c *gin.Context) {
	items, err := cc.Carts.GetCart(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetDetailedCart returns the cart joined with live catalog attributes
func (cc *CartController) GetDetailedCart(c *gin.Context) {
	items, err := cc.Carts.DetailedCart(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var total float64
	for _, item := range items {
		price, _ := strconv.ParseFloat(item.Price, 64)
		total += float64(item.Quantity) * price
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": strconv.FormatFloat(total, 'f', 2, 64),
	})
}

// AddItem adds one unit of a product to the cart
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A product is required.", "code": services.CodeInvalidInput})
		return
	}

	if err := cc.Carts.AddItem(c.Request.Context(), middleware.Identity(c), req.ProductSlug); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

// RemoveItem removes a product's line from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	slug := c.Param("product_slug")
	if err := cc.Carts.RemoveItem(c.Request.Context(), middleware.Identity(c), slug); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart removes all items from the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.Carts.Clear(c.Request.Context(), middleware.Identity(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
