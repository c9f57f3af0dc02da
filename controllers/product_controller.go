package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/services"
)

type ProductController struct {
	Products services.ProductService
}

func NewProductController(products services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

// GetProduct returns a single product with its category path
func (pc *ProductController) GetProduct(c *gin.Context) {
	detail, svcErr := pc.Products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Search powers the search box
func (pc *ProductController) Search(c *gin.Context) {
	products, svcErr := pc.Products.Search(c.Request.Context(), c.Query("q"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListSubcategory returns the products on a subcategory page
func (pc *ProductController) ListSubcategory(c *gin.Context) {
	products, svcErr := pc.Products.ListBySubcategory(c.Request.Context(), c.Param("slug"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
