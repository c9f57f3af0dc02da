package controllers

import (
	"github.com/gin-gonic/gin"

	"storefront/services"
)

// respondServiceError writes a ServiceError as the structured error payload
// shared by every form-style endpoint.
func respondServiceError(c *gin.Context, err *services.ServiceError) {
	payload := gin.H{"error": err.Message}
	if err.Code != "" {
		payload["code"] = err.Code
	}
	c.JSON(err.StatusCode, payload)
}
