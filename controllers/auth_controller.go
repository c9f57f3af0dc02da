package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/logger"
	"storefront/middleware"
	"storefront/services"
)

const tokenCookieMaxAge = 86400 // matches the token TTL of 24 hours

type AuthController struct {
	Auth         services.AuthService
	Carts        services.CartService
	CookieDomain string
}

func NewAuthController(auth services.AuthService, carts services.CartService, cookieDomain string) *AuthController {
	return &AuthController{
		Auth:         auth,
		Carts:        carts,
		CookieDomain: cookieDomain,
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account, signs the visitor in, and folds any
// anonymous-session cart into the new user's cart.
func (ac *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required.", "code": services.CodeInvalidInput})
		return
	}

	user, token, svcErr := ac.Auth.Register(c.Request.Context(), req.Username, req.Password)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.establishSession(c, user.ID.String(), token)
	c.JSON(http.StatusCreated, gin.H{"message": "Account created", "username": user.Username})
}

// Login authenticates the visitor and merges their anonymous cart
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required.", "code": services.CodeInvalidInput})
		return
	}

	user, token, svcErr := ac.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.establishSession(c, user.ID.String(), token)
	c.JSON(http.StatusOK, gin.H{"message": "Logged in", "username": user.Username})
}

// Logout clears the session cookie
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", ac.CookieDomain, false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ac *AuthController) establishSession(c *gin.Context, userID, token string) {
	c.SetCookie(middleware.TokenCookie, token, tokenCookieMaxAge, "/", ac.CookieDomain, false, true)

	// Carry the pre-login cart over to the user. Best effort: a merge failure
	// must not fail the sign-in.
	anonIdentity := middleware.AnonymousIdentity(c)
	if anonIdentity == "" {
		return
	}
	if err := ac.Carts.MergeCarts(c.Request.Context(), anonIdentity, "user:"+userID); err != nil {
		logger.Log.Warn("Failed to merge anonymous cart", zap.String("user_id", userID))
	}
}
