package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Context keys set by the session middleware
const (
	IdentityKey      = "identity"
	UserIDKey        = "user_id"
	UsernameKey      = "username"
	AuthenticatedKey = "authenticated"
)

// Cookie names
const (
	TokenCookie   = "token"
	SessionCookie = "session_id"
)

const anonymousSessionMaxAge = 30 * 24 * time.Hour

// Session resolves the visitor identity for every request. A valid JWT
// cookie yields an authenticated identity; otherwise an anonymous session
// cookie is read (or minted) and its id becomes the identity. All cart state
// is keyed off the identity string.
func Session(jwtSecret []byte, cookieDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, err := c.Cookie(TokenCookie); err == nil && tokenString != "" {
			if userID, username, ok := parseToken(tokenString, jwtSecret); ok {
				c.Set(UserIDKey, userID)
				c.Set(UsernameKey, username)
				c.Set(IdentityKey, "user:"+userID)
				c.Set(AuthenticatedKey, true)
				c.Next()
				return
			}
			// Invalid or expired token: fall through to an anonymous session.
		}

		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, int(anonymousSessionMaxAge.Seconds()), "/", cookieDomain, false, true)
		}
		c.Set(IdentityKey, "anon:"+sessionID)
		c.Set(AuthenticatedKey, false)
		c.Next()
	}
}

func parseToken(tokenString string, secret []byte) (userID, username string, ok bool) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", false
	}
	userID, _ = claims["user_id"].(string)
	username, _ = claims["username"].(string)
	return userID, username, userID != ""
}

// RequireAuth rejects requests without an authenticated identity
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(AuthenticatedKey) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity returns the resolved identity string for the request
func Identity(c *gin.Context) string {
	return c.GetString(IdentityKey)
}

// AnonymousIdentity returns the anonymous identity for the request's session
// cookie even when the visitor is authenticated. Used to fold a pre-login
// cart into the user's cart.
func AnonymousIdentity(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookie)
	if err != nil || sessionID == "" {
		return ""
	}
	return "anon:" + sessionID
}
