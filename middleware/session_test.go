package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func sessionRouter() (*gin.Engine, *struct {
	identity      string
	authenticated bool
	username      string
}) {
	gin.SetMode(gin.TestMode)
	captured := &struct {
		identity      string
		authenticated bool
		username      string
	}{}

	r := gin.New()
	r.Use(Session([]byte(testSecret), "localhost"))
	r.GET("/probe", func(c *gin.Context) {
		captured.identity = Identity(c)
		captured.authenticated = c.GetBool(AuthenticatedKey)
		captured.username = c.GetString(UsernameKey)
		c.Status(http.StatusOK)
	})
	return r, captured
}

func signTestToken(t *testing.T, secret, userID, username string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestSession_MintsAnonymousIdentity(t *testing.T) {
	r, captured := sessionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, captured.authenticated)
	assert.Contains(t, captured.identity, "anon:")

	// A session cookie is set so the identity is stable across requests.
	cookies := w.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == SessionCookie {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.Equal(t, "anon:"+sessionCookie.Value, captured.identity)
}

func TestSession_ReusesExistingSessionCookie(t *testing.T) {
	r, captured := sessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "abc-123"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "anon:abc-123", captured.identity)
}

func TestSession_ResolvesAuthenticatedIdentity(t *testing.T) {
	r, captured := sessionRouter()

	token := signTestToken(t, testSecret, "11111111-2222-3333-4444-555555555555", "alice", time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.True(t, captured.authenticated)
	assert.Equal(t, "user:11111111-2222-3333-4444-555555555555", captured.identity)
	assert.Equal(t, "alice", captured.username)
}

func TestSession_ExpiredTokenFallsBackToAnonymous(t *testing.T) {
	r, captured := sessionRouter()

	token := signTestToken(t, testSecret, "11111111-2222-3333-4444-555555555555", "alice", time.Now().Add(-time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.False(t, captured.authenticated)
	assert.Contains(t, captured.identity, "anon:")
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session([]byte(testSecret), "localhost"))
	r.GET("/orders", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
