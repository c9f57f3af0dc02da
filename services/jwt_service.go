package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = time.Hour * 24

// JWTService issues the HS256 session tokens set as the auth cookie.
type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Generate creates a token carrying the user ID and username
func (s *JWTService) Generate(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
