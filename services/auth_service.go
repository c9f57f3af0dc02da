package services

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront/models"
	"storefront/repository"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, string, *ServiceError)
	Login(ctx context.Context, username, password string) (*models.User, string, *ServiceError)
}

type authService struct {
	users repository.UserRepository
	jwt   *JWTService
	log   *zap.Logger
}

func NewAuthService(users repository.UserRepository, jwt *JWTService, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		users: users,
		jwt:   jwt,
		log:   log,
	}
}

// Register creates a user and returns a session token for it.
func (s *authService) Register(ctx context.Context, username, password string) (*models.User, string, *ServiceError) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeInvalidInput, Message: "Username and password are required."}
	}
	if len(password) < 8 {
		return nil, "", &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeInvalidInput, Message: "Password must be at least 8 characters."}
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to look up username", zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create account."}
	}
	if existing != nil {
		return nil, "", &ServiceError{StatusCode: http.StatusConflict, Code: CodeInvalidInput, Message: "Username already taken."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create account."}
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create account."}
	}

	token, err := s.jwt.Generate(user.ID.String(), user.Username)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create account."}
	}

	s.log.Info("User registered", zap.String("username", username))
	return user, token, nil
}

// Login verifies credentials and returns a session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, *ServiceError) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeInvalidInput, Message: "Username and password are required."}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to look up username", zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to log in."}
	}
	if user == nil {
		return nil, "", &ServiceError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthenticated, Message: "Invalid username or password."}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", &ServiceError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthenticated, Message: "Invalid username or password."}
	}

	token, err := s.jwt.Generate(user.ID.String(), user.Username)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to log in."}
	}

	return user, token, nil
}
