package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/models"
	"storefront/services"
)

// ---- fake user repository ----

type fakeUserRepo struct {
	users     map[string]*models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return f.users[username], nil
}

func newAuthService(users *fakeUserRepo) services.AuthService {
	return services.NewAuthService(users, services.NewJWTService("test-secret"), nil)
}

// ---- tests ----

func TestRegister_CreatesUserAndToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	user, token, svcErr := svc.Register(context.Background(), "alice", "correct-horse")
	require.Nil(t, svcErr)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)

	stored := users.users["alice"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	_, _, svcErr := svc.Register(ctx, "alice", "correct-horse")
	require.Nil(t, svcErr)

	_, _, svcErr = svc.Register(ctx, "alice", "another-pass")
	require.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, svcErr := svc.Register(context.Background(), "alice", "short")
	require.NotNil(t, svcErr)
	assert.Equal(t, services.CodeInvalidInput, svcErr.Code)
}

func TestLogin_Success(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	_, _, svcErr := svc.Register(ctx, "alice", "correct-horse")
	require.Nil(t, svcErr)

	user, token, svcErr := svc.Login(ctx, "alice", "correct-horse")
	require.Nil(t, svcErr)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	_, _, svcErr := svc.Register(ctx, "alice", "correct-horse")
	require.Nil(t, svcErr)

	_, _, svcErr = svc.Login(ctx, "alice", "wrong-horse")
	require.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
	assert.Equal(t, "Invalid username or password.", svcErr.Message)
}

func TestLogin_UnknownUserSameMessageAsWrongPassword(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, svcErr := svc.Login(context.Background(), "nobody", "whatever-pass")
	require.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
	assert.Equal(t, "Invalid username or password.", svcErr.Message)
}
