package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"calder/tictactoe-arena/internal/api/models"
)

func hashForTest(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h), err
}

// memoryUserRepo is an in-memory UserRepository for service tests.
type memoryUserRepo struct {
	users map[string]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*models.User)}
}

func (r *memoryUserRepo) CreateUser(ctx context.Context, user *models.User, password string) error {
	// The real repository hashes before insert; mirror that here so Login's
	// bcrypt comparison works.
	hashed, err := hashForTest(password)
	if err != nil {
		return err
	}
	user.ID = int64(len(r.users) + 1)
	user.PasswordHash = hashed
	r.users[user.Username] = user
	return nil
}

func (r *memoryUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.users[username], nil
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	svc := NewUserService(newMemoryUserRepo())
	ctx := context.Background()

	err := svc.Register(ctx, &models.RegisterRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	err = svc.Register(ctx, &models.RegisterRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	token, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "alice", claims["un"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	svc := NewUserService(newMemoryUserRepo())
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &models.RegisterRequest{Username: "bob", Password: "correct horse"}))

	_, err := svc.Login(ctx, &models.LoginRequest{Username: "bob", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGuestLogin(t *testing.T) {
	svc := NewUserService(newMemoryUserRepo())

	id, err := svc.GuestLogin(context.Background())
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "guest ID must be a UUID")
}
