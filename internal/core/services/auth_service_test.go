package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartchama/internal/adapters/persistence/memory"
	"smartchama/internal/config"
	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/idgen"
	"smartchama/internal/pkg/jwt"
	"smartchama/internal/pkg/password"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenMins: 15,
		},
	}
}

func TestSignupAndLogin(t *testing.T) {
	store := memory.NewStore(idgen.NewCounter(1))
	svc := NewAuthService(memory.NewUserRepository(store), testConfig())
	ctx := context.Background()

	result, err := svc.Signup(ctx, &domain.InsertUser{
		Name:     "Mary Wanjiku",
		Email:    "mary@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, result.User.Role)
	assert.NotEmpty(t, result.AccessToken)

	// stored password is a hash, not the plaintext
	assert.NotEqual(t, "password123", result.User.Password)
	assert.True(t, password.Verify("password123", result.User.Password))

	login, err := svc.Login(ctx, &LoginInput{Email: "mary@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	claims, err := jwt.ValidateAccessToken(login.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "mary@example.com", claims.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := memory.NewStore(idgen.NewCounter(1))
	svc := NewAuthService(memory.NewUserRepository(store), testConfig())
	ctx := context.Background()

	_, err := svc.Signup(ctx, &domain.InsertUser{
		Name: "A", Email: "dup@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, &domain.InsertUser{
		Name: "B", Email: "dup@example.com", Password: "password456",
	})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginRejections(t *testing.T) {
	store := memory.NewStore(idgen.NewCounter(1))
	svc := NewAuthService(memory.NewUserRepository(store), testConfig())
	ctx := context.Background()

	_, err := svc.Signup(ctx, &domain.InsertUser{
		Name: "Mary", Email: "mary@example.com", Password: "password123", Role: domain.RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "mary@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// role mismatch is indistinguishable from bad credentials
	_, err = svc.Login(ctx, &LoginInput{Email: "mary@example.com", Password: "password123", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// matching role passes
	_, err = svc.Login(ctx, &LoginInput{Email: "mary@example.com", Password: "password123", Role: domain.RoleUser})
	assert.NoError(t, err)
}
