package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour, logging.Discard())
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = "user-123"
	}).Return(nil).Once()

	session, err := authService.Register(ctx, " Test User ", " Test@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-123", session.User.ID)
	assert.Equal(t, "Test User", session.User.Name)
	assert.Equal(t, "test@example.com", session.User.Email)
	assert.False(t, session.User.IsAdmin)
	assert.NotEqual(t, "password123", session.User.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(session.User.Password), []byte("password123")))
	assert.NotEmpty(t, session.Token)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.Register(ctx, "Other", "test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)

	// Test unique index race
	mockRepo.On("GetByEmail", ctx, "race@example.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(fmt.Errorf("insert: %w", repositories.ErrDuplicate)).Once()
	_, err = authService.Register(ctx, "Race", "race@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{
		ID:       "user-123",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: hashed(t, "password123"),
	}

	// Test successful login
	mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	session, err := authService.Login(ctx, "TEST@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	parsedToken, err := jwt.Parse(session.Token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	_, err = authService.Login(ctx, user.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Test invalid credentials (user not found) fails the same way
	mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()
	_, err2 := authService.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err2, services.ErrInvalidCredentials)
	assert.Equal(t, err.Error(), err2.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	validTokenString, err := authService.GenerateToken("user-123")
	require.NoError(t, err)

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "user-123"})
	foreignString, _ := foreign.SignedString([]byte("someone_else"))
	_, err = authService.ValidateToken(foreignString)
	assert.Error(t, err)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	token, err := authService.GenerateToken("user-123")
	require.NoError(t, err)

	mockRepo.On("GetByID", ctx, "user-123").Return(&models.User{ID: "user-123", Name: "Test"}, nil).Once()
	user, err := authService.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Test", user.Name)

	mockRepo.On("GetByID", ctx, "user-123").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Authenticate(ctx, token)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = authService.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	original := hashed(t, "password123")
	newName := "Renamed"

	// Name only: the password hash is untouched
	mockRepo.On("GetByID", ctx, "user-123").Return(&models.User{ID: "user-123", Name: "Old", Email: "a@example.com", Password: original}, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "Renamed" && u.Password == original
	})).Return(nil).Once()
	session, err := authService.UpdateProfile(ctx, "user-123", services.ProfileUpdate{Name: &newName})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	mockRepo.AssertExpectations(t)

	// New password is rehashed
	newPassword := "secret456"
	mockRepo.On("GetByID", ctx, "user-123").Return(&models.User{ID: "user-123", Email: "a@example.com", Password: original}, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Password != original && bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(newPassword)) == nil
	})).Return(nil).Once()
	_, err = authService.UpdateProfile(ctx, "user-123", services.ProfileUpdate{Password: &newPassword})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Email taken by someone else
	taken := "b@example.com"
	mockRepo.On("GetByID", ctx, "user-123").Return(&models.User{ID: "user-123", Email: "a@example.com"}, nil).Once()
	mockRepo.On("GetByEmail", ctx, taken).Return(&models.User{ID: "user-456"}, nil).Once()
	_, err = authService.UpdateProfile(ctx, "user-123", services.ProfileUpdate{Email: &taken})
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestEnsureAdmin(t *testing.T) {
	assert.ErrorIs(t, services.EnsureAdmin(nil), services.ErrUnauthorized)
	assert.ErrorIs(t, services.EnsureAdmin(&models.User{}), services.ErrForbidden)
	assert.NoError(t, services.EnsureAdmin(&models.User{IsAdmin: true}))
}
