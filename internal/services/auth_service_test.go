package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/apexstock/apex-stock-api/internal/config"
	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
}

func newAuthFixture(users *mockUserRepo, logs *mockLogRepo) *AuthService {
	tx := &mockTx{repos: &repository.Repositories{User: users, ActivityLog: logs}}
	return NewAuthService(users, tx, testConfig())
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			if username == "alice" {
				return &models.User{ID: 1, Username: "alice", PasswordHash: hash, Role: models.RoleStaff}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	logs := &mockLogRepo{}
	svc := newAuthFixture(users, logs)

	_, unknownErr := svc.Login(context.Background(), "ghost", "whatever")
	_, wrongErr := svc.Login(context.Background(), "alice", "not-the-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	// Identical messages so responses cannot reveal whether the account exists
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Empty(t, logs.entries)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newAuthFixture(&mockUserRepo{}, &mockLogRepo{})

	_, err := svc.Login(context.Background(), "", "")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"username", "password"}, validationErr.Fields)
}

func TestLogin_IssuesTokenAndAuditsOnce(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 7, Username: "alice", Email: "alice@example.com", PasswordHash: hash, Role: models.RoleAdmin}, nil
		},
	}
	logs := &mockLogRepo{}
	svc := newAuthFixture(users, logs)

	result, err := svc.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	token, err := jwt.Parse(result.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")

	assert.Equal(t, "alice", result.User.Username)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	assert.Equal(t, models.ActionLoggedIn, entry.Action)
	assert.Equal(t, models.ResourceUser, entry.ResourceType)
	assert.Equal(t, "User alice logged in", entry.Details)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, uint(7), *entry.UserID)
}

func TestLogin_AuditFailureFailsLogin(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice", PasswordHash: hash}, nil
		},
	}
	logs := &mockLogRepo{failCreate: errors.New("insert failed")}
	svc := newAuthFixture(users, logs)

	result, err := svc.Login(context.Background(), "alice", "correct-horse")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRegister_DuplicateUsernameWritesNothing(t *testing.T) {
	createCalled := false
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
		mockCreate: func(ctx context.Context, user *models.User) error {
			createCalled = true
			return nil
		},
	}
	logs := &mockLogRepo{}
	svc := newAuthFixture(users, logs)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "taken",
		Email:    "new@example.com",
		Password: "secret123",
	})

	var duplicateErr *DuplicateError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, "username", duplicateErr.Field)
	assert.False(t, createCalled)
	assert.Empty(t, logs.entries)
}

func TestRegister_DuplicateEmailWritesNothing(t *testing.T) {
	createCalled := false
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 2, Email: email}, nil
		},
		mockCreate: func(ctx context.Context, user *models.User) error {
			createCalled = true
			return nil
		},
	}
	logs := &mockLogRepo{}
	svc := newAuthFixture(users, logs)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "used@example.com",
		Password: "secret123",
	})

	var duplicateErr *DuplicateError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, "email", duplicateErr.Field)
	assert.False(t, createCalled)
	assert.Empty(t, logs.entries)
}

func TestRegister_HashesPasswordAndAuditsOnce(t *testing.T) {
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		mockCreate: func(ctx context.Context, user *models.User) error {
			user.ID = 42
			return nil
		},
	}
	logs := &mockLogRepo{}
	svc := newAuthFixture(users, logs)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "Bob@Example.COM",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStaff, user.Role, "role defaults to staff")
	assert.Equal(t, "bob@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, VerifyPassword("secret123", user.PasswordHash))

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	assert.Equal(t, models.ActionCreated, entry.Action)
	assert.Equal(t, models.ResourceUser, entry.ResourceType)
	assert.Equal(t, "User bob registered", entry.Details)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, uint(42), *entry.UserID, "entry is attributed to the new user")
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc := newAuthFixture(&mockUserRepo{}, &mockLogRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     "superuser",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"role"}, validationErr.Fields)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	hash, err := HashPassword("current")
	require.NoError(t, err)

	updateCalled := false
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Username: "carol", PasswordHash: hash}, nil
		},
		mockUpdate: func(ctx context.Context, user *models.User) error {
			updateCalled = true
			return nil
		},
	}
	logs := &mockLogRepo{}
	svc := newAuthFixture(users, logs)

	err = svc.ChangePassword(context.Background(), 3, "wrong", "next")

	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.False(t, updateCalled)
	assert.Empty(t, logs.entries)
}

func TestChangePassword_RehashesAndAudits(t *testing.T) {
	hash, err := HashPassword("current")
	require.NoError(t, err)

	var updated *models.User
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Username: "carol", PasswordHash: hash}, nil
		},
		mockUpdate: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
	}
	logs := &mockLogRepo{}
	svc := newAuthFixture(users, logs)

	err = svc.ChangePassword(context.Background(), 3, "current", "next-password")
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.True(t, VerifyPassword("next-password", updated.PasswordHash))

	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.ActionUpdated, logs.entries[0].Action)
	assert.Equal(t, "Password changed", logs.entries[0].Details)
}
