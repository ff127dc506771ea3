package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apexstock/apex-stock-api/internal/config"
	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and password changes
type AuthService struct {
	users repository.UserRepository
	tx    repository.TxManager
	cfg   *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, tx repository.TxManager, cfg *config.Config) *AuthService {
	return &AuthService{users: users, tx: tx, cfg: cfg}
}

// LoginResult represents the result of a successful login
type LoginResult struct {
	AccessToken string              `json:"access_token"`
	User        models.UserResponse `json:"user"`
}

// RegisterInput carries the fields accepted at registration
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates a new account. Duplicate checks run before any write;
// the user row and its audit entry commit together.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var missing []string
	if in.Username == "" {
		missing = append(missing, "username")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	if in.Role == "" {
		in.Role = models.RoleStaff
	}
	if !models.ValidRole(in.Role) {
		return nil, &ValidationError{Fields: []string{"role"}}
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, &DuplicateError{Field: "username"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, &DuplicateError{Field: "email"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		Role:         in.Role,
	}

	err = s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.User.Create(ctx, user); err != nil {
			return err
		}
		entry := NewEntry(user.ID, models.ActionCreated, models.ResourceUser, &user.ID,
			fmt.Sprintf("User %s registered", user.Username))
		return r.ActivityLog.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a signed, time-bounded token.
// Unknown username and wrong password yield the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		var missing []string
		if username == "" {
			missing = append(missing, "username")
		}
		if password == "" {
			missing = append(missing, "password")
		}
		return nil, &ValidationError{Fields: missing}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		entry := NewEntry(user.ID, models.ActionLoggedIn, models.ResourceUser, &user.ID,
			fmt.Sprintf("User %s logged in", user.Username))
		return r.ActivityLog.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		User:        user.ToResponse(),
	}, nil
}

// ChangePassword verifies the old password before rehashing the new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	var missing []string
	if oldPassword == "" {
		missing = append(missing, "old_password")
	}
	if newPassword == "" {
		missing = append(missing, "new_password")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !VerifyPassword(oldPassword, user.PasswordHash) {
		return ErrInvalidPassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.User.Update(ctx, user); err != nil {
			return err
		}
		entry := NewEntry(user.ID, models.ActionUpdated, models.ResourceUser, &user.ID, "Password changed")
		return r.ActivityLog.Create(ctx, entry)
	})
}

// generateJWT creates a new HS256 token for a user
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
