package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles the admin-facing user management surface
type UserService struct {
	users repository.UserRepository
	tx    repository.TxManager
}

func NewUserService(users repository.UserRepository, tx repository.TxManager) *UserService {
	return &UserService{users: users, tx: tx}
}

// CreateUserInput carries the fields accepted when an admin creates a user
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is a merge patch: nil fields keep their prior value.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Role     *string
	Password *string
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) Stats(ctx context.Context) (*models.UserStats, error) {
	return s.users.Stats(ctx)
}

// Create adds a user on behalf of an admin. Role is required here, unlike
// self-registration where it defaults to staff.
func (s *UserService) Create(ctx context.Context, in CreateUserInput, actorID uint) (*models.User, error) {
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
	if in.Role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
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
		entry := NewEntry(actorID, models.ActionCreated, models.ResourceUser, &user.ID,
			fmt.Sprintf("Admin created user: %s (%s)", user.Username, user.Role))
		return r.ActivityLog.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Update applies a merge patch, re-checking username/email uniqueness
// against other users.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput, actorID uint) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if existing, err := s.users.FindByUsername(ctx, *in.Username); err == nil && existing.ID != id {
			return nil, &DuplicateError{Field: "username"}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if existing, err := s.users.FindByEmail(ctx, *in.Email); err == nil && existing.ID != id {
			return nil, &DuplicateError{Field: "email"}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = strings.ToLower(*in.Email)
	}
	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			return nil, &ValidationError{Fields: []string{"role"}}
		}
		user.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	err = s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.User.Update(ctx, user); err != nil {
			return err
		}
		entry := NewEntry(actorID, models.ActionUpdated, models.ResourceUser, &user.ID,
			fmt.Sprintf("Admin updated user: %s", user.Username))
		return r.ActivityLog.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user. Admins cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, id uint, actorID uint) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if user.ID == actorID {
		return ErrSelfDelete
	}

	return s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.User.Delete(ctx, id); err != nil {
			return err
		}
		entry := NewEntry(actorID, models.ActionDeleted, models.ResourceUser, &id,
			fmt.Sprintf("Admin deleted user: %s", user.Username))
		return r.ActivityLog.Create(ctx, entry)
	})
}
