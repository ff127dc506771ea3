package models

import (
	"time"
)

// User represents an account that can sign in to the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"size:20;default:staff" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin returns true if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Role constants
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserStats holds aggregate user counts for the admin dashboard
type UserStats struct {
	TotalUsers int64 `json:"total_users"`
	Admins     int64 `json:"admins"`
	Staff      int64 `json:"staff"`
}
