package services

import (
	"errors"
	"fmt"
	"strings"
)

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrSelfDelete         = errors.New("cannot delete your own account")
)

// ValidationError reports missing or invalid required fields. The whole
// write is rejected; nothing is partially applied.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// DuplicateError reports a username or email collision.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// ConflictError blocks supplier deletion while items still reference it.
// ItemsCount is carried so the caller can report it.
type ConflictError struct {
	ItemsCount int64
}

func (e *ConflictError) Error() string {
	return "cannot delete supplier with associated items"
}
