package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxFunc runs with repositories bound to a single database transaction.
type TxFunc func(repos *Repositories) error

// TxManager runs a business mutation and its audit entry as one unit:
// both commit together or neither does.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by gorm transactions
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) WithinTransaction(ctx context.Context, fn TxFunc) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
