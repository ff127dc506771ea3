package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User        UserRepository
	Item        ItemRepository
	Supplier    SupplierRepository
	ActivityLog ActivityLogRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Item:        NewItemRepository(db),
		Supplier:    NewSupplierRepository(db),
		ActivityLog: NewActivityLogRepository(db),
	}
}
