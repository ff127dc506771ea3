package models

import (
	"time"
)

// Supplier represents a vendor that stock items are sourced from
type Supplier struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:50;not null" json:"name"`
	ContactPerson *string   `gorm:"size:300" json:"contact_person"`
	Email         *string   `gorm:"size:100" json:"email"`
	Phone         *string   `gorm:"size:20" json:"phone"`
	Address       *string   `gorm:"type:text" json:"address"`
	CreatedAt     time.Time `json:"created_at"`

	// Associations
	Items []Item `gorm:"foreignKey:SupplierID" json:"items,omitempty"`
}

// TableName specifies the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierResponse is the JSON response format for suppliers
type SupplierResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	ContactPerson *string   `json:"contact_person"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	Address       *string   `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	ItemsCount    int64     `json:"items_count"`
}

// ToResponse converts Supplier to SupplierResponse. itemsCount is resolved
// by the caller with an explicit count query, never a lazy fetch.
func (s *Supplier) ToResponse(itemsCount int64) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		CreatedAt:     s.CreatedAt,
		ItemsCount:    itemsCount,
	}
}
