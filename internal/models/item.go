package models

import (
	"time"
)

// Item represents a stock item tracked in the inventory
type Item struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Category     string    `gorm:"size:200;not null" json:"category"`
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	Price        float64   `gorm:"not null" json:"price"`
	ReorderLevel int       `gorm:"not null" json:"reorder_level"`
	SupplierID   *uint     `gorm:"index" json:"supplier_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName specifies the table name for Item
func (Item) TableName() string {
	return "items"
}

// DefaultReorderLevel is applied when a new item does not specify one.
const DefaultReorderLevel = 10

// IsLowStock reports whether the item has fallen to or below its reorder
// threshold. Computed on read, never stored.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// ItemResponse is the JSON response format for items
type ItemResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	ReorderLevel int       `json:"reorder_level"`
	SupplierID   *uint     `json:"supplier_id"`
	SupplierName *string   `json:"supplier_name"`
	IsLowStock   bool      `json:"is_low_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse converts Item to ItemResponse. The supplier name comes from the
// preloaded association when present.
func (i *Item) ToResponse() ItemResponse {
	var supplierName *string
	if i.Supplier != nil {
		supplierName = &i.Supplier.Name
	}
	return ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		Quantity:     i.Quantity,
		Price:        i.Price,
		ReorderLevel: i.ReorderLevel,
		SupplierID:   i.SupplierID,
		SupplierName: supplierName,
		IsLowStock:   i.IsLowStock(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// CategoryCount is one row of the per-category breakdown
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// InventoryStats holds aggregate inventory figures for the dashboard.
// Recomputed per request, no caching.
type InventoryStats struct {
	TotalItems    int64           `json:"total_items"`
	TotalValue    float64         `json:"total_value"`
	LowStockCount int64           `json:"low_stock_count"`
	Categories    []CategoryCount `json:"categories"`
}
