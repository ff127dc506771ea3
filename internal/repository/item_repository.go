package repository

import (
	"context"
	"math"

	"github.com/apexstock/apex-stock-api/internal/models"
	"gorm.io/gorm"
)

// ItemRepository defines the interface for inventory item data access
type ItemRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Item, error)
	List(ctx context.Context, category string) ([]models.Item, error)
	ListBySupplier(ctx context.Context, supplierID uint) ([]models.Item, error)
	ListLowStock(ctx context.Context) ([]models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*models.InventoryStats, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, category string) ([]models.Item, error) {
	var items []models.Item
	db := r.db.WithContext(ctx).Preload("Supplier")
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("id").Find(&items).Error
	return items, err
}

func (r *itemRepository) ListBySupplier(ctx context.Context, supplierID uint) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("supplier_id = ?", supplierID).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) ListLowStock(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("quantity <= reorder_level").
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, id).Error
}

func (r *itemRepository) Stats(ctx context.Context) (*models.InventoryStats, error) {
	stats := &models.InventoryStats{}

	if err := r.db.WithContext(ctx).Model(&models.Item{}).
		Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}

	var totalValue *float64
	if err := r.db.WithContext(ctx).Model(&models.Item{}).
		Select("SUM(quantity * price)").
		Scan(&totalValue).Error; err != nil {
		return nil, err
	}
	if totalValue != nil {
		stats.TotalValue = math.Round(*totalValue*100) / 100
	}

	if err := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("quantity <= reorder_level").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Item{}).
		Select("category AS name, COUNT(id) AS count").
		Group("category").
		Order("category").
		Scan(&stats.Categories).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
