package repository

import (
	"context"

	"github.com/apexstock/apex-stock-api/internal/models"
	"gorm.io/gorm"
)

// SupplierRepository defines the interface for supplier data access
type SupplierRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Supplier, error)
	FindAll(ctx context.Context) ([]models.Supplier, error)
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uint) error
	CountItems(ctx context.Context, supplierID uint) (int64, error)
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) FindByID(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) FindAll(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.WithContext(ctx).Order("id").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Supplier{}, id).Error
}

// CountItems counts the items referencing a supplier. Used both for the
// items_count response field and the delete conflict check.
func (r *supplierRepository) CountItems(ctx context.Context, supplierID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}
