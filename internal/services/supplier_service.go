package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
	"gorm.io/gorm"
)

// SupplierService handles supplier business logic
type SupplierService struct {
	suppliers repository.SupplierRepository
	items     repository.ItemRepository
	tx        repository.TxManager
}

func NewSupplierService(suppliers repository.SupplierRepository, items repository.ItemRepository, tx repository.TxManager) *SupplierService {
	return &SupplierService{suppliers: suppliers, items: items, tx: tx}
}

// CreateSupplierInput carries the fields accepted when creating a supplier
type CreateSupplierInput struct {
	Name          string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

// UpdateSupplierInput is a merge patch: nil fields keep their prior value.
type UpdateSupplierInput struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

func (s *SupplierService) FindByID(ctx context.Context, id uint) (*models.Supplier, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) List(ctx context.Context) ([]models.Supplier, error) {
	return s.suppliers.FindAll(ctx)
}

// Items lists the items referencing a supplier
func (s *SupplierService) Items(ctx context.Context, supplierID uint) ([]models.Item, error) {
	if _, err := s.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.items.ListBySupplier(ctx, supplierID)
}

// ItemsCount resolves the items_count response field
func (s *SupplierService) ItemsCount(ctx context.Context, supplierID uint) (int64, error) {
	return s.suppliers.CountItems(ctx, supplierID)
}

func (s *SupplierService) Create(ctx context.Context, in CreateSupplierInput, actorID uint) (*models.Supplier, error) {
	if in.Name == "" {
		return nil, &ValidationError{Fields: []string{"name"}}
	}

	supplier := &models.Supplier{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
	}

	err := s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.Supplier.Create(ctx, supplier); err != nil {
			return err
		}
		entry := NewEntry(actorID, models.ActionCreated, models.ResourceSupplier, &supplier.ID,
			fmt.Sprintf("Added supplier: %s", supplier.Name))
		return r.ActivityLog.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, in UpdateSupplierInput, actorID uint) (*models.Supplier, error) {
	supplier, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.ContactPerson != nil {
		supplier.ContactPerson = in.ContactPerson
	}
	if in.Email != nil {
		supplier.Email = in.Email
	}
	if in.Phone != nil {
		supplier.Phone = in.Phone
	}
	if in.Address != nil {
		supplier.Address = in.Address
	}

	err = s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.Supplier.Update(ctx, supplier); err != nil {
			return err
		}
		entry := NewEntry(actorID, models.ActionUpdated, models.ResourceSupplier, &supplier.ID,
			fmt.Sprintf("Updated supplier: %s", supplier.Name))
		return r.ActivityLog.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return supplier, nil
}

// Delete removes a supplier. Blocked while any item references it; the
// conflict carries the live count and leaves supplier and items untouched.
func (s *SupplierService) Delete(ctx context.Context, id uint, actorID uint) error {
	supplier, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.suppliers.CountItems(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{ItemsCount: count}
	}

	return s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.Supplier.Delete(ctx, id); err != nil {
			return err
		}
		entry := NewEntry(actorID, models.ActionDeleted, models.ResourceSupplier, &id,
			fmt.Sprintf("Deleted supplier: %s", supplier.Name))
		return r.ActivityLog.Create(ctx, entry)
	})
}
