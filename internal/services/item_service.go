package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
	"gorm.io/gorm"
)

// ItemService handles inventory item business logic
type ItemService struct {
	items repository.ItemRepository
	tx    repository.TxManager
}

func NewItemService(items repository.ItemRepository, tx repository.TxManager) *ItemService {
	return &ItemService{items: items, tx: tx}
}

// CreateItemInput carries the fields accepted when creating an item
type CreateItemInput struct {
	Name         string
	Category     string
	Quantity     *int
	Price        *float64
	ReorderLevel *int
	SupplierID   *uint
}

// UpdateItemInput is a merge patch: nil fields keep their prior value.
// SupplierID uses a two-level pointer so that an explicit null clears the
// supplier reference while an absent field leaves it alone.
type UpdateItemInput struct {
	Name         *string
	Category     *string
	Quantity     *int
	Price        *float64
	ReorderLevel *int
	SupplierID   **uint
}

func (s *ItemService) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) List(ctx context.Context, category string) ([]models.Item, error) {
	return s.items.List(ctx, category)
}

func (s *ItemService) ListLowStock(ctx context.Context) ([]models.Item, error) {
	return s.items.ListLowStock(ctx)
}

func (s *ItemService) Stats(ctx context.Context) (*models.InventoryStats, error) {
	return s.items.Stats(ctx)
}

// Create validates the input, then writes the item and its audit entry as
// one unit.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput, actorID uint) (*models.Item, error) {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	if *in.Quantity < 0 {
		return nil, &ValidationError{Fields: []string{"quantity"}}
	}
	if *in.Price < 0 {
		return nil, &ValidationError{Fields: []string{"price"}}
	}

	reorderLevel := models.DefaultReorderLevel
	if in.ReorderLevel != nil {
		reorderLevel = *in.ReorderLevel
	}

	item := &models.Item{
		Name:         in.Name,
		Category:     in.Category,
		Quantity:     *in.Quantity,
		Price:        *in.Price,
		ReorderLevel: reorderLevel,
		SupplierID:   in.SupplierID,
	}

	err := s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.Item.Create(ctx, item); err != nil {
			return err
		}
		entry := NewEntry(actorID, models.ActionCreated, models.ResourceItem, &item.ID,
			fmt.Sprintf("Added item: %s", item.Name))
		return r.ActivityLog.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return s.FindByID(ctx, item.ID)
}

// Update applies a merge patch: only supplied fields change.
func (s *ItemService) Update(ctx context.Context, id uint, in UpdateItemInput, actorID uint) (*models.Item, error) {
	item, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, &ValidationError{Fields: []string{"quantity"}}
		}
		item.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, &ValidationError{Fields: []string{"price"}}
		}
		item.Price = *in.Price
	}
	if in.ReorderLevel != nil {
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.SupplierID != nil {
		item.SupplierID = *in.SupplierID
	}
	item.Supplier = nil

	err = s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.Item.Update(ctx, item); err != nil {
			return err
		}
		entry := NewEntry(actorID, models.ActionUpdated, models.ResourceItem, &item.ID,
			fmt.Sprintf("Updated item: %s", item.Name))
		return r.ActivityLog.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return s.FindByID(ctx, item.ID)
}

func (s *ItemService) Delete(ctx context.Context, id uint, actorID uint) error {
	item, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.Item.Delete(ctx, id); err != nil {
			return err
		}
		entry := NewEntry(actorID, models.ActionDeleted, models.ResourceItem, &id,
			fmt.Sprintf("Deleted item: %s", item.Name))
		return r.ActivityLog.Create(ctx, entry)
	})
}
