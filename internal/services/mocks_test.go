package services

import (
	"context"

	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
)

// Partial mocks: embed the interface and override only what a test needs.

type mockUserRepo struct {
	repository.UserRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.User, error)
	mockFindByUsername func(ctx context.Context, username string) (*models.User, error)
	mockFindByEmail    func(ctx context.Context, email string) (*models.User, error)
	mockFindAll        func(ctx context.Context) ([]models.User, error)
	mockCreate         func(ctx context.Context, user *models.User) error
	mockUpdate         func(ctx context.Context, user *models.User) error
	mockDelete         func(ctx context.Context, id uint) error
	mockStats          func(ctx context.Context) (*models.UserStats, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.mockFindByUsername(ctx, username)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return m.mockFindAll(ctx)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.mockCreate(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.mockUpdate(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.mockDelete(ctx, id)
}

func (m *mockUserRepo) Stats(ctx context.Context) (*models.UserStats, error) {
	return m.mockStats(ctx)
}

type mockItemRepo struct {
	repository.ItemRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.Item, error)
	mockList           func(ctx context.Context, category string) ([]models.Item, error)
	mockListBySupplier func(ctx context.Context, supplierID uint) ([]models.Item, error)
	mockListLowStock   func(ctx context.Context) ([]models.Item, error)
	mockCreate         func(ctx context.Context, item *models.Item) error
	mockUpdate         func(ctx context.Context, item *models.Item) error
	mockDelete         func(ctx context.Context, id uint) error
	mockStats          func(ctx context.Context) (*models.InventoryStats, error)
}

func (m *mockItemRepo) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockItemRepo) List(ctx context.Context, category string) ([]models.Item, error) {
	return m.mockList(ctx, category)
}

func (m *mockItemRepo) ListBySupplier(ctx context.Context, supplierID uint) ([]models.Item, error) {
	return m.mockListBySupplier(ctx, supplierID)
}

func (m *mockItemRepo) ListLowStock(ctx context.Context) ([]models.Item, error) {
	return m.mockListLowStock(ctx)
}

func (m *mockItemRepo) Create(ctx context.Context, item *models.Item) error {
	return m.mockCreate(ctx, item)
}

func (m *mockItemRepo) Update(ctx context.Context, item *models.Item) error {
	return m.mockUpdate(ctx, item)
}

func (m *mockItemRepo) Delete(ctx context.Context, id uint) error {
	return m.mockDelete(ctx, id)
}

func (m *mockItemRepo) Stats(ctx context.Context) (*models.InventoryStats, error) {
	return m.mockStats(ctx)
}

type mockSupplierRepo struct {
	repository.SupplierRepository
	mockFindByID   func(ctx context.Context, id uint) (*models.Supplier, error)
	mockFindAll    func(ctx context.Context) ([]models.Supplier, error)
	mockCreate     func(ctx context.Context, supplier *models.Supplier) error
	mockUpdate     func(ctx context.Context, supplier *models.Supplier) error
	mockDelete     func(ctx context.Context, id uint) error
	mockCountItems func(ctx context.Context, supplierID uint) (int64, error)
}

func (m *mockSupplierRepo) FindByID(ctx context.Context, id uint) (*models.Supplier, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockSupplierRepo) FindAll(ctx context.Context) ([]models.Supplier, error) {
	return m.mockFindAll(ctx)
}

func (m *mockSupplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	return m.mockCreate(ctx, supplier)
}

func (m *mockSupplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	return m.mockUpdate(ctx, supplier)
}

func (m *mockSupplierRepo) Delete(ctx context.Context, id uint) error {
	return m.mockDelete(ctx, id)
}

func (m *mockSupplierRepo) CountItems(ctx context.Context, supplierID uint) (int64, error) {
	return m.mockCountItems(ctx, supplierID)
}

// mockLogRepo records every audit entry it is asked to create so tests can
// assert exactly how many rows a flow produced.
type mockLogRepo struct {
	repository.ActivityLogRepository
	entries    []*models.ActivityLog
	failCreate error
	mockRecent func(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

func (m *mockLogRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLogRepo) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return m.mockRecent(ctx, limit)
}

// mockTx hands the provided repositories straight to the callback. No
// rollback semantics; tests assert on writes that did or did not happen
// before the transaction is entered.
type mockTx struct {
	repos *repository.Repositories
}

func (m *mockTx) WithinTransaction(ctx context.Context, fn repository.TxFunc) error {
	return fn(m.repos)
}
