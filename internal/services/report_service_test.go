package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/apexstock/apex-stock-api/internal/models"
)

func reportItems() []models.Item {
	return []models.Item{
		{
			ID: 1, Name: "Laptop", Category: "Electronics", Quantity: 15,
			Price: 999.99, ReorderLevel: 5,
			SupplierID: uintPtr(1), Supplier: &models.Supplier{ID: 1, Name: "Tech Supplies Inc"},
		},
		{
			ID: 2, Name: "Keyboard", Category: "Electronics", Quantity: 3,
			Price: 79.99, ReorderLevel: 5,
		},
	}
}

func TestGenerateInventoryCSV(t *testing.T) {
	items := &mockItemRepo{
		mockList: func(ctx context.Context, category string) ([]models.Item, error) {
			assert.Empty(t, category)
			return reportItems(), nil
		},
	}
	svc := NewReportService(items, &mockSupplierRepo{})

	buf, filename, err := svc.GenerateInventoryCSV(context.Background())
	require.NoError(t, err)

	expected := fmt.Sprintf("inventory_report_%s.csv", time.Now().Format("20060102"))
	assert.Equal(t, expected, filename)

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Name", "Category", "Quantity", "Price", "Reorder Level", "Supplier", "Status"}, records[0])
	assert.Equal(t, []string{"1", "Laptop", "Electronics", "15", "999.99", "5", "Tech Supplies Inc", "OK"}, records[1])
	// No supplier renders as N/A; quantity below the reorder level flags the row.
	assert.Equal(t, []string{"2", "Keyboard", "Electronics", "3", "79.99", "5", "N/A", "Low Stock"}, records[2])
}

func TestGenerateSuppliersCSV(t *testing.T) {
	suppliers := &mockSupplierRepo{
		mockFindAll: func(ctx context.Context) ([]models.Supplier, error) {
			return []models.Supplier{
				{ID: 1, Name: "Tech Supplies Inc", ContactPerson: strPtr("John Doe"), Email: strPtr("john@techsupplies.com")},
			}, nil
		},
		mockCountItems: func(ctx context.Context, supplierID uint) (int64, error) {
			return 4, nil
		},
	}
	svc := NewReportService(&mockItemRepo{}, suppliers)

	buf, filename, err := svc.GenerateSuppliersCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("suppliers_report_%s.csv", time.Now().Format("20060102")), filename)

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"ID", "Name", "Contact Person", "Email", "Phone", "Address", "Items Count"}, records[0])
	assert.Equal(t, []string{"1", "Tech Supplies Inc", "John Doe", "john@techsupplies.com", "N/A", "N/A", "4"}, records[1])
}

func TestGenerateInventoryPDF(t *testing.T) {
	items := &mockItemRepo{
		mockList: func(ctx context.Context, category string) ([]models.Item, error) {
			return reportItems(), nil
		},
	}
	svc := NewReportService(items, &mockSupplierRepo{})

	buf, filename, err := svc.GenerateInventoryPDF(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("inventory_report_%s.pdf", time.Now().Format("20060102")), filename)
	require.Greater(t, buf.Len(), 4)
	assert.Equal(t, "%PDF", string(buf.Bytes()[:4]))
}

func TestGenerateLowStockPDF_EmptyStillRenders(t *testing.T) {
	items := &mockItemRepo{
		mockListLowStock: func(ctx context.Context) ([]models.Item, error) {
			return nil, nil
		},
	}
	svc := NewReportService(items, &mockSupplierRepo{})

	buf, filename, err := svc.GenerateLowStockPDF(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("low_stock_report_%s.pdf", time.Now().Format("20060102")), filename)
	require.Greater(t, buf.Len(), 4)
	assert.Equal(t, "%PDF", string(buf.Bytes()[:4]))
}

func TestGenerateInventoryXLSX(t *testing.T) {
	items := &mockItemRepo{
		mockList: func(ctx context.Context, category string) ([]models.Item, error) {
			return reportItems(), nil
		},
	}
	svc := NewReportService(items, &mockSupplierRepo{})

	buf, filename, err := svc.GenerateInventoryXLSX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("inventory_report_%s.xlsx", time.Now().Format("20060102")), filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Inventory", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", name)

	status, err := f.GetCellValue("Inventory", "H3")
	require.NoError(t, err)
	assert.Equal(t, "Low Stock", status)
}

func TestClipLongNames(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	clipped := clip("a-very-long-item-name-that-overflows", 10)
	assert.Len(t, []rune(clipped), 10)
	assert.Equal(t, "…", string([]rune(clipped)[9]))
}
