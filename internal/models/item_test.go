package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLowStock_Threshold(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		reorder  int
		want     bool
	}{
		{"below threshold", 4, 5, true},
		{"at threshold", 5, 5, true},
		{"just above threshold", 6, 5, false},
		{"zero quantity", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Quantity: tt.quantity, ReorderLevel: tt.reorder}
			assert.Equal(t, tt.want, item.IsLowStock())
		})
	}
}

func TestItemToResponse_SupplierName(t *testing.T) {
	supplierID := uint(3)
	item := Item{
		ID: 1, Name: "Laptop", Category: "Electronics", Quantity: 2, Price: 999.99,
		ReorderLevel: 5, SupplierID: &supplierID,
		Supplier: &Supplier{ID: supplierID, Name: "Tech Supplies Inc"},
	}

	resp := item.ToResponse()
	require.NotNil(t, resp.SupplierName)
	assert.Equal(t, "Tech Supplies Inc", *resp.SupplierName)
	assert.True(t, resp.IsLowStock)

	item.Supplier = nil
	item.SupplierID = nil
	resp = item.ToResponse()
	assert.Nil(t, resp.SupplierName)
	assert.Nil(t, resp.SupplierID)
}
