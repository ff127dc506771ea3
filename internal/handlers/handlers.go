package handlers

import (
	"github.com/apexstock/apex-stock-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Inventory *InventoryHandler
	Supplier  *SupplierHandler
	User      *UserHandler
	Report    *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Auth:      NewAuthHandler(svcs.Auth, svcs.User),
		Inventory: NewInventoryHandler(svcs.Item),
		Supplier:  NewSupplierHandler(svcs.Supplier),
		User:      NewUserHandler(svcs.User),
		Report:    NewReportHandler(svcs.Report, svcs.Audit),
	}
}
