package services

import (
	"github.com/apexstock/apex-stock-api/internal/config"
	"github.com/apexstock/apex-stock-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth     *AuthService
	User     *UserService
	Item     *ItemService
	Supplier *SupplierService
	Audit    *AuditService
	Report   *ReportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, tx repository.TxManager, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, tx, cfg),
		User:     NewUserService(repos.User, tx),
		Item:     NewItemService(repos.Item, tx),
		Supplier: NewSupplierService(repos.Supplier, repos.Item, tx),
		Audit:    NewAuditService(repos.ActivityLog),
		Report:   NewReportService(repos.Item, repos.Supplier),
	}
}
