package repository

import (
	"context"

	"github.com/apexstock/apex-stock-api/internal/models"
	"gorm.io/gorm"
)

// ActivityLogRepository defines the interface for audit trail data access.
// The table is append-only: there is deliberately no update or delete.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
