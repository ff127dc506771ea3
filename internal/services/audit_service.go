package services

import (
	"context"

	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
)

// AuditService is the query side of the activity trail plus the standalone
// record path for actions that carry no other mutation (login, report
// generation). Mutating services write their audit entry inside the same
// transaction as the mutation itself via repository.TxManager.
type AuditService struct {
	logs repository.ActivityLogRepository
}

func NewAuditService(logs repository.ActivityLogRepository) *AuditService {
	return &AuditService{logs: logs}
}

// NewEntry builds an activity log row. resourceID may be nil (reports).
func NewEntry(actorID uint, action, resourceType string, resourceID *uint, details string) *models.ActivityLog {
	actor := actorID
	return &models.ActivityLog{
		UserID:       &actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	}
}

// Record appends one audit entry. A persist failure propagates to the
// caller; it is never swallowed.
func (s *AuditService) Record(ctx context.Context, actorID uint, action, resourceType string, resourceID *uint, details string) error {
	return s.logs.Create(ctx, NewEntry(actorID, action, resourceType, resourceID, details))
}

// Recent returns the newest entries first, for the admin activity dashboard.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return s.logs.Recent(ctx, limit)
}
