package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Harshavardhanyedla/AttendX/internal/model"
)

// AuditLogRepository read side of the audit trail. Writes happen inside
// AttendanceRepository.UpdateStatusWithAudit.
type AuditLogRepository interface {
	List(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo creates an AuditLogRepository.
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) List(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
