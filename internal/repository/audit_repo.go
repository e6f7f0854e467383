package repository

import (
	"github.com/prhdev222/CHEMO-FINAL/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog records one privileged action in the audit trail.
func (r *AuditRepository) CreateAuditLog(userID *uint, action string, details string) error {
	entry := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	return r.db.Create(entry).Error
}

// ListAuditLogs returns the trail entries for one action, newest first.
func (r *AuditRepository) ListAuditLogs(action string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Where("action = ?", action).Order("created_at DESC").Find(&entries).Error
	return entries, err
}
