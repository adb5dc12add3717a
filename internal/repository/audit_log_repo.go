package repository

import (
	"go-carwash-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(entry *model.AuditLog) error
	FindAll() ([]model.AuditLog, error)
	FindByRow(tableName string, rowID uuid.UUID) ([]model.AuditLog, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db}
}

// Create appends one audit record. Append-only, same as the inventory log.
func (r *auditLogRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditLogRepo) FindAll() ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *auditLogRepo) FindByRow(tableName string, rowID uuid.UUID) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.Where("table_name = ? AND row_id = ?", tableName, rowID).
		Order("created_at DESC").Find(&entries).Error
	return entries, err
}
