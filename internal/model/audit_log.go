package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is a generic append-only record of a mutating action taken by an
// actor on an entity. It is a secondary trail: a failed audit append must
// never roll back the action it describes.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *string   `gorm:"type:varchar(255);index" json:"user_id,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null" json:"action"` // e.g. "purchase.receive"
	TableName string    `gorm:"type:varchar(50);not null" json:"table_name"`
	RowID     uuid.UUID `gorm:"type:uuid;index" json:"row_id"`
	Payload   string    `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
