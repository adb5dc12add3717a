package model

import (
	"time"

	"github.com/google/uuid"
)

type RequisitionStatus string

const (
	RequisitionPending   RequisitionStatus = "pending"
	RequisitionApproved  RequisitionStatus = "approved"
	RequisitionRejected  RequisitionStatus = "rejected"
	RequisitionFulfilled RequisitionStatus = "fulfilled"
)

// Requisition is an internal request to purchase stock, subject to approval.
// Lifecycle: pending -> approved|rejected, approved -> fulfilled once a
// purchase order is derived from it.
type Requisition struct {
	BaseModel
	Reason string            `gorm:"type:text" json:"reason"`
	Status RequisitionStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	DecidedBy *string    `gorm:"type:varchar(255)" json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`

	Items []RequisitionItem `gorm:"foreignKey:RequisitionID" json:"items,omitempty" validate:"-"`

	// User tracking
	RequestedByUserID *string `gorm:"type:varchar(255)" json:"requested_by_user_id,omitempty"`
	RequestedByUser   *User   `gorm:"foreignKey:RequestedByUserID;references:ID" json:"requested_by_user,omitempty"`
}

type RequisitionItem struct {
	BaseModel
	RequisitionID uuid.UUID `gorm:"type:uuid;not null;index" json:"requisition_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product       *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity      int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
}
