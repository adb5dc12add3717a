package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "pending"
	PurchaseReceived PurchaseStatus = "received"
)

// Purchase is a commitment to buy from a supplier. Stock only moves when the
// purchase transitions to received, which writes one ledger entry per item.
type Purchase struct {
	BaseModel
	SupplierID uuid.UUID      `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`
	Notes      string         `gorm:"type:text" json:"notes"`
	Status     PurchaseStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	// Set when the purchase was derived from an approved requisition.
	RequisitionID *uuid.UUID   `gorm:"type:uuid;index" json:"requisition_id,omitempty"`
	Requisition   *Requisition `gorm:"foreignKey:RequisitionID" json:"requisition,omitempty" validate:"-"`

	ReceivedBy *string    `gorm:"type:varchar(255)" json:"received_by,omitempty"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty" validate:"-"`
}

type PurchaseItem struct {
	BaseModel
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity   int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Cost       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cost"` // unit cost agreed with the supplier
}
