package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryReason classifies what caused a stock change.
type InventoryReason string

const (
	ReasonManualAdjustment InventoryReason = "MANUAL_ADJUSTMENT"
	ReasonPurchaseReceived InventoryReason = "PURCHASE_RECEIVED"
	ReasonServiceConsumed  InventoryReason = "SERVICE_CONSUMED"
)

// InventoryLog is one immutable ledger entry per stock change. Entries are
// append-only: corrections are recorded as new entries with the opposite sign,
// never by editing history.
//
// Invariants: NewStock = PreviousStock + Change and
// TotalCostImpact = Change * UnitCost.
type InventoryLog struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Change    int             `gorm:"not null" json:"change"`
	Reason    InventoryReason `gorm:"type:varchar(30);not null" json:"reason" validate:"required"`

	// Reference back to the causing entity (a purchase, a service, ...).
	RefTable string     `gorm:"type:varchar(50)" json:"ref_table,omitempty"`
	RefID    *uuid.UUID `gorm:"type:uuid;index" json:"ref_id,omitempty"`

	// Point-in-time snapshot of the mutation.
	PreviousStock   int             `gorm:"not null" json:"previous_stock"`
	NewStock        int             `gorm:"not null" json:"new_stock"`
	UnitCost        decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"unit_cost"`
	TotalCostImpact decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"total_cost_impact"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

// Ref tables used by ledger entries.
const (
	RefTablePurchases = "purchases"
	RefTableServices  = "services"
)
