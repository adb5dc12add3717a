package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	SKU          string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Stock        int             `gorm:"default:0" json:"stock"`
	Unit         string          `gorm:"type:varchar(20)" json:"unit"`
	Cost         decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cost"`  // unit purchase cost
	Price        decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"price"` // selling price
	ReorderLevel int             `gorm:"default:0" json:"reorder_level"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}

// IsLowStock reports whether the product is at or below its reorder level.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.ReorderLevel
}

// SuggestedReorderQty is the quantity needed to bring stock back up to the
// reorder level, never negative.
func (p *Product) SuggestedReorderQty() int {
	if qty := p.ReorderLevel - p.Stock; qty > 0 {
		return qty
	}
	return 0
}
