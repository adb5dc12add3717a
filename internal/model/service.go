package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a carwash service offered to customers. Performing a service
// consumes the products listed in its items (soap, wax, etc).
type Service struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"price"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	Items []ServiceItem `gorm:"foreignKey:ServiceID" json:"items,omitempty" validate:"-"`
}

// ServiceItem is one product consumed each time the service is performed.
type ServiceItem struct {
	BaseModel
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
}
