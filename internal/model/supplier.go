package model

type Supplier struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactName string `gorm:"type:varchar(255)" json:"contact_name"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
	Email       string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Address     string `gorm:"type:text" json:"address"`

	Products []Product `gorm:"foreignKey:SupplierID" json:"products,omitempty"`
}
