package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN, EMPLOYEE, USER
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleUser     = "USER"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Full access: catalog, procurement approvals, receiving, user management",
	},
	{
		Code:        RoleEmployee,
		Name:        "Employee",
		Description: "Operational access: perform services, record adjustments, raise requisitions",
	},
	{
		Code:        RoleUser,
		Name:        "User",
		Description: "Read-only access to catalog and reports",
	},
}
