package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Catalog management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	{Code: "category:manage", Name: "Manage Categories"},
	{Code: "supplier:manage", Name: "Manage Suppliers"},
	// Carwash services
	{Code: "service:manage", Name: "Manage Services"},
	{Code: "service:perform", Name: "Perform Service"},
	// Inventory ledger
	{Code: "inventory:view", Name: "View Inventory Logs"},
	{Code: "inventory:adjust", Name: "Adjust Stock"},
	// Procurement
	{Code: "requisition:view", Name: "View Requisitions"},
	{Code: "requisition:create", Name: "Create Requisition"},
	{Code: "requisition:decide", Name: "Approve/Reject Requisition"},
	{Code: "purchase:view", Name: "View Purchases"},
	{Code: "purchase:create", Name: "Create Purchase"},
	{Code: "purchase:receive", Name: "Receive Purchase"},
	// Reporting
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// EmployeePrivilegeCodes are the privileges granted to the EMPLOYEE role.
var EmployeePrivilegeCodes = []string{
	"product:view",
	"service:perform",
	"inventory:view",
	"inventory:adjust",
	"requisition:view",
	"requisition:create",
	"purchase:view",
	"dashboard:view",
}

// UserPrivilegeCodes are the privileges granted to the read-only USER role.
var UserPrivilegeCodes = []string{
	"product:view",
	"dashboard:view",
}
