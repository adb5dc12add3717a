package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repositories that participate in inventory accounting,
// all bound to the same transaction scope.
type Repos struct {
	Products      ProductRepository
	InventoryLogs InventoryLogRepository
	AuditLogs     AuditLogRepository
	Requisitions  RequisitionRepository
	Purchases     PurchaseRepository
	Services      ServiceRepository
	Categories    CategoryRepository
	Suppliers     SupplierRepository
}

// UnitOfWork runs a function against a single transaction. Every write the
// function performs through the provided Repos commits or rolls back as one
// unit; returning an error rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(r Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Products:      NewProductRepo(tx),
			InventoryLogs: NewInventoryLogRepo(tx),
			AuditLogs:     NewAuditLogRepo(tx),
			Requisitions:  NewRequisitionRepo(tx),
			Purchases:     NewPurchaseRepo(tx),
			Services:      NewServiceRepo(tx),
			Categories:    NewCategoryRepo(tx),
			Suppliers:     NewSupplierRepo(tx),
		})
	})
}
