package repository

import (
	"go-carwash-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	Create(purchase *model.Purchase) error
	FindAll() ([]model.Purchase, error)
	FindByID(id uuid.UUID) (*model.Purchase, error)
	FindByIDForUpdate(id uuid.UUID) (*model.Purchase, error)
	Update(purchase *model.Purchase) error
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

// Create inserts the purchase together with its items in one statement.
func (r *purchaseRepo) Create(purchase *model.Purchase) error {
	return r.db.Create(purchase).Error
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Items").Preload("Items.Product").Preload("Supplier").
		Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Preload("Items").Preload("Items.Product").Preload("Supplier").
		First(&purchase, "id = ?", id).Error
	return &purchase, err
}

// FindByIDForUpdate locks the purchase row; this is what makes a second
// concurrent receive of the same purchase fail on the status check instead of
// applying stock twice.
func (r *purchaseRepo) FindByIDForUpdate(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&purchase, "id = ?", id).Error
	return &purchase, err
}

func (r *purchaseRepo) Update(purchase *model.Purchase) error {
	return r.db.Omit("Items").Save(purchase).Error
}
