package repository

import (
	"go-carwash-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequisitionRepository interface {
	Create(requisition *model.Requisition) error
	FindAll() ([]model.Requisition, error)
	FindByID(id uuid.UUID) (*model.Requisition, error)
	FindByIDForUpdate(id uuid.UUID) (*model.Requisition, error)
	Update(requisition *model.Requisition) error
}

type requisitionRepo struct {
	db *gorm.DB
}

func NewRequisitionRepo(db *gorm.DB) RequisitionRepository {
	return &requisitionRepo{db}
}

// Create inserts the requisition together with its items in one statement, so
// a failed item insert cannot leave an orphaned requisition behind.
func (r *requisitionRepo) Create(requisition *model.Requisition) error {
	return r.db.Create(requisition).Error
}

func (r *requisitionRepo) FindAll() ([]model.Requisition, error) {
	var requisitions []model.Requisition
	err := r.db.Preload("Items").Preload("Items.Product").Preload("RequestedByUser").
		Order("created_at DESC").Find(&requisitions).Error
	return requisitions, err
}

func (r *requisitionRepo) FindByID(id uuid.UUID) (*model.Requisition, error) {
	var requisition model.Requisition
	err := r.db.Preload("Items").Preload("Items.Product").First(&requisition, "id = ?", id).Error
	return &requisition, err
}

// FindByIDForUpdate locks the requisition row so a status transition cannot
// race with another decision on the same requisition.
func (r *requisitionRepo) FindByIDForUpdate(id uuid.UUID) (*model.Requisition, error) {
	var requisition model.Requisition
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&requisition, "id = ?", id).Error
	return &requisition, err
}

func (r *requisitionRepo) Update(requisition *model.Requisition) error {
	return r.db.Omit("Items").Save(requisition).Error
}
