package repository

import (
	"go-carwash-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(service *model.Service) error
	FindAll() ([]model.Service, error)
	FindByID(id uuid.UUID) (*model.Service, error)
	Update(service *model.Service) error
	ReplaceItems(serviceID uuid.UUID, items []model.ServiceItem) error
	Delete(id uuid.UUID, deletedBy string) error
}

type serviceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) ServiceRepository {
	return &serviceRepo{db}
}

func (r *serviceRepo) Create(service *model.Service) error {
	return r.db.Create(service).Error
}

func (r *serviceRepo) FindAll() ([]model.Service, error) {
	var services []model.Service
	err := r.db.Preload("Items").Preload("Items.Product").Order("name ASC").Find(&services).Error
	return services, err
}

func (r *serviceRepo) FindByID(id uuid.UUID) (*model.Service, error) {
	var service model.Service
	err := r.db.Preload("Items").Preload("Items.Product").First(&service, "id = ?", id).Error
	return &service, err
}

func (r *serviceRepo) Update(service *model.Service) error {
	return r.db.Save(service).Error
}

// ReplaceItems swaps the consumption list of a service in one go.
func (r *serviceRepo) ReplaceItems(serviceID uuid.UUID, items []model.ServiceItem) error {
	if err := r.db.Where("service_id = ?", serviceID).Delete(&model.ServiceItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ServiceID = serviceID
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

func (r *serviceRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Service{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Service{}, "id = ?", id).Error
}
