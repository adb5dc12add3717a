package service

import (
	"context"
	"fmt"

	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/repository"
	"go-carwash-inventory/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarwashService manages the service catalog and the perform-service flow
// that consumes products from stock.
type CarwashService interface {
	CreateService(ctx context.Context, req *ServiceRequest, actor model.Actor) (*model.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, req *ServiceRequest, actor model.Actor) (*model.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID, actor model.Actor) error
	GetAllServices() ([]model.Service, error)
	GetServiceByID(id uuid.UUID) (*model.Service, error)
	PerformService(ctx context.Context, id uuid.UUID, actor model.Actor) ([]model.InventoryLog, error)
}

type ServiceItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type ServiceRequest struct {
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	IsActive    *bool                `json:"is_active"`
	Items       []ServiceItemRequest `json:"items" validate:"dive"`
}

type carwashService struct {
	uow         repository.UnitOfWork
	serviceRepo repository.ServiceRepository
	wsHub       *ws.Hub
}

func NewCarwashService(uow repository.UnitOfWork, serviceRepo repository.ServiceRepository, hub *ws.Hub) CarwashService {
	return &carwashService{
		uow:         uow,
		serviceRepo: serviceRepo,
		wsHub:       hub,
	}
}

func (s *carwashService) CreateService(ctx context.Context, req *ServiceRequest, actor model.Actor) (*model.Service, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	service := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.CreatedBy = actor.ID
	service.UpdatedBy = actor.ID

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		for _, item := range req.Items {
			if _, err := r.Products.FindByID(item.ProductID); err != nil {
				return orNotFound(err, fmt.Sprintf("product %s", item.ProductID))
			}
			service.Items = append(service.Items, model.ServiceItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		if err := r.Services.Create(service); err != nil {
			return err
		}

		appendAudit(r, actor, "service.create", "services", service.ID, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return service, nil
}

func (s *carwashService) UpdateService(ctx context.Context, id uuid.UUID, req *ServiceRequest, actor model.Actor) (*model.Service, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		service, err := r.Services.FindByID(id)
		if err != nil {
			return orNotFound(err, fmt.Sprintf("service %s", id))
		}

		service.Name = req.Name
		service.Description = req.Description
		service.Price = req.Price
		if req.IsActive != nil {
			service.IsActive = *req.IsActive
		}
		service.UpdatedBy = actor.ID
		service.Items = nil

		if err := r.Services.Update(service); err != nil {
			return err
		}

		items := make([]model.ServiceItem, 0, len(req.Items))
		for _, item := range req.Items {
			if _, err := r.Products.FindByID(item.ProductID); err != nil {
				return orNotFound(err, fmt.Sprintf("product %s", item.ProductID))
			}
			items = append(items, model.ServiceItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := r.Services.ReplaceItems(id, items); err != nil {
			return err
		}

		appendAudit(r, actor, "service.update", "services", id, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.serviceRepo.FindByID(id)
}

func (s *carwashService) DeleteService(ctx context.Context, id uuid.UUID, actor model.Actor) error {
	return s.uow.Do(ctx, func(r repository.Repos) error {
		if _, err := r.Services.FindByID(id); err != nil {
			return orNotFound(err, fmt.Sprintf("service %s", id))
		}
		if err := r.Services.Delete(id, actor.ID); err != nil {
			return err
		}
		appendAudit(r, actor, "service.delete", "services", id, nil)
		return nil
	})
}

func (s *carwashService) GetAllServices() ([]model.Service, error) {
	return s.serviceRepo.FindAll()
}

func (s *carwashService) GetServiceByID(id uuid.UUID) (*model.Service, error) {
	service, err := s.serviceRepo.FindByID(id)
	if err != nil {
		return nil, orNotFound(err, fmt.Sprintf("service %s", id))
	}
	return service, nil
}

// PerformService deducts every product the service consumes and writes one
// ledger entry per product, all in one transaction. Insufficient stock on any
// item rejects the whole operation.
func (s *carwashService) PerformService(ctx context.Context, id uuid.UUID, actor model.Actor) ([]model.InventoryLog, error) {
	var entries []model.InventoryLog
	var changes []*StockChange

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		service, err := r.Services.FindByID(id)
		if err != nil {
			return orNotFound(err, fmt.Sprintf("service %s", id))
		}

		if !service.IsActive {
			return &InvalidStateError{Entity: "service", Current: "inactive", Wanted: "active"}
		}
		if len(service.Items) == 0 {
			return ErrEmptyItems
		}

		entries = entries[:0]
		changes = changes[:0]
		for _, item := range service.Items {
			change, err := applyDelta(r, item.ProductID, -item.Quantity, nil, actor.ID)
			if err != nil {
				return err
			}

			refID := service.ID
			entry, err := appendLedger(r, change, -item.Quantity, model.ReasonServiceConsumed, model.RefTableServices, &refID, actor.ID)
			if err != nil {
				return err
			}
			entries = append(entries, *entry)
			changes = append(changes, change)
		}

		appendAudit(r, actor, "service.perform", "services", service.ID, map[string]interface{}{
			"item_count": len(service.Items),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastConsumption(changes, actor)

	return entries, nil
}

func (s *carwashService) broadcastConsumption(changes []*StockChange, actor model.Actor) {
	if s.wsHub == nil {
		return
	}
	for _, change := range changes {
		update := ws.StockUpdate{
			Type:      "stock_update",
			Action:    "service_performed",
			ProductID: change.Product.ID.String(),
			SKU:       change.Product.SKU,
			Name:      change.Product.Name,
			OldStock:  change.PreviousStock,
			NewStock:  change.NewStock,
			User:      actor.Name,
			Message:   fmt.Sprintf("%s used %d units of '%s'", actor.Name, change.PreviousStock-change.NewStock, change.Product.Name),
		}
		go s.wsHub.BroadcastJSON(update)
	}
}
