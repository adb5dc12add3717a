package service

import (
	"context"
	"fmt"
	"time"

	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/repository"
	"go-carwash-inventory/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Requisition decision actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type ProcurementService interface {
	CreateRequisition(ctx context.Context, req *CreateRequisitionRequest, actor model.Actor) (*model.Requisition, error)
	GetAllRequisitions() ([]model.Requisition, error)
	DecideRequisition(ctx context.Context, id uuid.UUID, action string, actor model.Actor) (*model.Requisition, error)
	CreatePurchase(ctx context.Context, req *CreatePurchaseRequest, actor model.Actor) (*model.Purchase, error)
	CreatePurchaseFromRequisition(ctx context.Context, req *PurchaseFromRequisitionRequest, actor model.Actor) (*model.Purchase, error)
	ReceivePurchase(ctx context.Context, id uuid.UUID, req *ReceivePurchaseRequest, actor model.Actor) (*model.Purchase, error)
	GetAllPurchases() ([]model.Purchase, error)
}

type RequisitionItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateRequisitionRequest struct {
	Reason string                   `json:"reason"`
	Items  []RequisitionItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Cost      decimal.Decimal `json:"cost"`
}

type CreatePurchaseRequest struct {
	SupplierID uuid.UUID             `json:"supplier_id" validate:"uuid_required"`
	Notes      string                `json:"notes"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseFromRequisitionRequest struct {
	RequisitionID uuid.UUID             `json:"requisition_id" validate:"uuid_required"`
	SupplierID    uuid.UUID             `json:"supplier_id" validate:"uuid_required"`
	Notes         string                `json:"notes"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ReceivePurchaseRequest struct {
	Items []PurchaseItemRequest `json:"items" validate:"dive"`
}

type procurementService struct {
	uow             repository.UnitOfWork
	requisitionRepo repository.RequisitionRepository
	purchaseRepo    repository.PurchaseRepository
	wsHub           *ws.Hub
}

func NewProcurementService(uow repository.UnitOfWork, requisitionRepo repository.RequisitionRepository, purchaseRepo repository.PurchaseRepository, hub *ws.Hub) ProcurementService {
	return &procurementService{
		uow:             uow,
		requisitionRepo: requisitionRepo,
		purchaseRepo:    purchaseRepo,
		wsHub:           hub,
	}
}

// CreateRequisition opens a pending requisition with its items as one unit;
// a failed item insert rolls the requisition back with it.
func (s *procurementService) CreateRequisition(ctx context.Context, req *CreateRequisitionRequest, actor model.Actor) (*model.Requisition, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	requisition := &model.Requisition{
		Reason: req.Reason,
		Status: model.RequisitionPending,
	}
	requisition.CreatedBy = actor.ID
	requisition.UpdatedBy = actor.ID
	if actor.ID != "" {
		id := actor.ID
		requisition.RequestedByUserID = &id
	}

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		for _, item := range req.Items {
			if _, err := r.Products.FindByID(item.ProductID); err != nil {
				return orNotFound(err, fmt.Sprintf("product %s", item.ProductID))
			}
			requisition.Items = append(requisition.Items, model.RequisitionItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		if err := r.Requisitions.Create(requisition); err != nil {
			return err
		}

		appendAudit(r, actor, "requisition.create", "purchase_requisitions", requisition.ID, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return requisition, nil
}

func (s *procurementService) GetAllRequisitions() ([]model.Requisition, error) {
	return s.requisitionRepo.FindAll()
}

// DecideRequisition transitions a pending requisition to approved or
// rejected. The requisition row is locked for the duration of the decision so
// two racing approvals cannot both pass the pending check.
func (s *procurementService) DecideRequisition(ctx context.Context, id uuid.UUID, action string, actor model.Actor) (*model.Requisition, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admins may decide requisitions: %w", ErrForbidden)
	}

	var newStatus model.RequisitionStatus
	switch action {
	case ActionApprove:
		newStatus = model.RequisitionApproved
	case ActionReject:
		newStatus = model.RequisitionRejected
	default:
		return nil, fmt.Errorf("action %q: %w", action, ErrInvalidAction)
	}

	var requisition *model.Requisition
	err := s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		requisition, err = r.Requisitions.FindByIDForUpdate(id)
		if err != nil {
			return orNotFound(err, fmt.Sprintf("requisition %s", id))
		}

		if requisition.Status != model.RequisitionPending {
			return &InvalidStateError{
				Entity:  "requisition",
				Current: string(requisition.Status),
				Wanted:  string(model.RequisitionPending),
			}
		}

		now := time.Now()
		requisition.Status = newStatus
		requisition.DecidedAt = &now
		requisition.UpdatedBy = actor.ID
		if actor.ID != "" {
			decidedBy := actor.ID
			requisition.DecidedBy = &decidedBy
		}

		if err := r.Requisitions.Update(requisition); err != nil {
			return err
		}

		appendAudit(r, actor, "requisition."+action, "purchase_requisitions", requisition.ID, map[string]interface{}{
			"status": newStatus,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return requisition, nil
}

// CreatePurchase opens a pending purchase order directly, bypassing the
// requisition flow.
func (s *procurementService) CreatePurchase(ctx context.Context, req *CreatePurchaseRequest, actor model.Actor) (*model.Purchase, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var purchase *model.Purchase
	err := s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		purchase, err = s.createPurchase(r, req.SupplierID, nil, req.Notes, req.Items, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// CreatePurchaseFromRequisition derives a pending purchase from an approved
// requisition and marks the requisition fulfilled, as one transaction. The
// supplied items may diverge from the requisition's items; no cross-check is
// performed, but the purchase records the requisition it came from.
func (s *procurementService) CreatePurchaseFromRequisition(ctx context.Context, req *PurchaseFromRequisitionRequest, actor model.Actor) (*model.Purchase, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var purchase *model.Purchase
	err := s.uow.Do(ctx, func(r repository.Repos) error {
		requisition, err := r.Requisitions.FindByIDForUpdate(req.RequisitionID)
		if err != nil {
			return orNotFound(err, fmt.Sprintf("requisition %s", req.RequisitionID))
		}

		if requisition.Status != model.RequisitionApproved {
			return &InvalidStateError{
				Entity:  "requisition",
				Current: string(requisition.Status),
				Wanted:  string(model.RequisitionApproved),
			}
		}

		purchase, err = s.createPurchase(r, req.SupplierID, &req.RequisitionID, req.Notes, req.Items, actor)
		if err != nil {
			return err
		}

		requisition.Status = model.RequisitionFulfilled
		requisition.UpdatedBy = actor.ID
		if err := r.Requisitions.Update(requisition); err != nil {
			return err
		}

		appendAudit(r, actor, "requisition.fulfill", "purchase_requisitions", requisition.ID, map[string]interface{}{
			"purchase_id": purchase.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// createPurchase inserts a pending purchase with its items inside the
// caller's transaction scope.
func (s *procurementService) createPurchase(r repository.Repos, supplierID uuid.UUID, requisitionID *uuid.UUID, notes string, items []PurchaseItemRequest, actor model.Actor) (*model.Purchase, error) {
	if _, err := r.Suppliers.FindByID(supplierID); err != nil {
		return nil, orNotFound(err, fmt.Sprintf("supplier %s", supplierID))
	}

	purchase := &model.Purchase{
		SupplierID:    supplierID,
		RequisitionID: requisitionID,
		Notes:         notes,
		Status:        model.PurchasePending,
	}
	purchase.CreatedBy = actor.ID
	purchase.UpdatedBy = actor.ID

	for _, item := range items {
		if _, err := r.Products.FindByID(item.ProductID); err != nil {
			return nil, orNotFound(err, fmt.Sprintf("product %s", item.ProductID))
		}
		purchase.Items = append(purchase.Items, model.PurchaseItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Cost:      item.Cost,
		})
	}

	if err := r.Purchases.Create(purchase); err != nil {
		return nil, err
	}

	appendAudit(r, actor, "purchase.create", "purchases", purchase.ID, map[string]interface{}{
		"supplier_id":    supplierID,
		"requisition_id": requisitionID,
		"item_count":     len(items),
	})
	return purchase, nil
}

// ReceivePurchase books the delivered items into stock. The status flip, every
// stock mutation and every ledger entry commit as one transaction: a failure
// on any item rolls the whole receipt back, and a second receive of the same
// purchase fails on the status check instead of applying stock twice.
func (s *procurementService) ReceivePurchase(ctx context.Context, id uuid.UUID, req *ReceivePurchaseRequest, actor model.Actor) (*model.Purchase, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admins may receive purchases: %w", ErrForbidden)
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var purchase *model.Purchase
	var changes []*StockChange

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		purchase, err = r.Purchases.FindByIDForUpdate(id)
		if err != nil {
			return orNotFound(err, fmt.Sprintf("purchase %s", id))
		}

		if purchase.Status != model.PurchasePending {
			return &InvalidStateError{
				Entity:  "purchase",
				Current: string(purchase.Status),
				Wanted:  string(model.PurchasePending),
			}
		}

		changes = changes[:0]
		for _, item := range req.Items {
			cost := item.Cost
			change, err := applyDelta(r, item.ProductID, item.Quantity, &cost, actor.ID)
			if err != nil {
				return err
			}

			refID := purchase.ID
			if _, err := appendLedger(r, change, item.Quantity, model.ReasonPurchaseReceived, model.RefTablePurchases, &refID, actor.ID); err != nil {
				return err
			}
			changes = append(changes, change)
		}

		now := time.Now()
		purchase.Status = model.PurchaseReceived
		purchase.ReceivedAt = &now
		purchase.UpdatedBy = actor.ID
		if actor.ID != "" {
			receivedBy := actor.ID
			purchase.ReceivedBy = &receivedBy
		}

		if err := r.Purchases.Update(purchase); err != nil {
			return err
		}

		appendAudit(r, actor, "purchase.receive", "purchases", purchase.ID, map[string]interface{}{
			"item_count": len(req.Items),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastReceipt(changes, actor)

	return purchase, nil
}

func (s *procurementService) GetAllPurchases() ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll()
}

func (s *procurementService) broadcastReceipt(changes []*StockChange, actor model.Actor) {
	if s.wsHub == nil {
		return
	}
	for _, change := range changes {
		update := ws.StockUpdate{
			Type:      "stock_update",
			Action:    "purchase_received",
			ProductID: change.Product.ID.String(),
			SKU:       change.Product.SKU,
			Name:      change.Product.Name,
			OldStock:  change.PreviousStock,
			NewStock:  change.NewStock,
			User:      actor.Name,
			Message:   fmt.Sprintf("%s received %d units of '%s'", actor.Name, change.NewStock-change.PreviousStock, change.Product.Name),
		}
		go s.wsHub.BroadcastJSON(update)
	}
}
