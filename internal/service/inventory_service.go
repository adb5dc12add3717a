package service

import (
	"context"
	"fmt"

	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/repository"
	"go-carwash-inventory/internal/ws"

	"github.com/google/uuid"
)

type InventoryService interface {
	AdjustStock(ctx context.Context, req *AdjustStockRequest, actor model.Actor) (*model.InventoryLog, error)
	GetAllLogs() ([]model.InventoryLog, error)
	GetLogsByProduct(productID uuid.UUID) ([]model.InventoryLog, error)
}

// AdjustStockRequest is a manual stock correction (stocktake, breakage, ...).
type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Change    int       `json:"change" validate:"required"` // signed; zero is rejected
	Note      string    `json:"note"`
}

type inventoryService struct {
	uow     repository.UnitOfWork
	logRepo repository.InventoryLogRepository
	wsHub   *ws.Hub
}

func NewInventoryService(uow repository.UnitOfWork, logRepo repository.InventoryLogRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		uow:     uow,
		logRepo: logRepo,
		wsHub:   hub,
	}
}

// AdjustStock applies a signed delta to a product and records it in the
// inventory ledger, all in one transaction.
func (s *inventoryService) AdjustStock(ctx context.Context, req *AdjustStockRequest, actor model.Actor) (*model.InventoryLog, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var entry *model.InventoryLog
	var change *StockChange

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		change, err = applyDelta(r, req.ProductID, req.Change, nil, actor.ID)
		if err != nil {
			return err
		}

		entry, err = appendLedger(r, change, req.Change, model.ReasonManualAdjustment, "", nil, actor.ID)
		if err != nil {
			return err
		}

		appendAudit(r, actor, "inventory.adjust", "inventory_logs", entry.ID, map[string]interface{}{
			"product_id":     req.ProductID,
			"change":         req.Change,
			"previous_stock": change.PreviousStock,
			"new_stock":      change.NewStock,
			"note":           req.Note,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStockUpdate("stock_adjusted", change, actor)

	return entry, nil
}

func (s *inventoryService) GetAllLogs() ([]model.InventoryLog, error) {
	return s.logRepo.FindAll()
}

func (s *inventoryService) GetLogsByProduct(productID uuid.UUID) ([]model.InventoryLog, error) {
	return s.logRepo.FindByProduct(productID)
}

func (s *inventoryService) broadcastStockUpdate(action string, change *StockChange, actor model.Actor) {
	if s.wsHub == nil || change == nil {
		return
	}
	go s.wsHub.BroadcastJSON(ws.StockUpdate{
		Type:      "stock_update",
		Action:    action,
		ProductID: change.Product.ID.String(),
		SKU:       change.Product.SKU,
		Name:      change.Product.Name,
		OldStock:  change.PreviousStock,
		NewStock:  change.NewStock,
		User:      actor.Name,
		Message:   fmt.Sprintf("%s adjusted '%s' from %d to %d", actor.Name, change.Product.Name, change.PreviousStock, change.NewStock),
	})
}
