package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction-scoped building blocks shared by every workflow that moves
// stock: the stock mutator, the inventory ledger writer and the audit trail
// writer. All of them operate on repositories bound to the caller's
// UnitOfWork scope, so one workflow operation commits or rolls back whole.

// StockChange is the result of one stock mutation.
type StockChange struct {
	Product       *model.Product
	PreviousStock int
	NewStock      int
	UnitCost      decimal.Decimal
}

// applyDelta locks the product row, verifies the resulting stock stays
// non-negative and writes the new value back. The insufficient-stock check
// happens before the write; a rejected mutation leaves the row untouched.
// The row lock serializes concurrent mutators of the same product, so two
// racing deductions can never both pass the check against stale stock.
func applyDelta(r repository.Repos, productID uuid.UUID, delta int, costOverride *decimal.Decimal, actorID string) (*StockChange, error) {
	product, err := r.Products.FindByIDForUpdate(productID)
	if err != nil {
		return nil, orNotFound(err, fmt.Sprintf("product %s", productID))
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, &InsufficientStockError{
			ProductID: productID,
			Available: product.Stock,
			Requested: -delta,
		}
	}

	unitCost := product.Cost
	if costOverride != nil {
		unitCost = *costOverride
	}

	if err := r.Products.UpdateStock(product.ID, newStock, actorID); err != nil {
		return nil, err
	}

	return &StockChange{
		Product:       product,
		PreviousStock: product.Stock,
		NewStock:      newStock,
		UnitCost:      unitCost,
	}, nil
}

// appendLedger writes one immutable inventory log entry for a stock change.
func appendLedger(r repository.Repos, change *StockChange, delta int, reason model.InventoryReason, refTable string, refID *uuid.UUID, actorID string) (*model.InventoryLog, error) {
	entry := &model.InventoryLog{
		ProductID:       change.Product.ID,
		Change:          delta,
		Reason:          reason,
		RefTable:        refTable,
		RefID:           refID,
		PreviousStock:   change.PreviousStock,
		NewStock:        change.NewStock,
		UnitCost:        change.UnitCost,
		TotalCostImpact: change.UnitCost.Mul(decimal.NewFromInt(int64(delta))),
	}
	entry.CreatedBy = actorID
	entry.UpdatedBy = actorID
	if actorID != "" {
		id := actorID
		entry.CreatedByUserID = &id
	}

	if err := r.InventoryLogs.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// appendAudit writes one generic audit record for a mutating action.
// Best-effort: a failed append is logged as a warning and never fails the
// operation it describes.
func appendAudit(r repository.Repos, actor model.Actor, action, tableName string, rowID uuid.UUID, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("{}")
	}

	entry := &model.AuditLog{
		Action:    action,
		TableName: tableName,
		RowID:     rowID,
		Payload:   string(raw),
	}
	if actor.ID != "" {
		id := actor.ID
		entry.UserID = &id
	}

	if err := r.AuditLogs.Create(entry); err != nil {
		log.Printf("Warning: audit append failed for %s on %s/%s: %v", action, tableName, rowID, err)
	}
}

// orNotFound maps a missing-record store error onto the service taxonomy.
func orNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
