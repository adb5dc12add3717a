package service

import (
	"context"
	"sync"
	"testing"

	"go-carwash-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStockIncrease(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct("SOAP-1", 10, 3, "2.50")
	svc := NewInventoryService(env.uow, env.repos.InventoryLogs, nil)
	actor := employeeActor()

	entry, err := svc.AdjustStock(context.Background(), &AdjustStockRequest{
		ProductID: product.ID,
		Change:    5,
		Note:      "stocktake correction",
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, 10, entry.PreviousStock)
	assert.Equal(t, 15, entry.NewStock)
	assert.Equal(t, entry.PreviousStock+entry.Change, entry.NewStock)
	assert.Equal(t, model.ReasonManualAdjustment, entry.Reason)
	assert.True(t, entry.TotalCostImpact.Equal(decimal.RequireFromString("12.50")),
		"expected 12.50, got %s", entry.TotalCostImpact)
	assert.Equal(t, 15, env.productStock(product.ID))

	// One audit record for the adjustment
	audits, err := env.repos.AuditLogs.FindAll()
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, "inventory.adjust", audits[0].Action)
}

func TestAdjustStockDeduction(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct("WAX-1", 8, 2, "4.00")
	svc := NewInventoryService(env.uow, env.repos.InventoryLogs, nil)

	entry, err := svc.AdjustStock(context.Background(), &AdjustStockRequest{
		ProductID: product.ID,
		Change:    -3,
	}, employeeActor())
	require.NoError(t, err)

	assert.Equal(t, -3, entry.Change)
	assert.Equal(t, 5, entry.NewStock)
	assert.True(t, entry.TotalCostImpact.Equal(decimal.RequireFromString("-12")),
		"outbound cost impact must be negative, got %s", entry.TotalCostImpact)
	assert.Equal(t, 5, env.productStock(product.ID))
}

func TestAdjustStockInsufficient(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct("SOAP-2", 4, 1, "1.00")
	svc := NewInventoryService(env.uow, env.repos.InventoryLogs, nil)

	_, err := svc.AdjustStock(context.Background(), &AdjustStockRequest{
		ProductID: product.ID,
		Change:    -6,
	}, employeeActor())
	require.ErrorIs(t, err, ErrInsufficientStock)

	var insufficientErr *InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 4, insufficientErr.Available)
	assert.Equal(t, 6, insufficientErr.Requested)

	// Rejected before any write: stock untouched, ledger empty
	assert.Equal(t, 4, env.productStock(product.ID))
	logs, _ := env.repos.InventoryLogs.FindAll()
	assert.Empty(t, logs)
}

func TestAdjustStockZeroChangeRejected(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct("SOAP-3", 4, 1, "1.00")
	svc := NewInventoryService(env.uow, env.repos.InventoryLogs, nil)

	_, err := svc.AdjustStock(context.Background(), &AdjustStockRequest{
		ProductID: product.ID,
		Change:    0,
	}, employeeActor())
	require.ErrorIs(t, err, ErrValidation)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	env := newTestEnv()
	svc := NewInventoryService(env.uow, env.repos.InventoryLogs, nil)

	_, err := svc.AdjustStock(context.Background(), &AdjustStockRequest{
		ProductID: uuid.New(),
		Change:    1,
	}, employeeActor())
	require.ErrorIs(t, err, ErrNotFound)
}

// Two concurrent deductions that together exceed stock: exactly one succeeds.
// The unit of work serializes them the way the row lock does in production, so
// the loser re-checks against the committed stock, not a stale read.
func TestAdjustStockConcurrentDeductions(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct("SOAP-4", 10, 2, "1.00")
	svc := NewInventoryService(env.uow, env.repos.InventoryLogs, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AdjustStock(context.Background(), &AdjustStockRequest{
				ProductID: product.ID,
				Change:    -6,
			}, employeeActor())
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of the two deductions must fail")
	assert.Equal(t, 4, env.productStock(product.ID))

	logs, _ := env.repos.InventoryLogs.FindAll()
	assert.Len(t, logs, 1)
}

func TestGetLogsByProduct(t *testing.T) {
	env := newTestEnv()
	a := env.seedProduct("A-1", 10, 2, "1.00")
	b := env.seedProduct("B-1", 10, 2, "1.00")
	svc := NewInventoryService(env.uow, env.repos.InventoryLogs, nil)
	actor := employeeActor()

	_, err := svc.AdjustStock(context.Background(), &AdjustStockRequest{ProductID: a.ID, Change: 2}, actor)
	require.NoError(t, err)
	_, err = svc.AdjustStock(context.Background(), &AdjustStockRequest{ProductID: b.ID, Change: 3}, actor)
	require.NoError(t, err)

	entries, err := svc.GetLogsByProduct(a.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, a.ID, entries[0].ProductID)

	all, err := svc.GetAllLogs()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
