package repository

import (
	"time"

	"go-carwash-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryLogRepository interface {
	Create(entry *model.InventoryLog) error
	FindAll() ([]model.InventoryLog, error)
	FindByProduct(productID uuid.UUID) ([]model.InventoryLog, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetCostImpactSummary(startDate, endDate time.Time) (*CostImpactSummary, error)
}

// StockMovementData aggregates ledger entries per day for chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// CostImpactSummary totals the cost impact of inbound and outbound movements
type CostImpactSummary struct {
	InboundCost  decimal.Decimal `json:"inbound_cost"`
	OutboundCost decimal.Decimal `json:"outbound_cost"`
}

type inventoryLogRepo struct {
	db *gorm.DB
}

func NewInventoryLogRepo(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepo{db}
}

// Create appends one ledger entry. There is deliberately no Update or Delete
// on this repository: the inventory log is append-only.
func (r *inventoryLogRepo) Create(entry *model.InventoryLog) error {
	return r.db.Create(entry).Error
}

func (r *inventoryLogRepo) FindAll() ([]model.InventoryLog, error) {
	var entries []model.InventoryLog
	err := r.db.Preload("Product").Preload("CreatedByUser").Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *inventoryLogRepo) FindByProduct(productID uuid.UUID) ([]model.InventoryLog, error) {
	var entries []model.InventoryLog
	err := r.db.Preload("Product").Where("product_id = ?", productID).
		Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *inventoryLogRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.InventoryLog{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN change > 0 THEN change ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN change < 0 THEN -change ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *inventoryLogRepo) GetCostImpactSummary(startDate, endDate time.Time) (*CostImpactSummary, error) {
	var summary CostImpactSummary

	err := r.db.Model(&model.InventoryLog{}).
		Where("change > 0 AND created_at BETWEEN ? AND ?", startDate, endDate).
		Select("COALESCE(SUM(total_cost_impact), 0)").
		Scan(&summary.InboundCost).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.InventoryLog{}).
		Where("change < 0 AND created_at BETWEEN ? AND ?", startDate, endDate).
		Select("COALESCE(SUM(-total_cost_impact), 0)").
		Scan(&summary.OutboundCost).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
