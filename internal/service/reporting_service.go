package service

import (
	"time"

	"go-carwash-inventory/internal/repository"
)

// ReportingService aggregates ledger data for the dashboard. Read-only.
type ReportingService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*repository.DashboardStats, error)
	GetCostImpact(startDate, endDate time.Time) (*repository.CostImpactSummary, error)
}

type reportingService struct {
	logRepo     repository.InventoryLogRepository
	productRepo repository.ProductRepository
}

func NewReportingService(logRepo repository.InventoryLogRepository, productRepo repository.ProductRepository) ReportingService {
	return &reportingService{
		logRepo:     logRepo,
		productRepo: productRepo,
	}
}

func (s *reportingService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.logRepo.GetStockMovement(startDate, endDate)
}

func (s *reportingService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.productRepo.GetDashboardStats()
}

func (s *reportingService) GetCostImpact(startDate, endDate time.Time) (*repository.CostImpactSummary, error) {
	return s.logRepo.GetCostImpactSummary(startDate, endDate)
}
