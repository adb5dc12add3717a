package service

import (
	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/repository"

	"github.com/google/uuid"
)

// AdvisoryService is the read-only low-stock/reorder collaborator. It derives
// everything from the product table and never mutates anything.
type AdvisoryService interface {
	ListLowStock() ([]model.Product, error)
	SuggestReorders() ([]ReorderSuggestion, error)
}

// ReorderSuggestion recommends topping a product back up to its reorder level.
type ReorderSuggestion struct {
	ProductID    uuid.UUID  `json:"product_id"`
	SKU          string     `json:"sku"`
	Name         string     `json:"name"`
	SupplierID   *uuid.UUID `json:"supplier_id,omitempty"`
	Stock        int        `json:"stock"`
	ReorderLevel int        `json:"reorder_level"`
	SuggestedQty int        `json:"suggested_qty"`
}

type advisoryService struct {
	productRepo repository.ProductRepository
}

func NewAdvisoryService(productRepo repository.ProductRepository) AdvisoryService {
	return &advisoryService{productRepo: productRepo}
}

func (s *advisoryService) ListLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func (s *advisoryService) SuggestReorders() ([]ReorderSuggestion, error) {
	products, err := s.productRepo.FindLowStock()
	if err != nil {
		return nil, err
	}

	suggestions := make([]ReorderSuggestion, 0, len(products))
	for _, p := range products {
		suggestions = append(suggestions, ReorderSuggestion{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			SupplierID:   p.SupplierID,
			Stock:        p.Stock,
			ReorderLevel: p.ReorderLevel,
			SuggestedQty: p.SuggestedReorderQty(),
		})
	}
	return suggestions, nil
}
