package service

import (
	"context"
	"errors"
	"fmt"

	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/repository"
	"go-carwash-inventory/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrSKUExists = errors.New("SKU already exists")

// CatalogService is CRUD for products, categories and suppliers. Product
// edits here go through a row lock but deliberately not through the inventory
// ledger; stocktake corrections that should leave a trail use the
// manual-adjustment flow instead.
type CatalogService interface {
	CreateProduct(ctx context.Context, req *ProductRequest, actor model.Actor) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *ProductRequest, actor model.Actor) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID, actor model.Actor) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)

	CreateCategory(ctx context.Context, req *CategoryRequest, actor model.Actor) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *CategoryRequest, actor model.Actor) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID, actor model.Actor) error
	GetAllCategories() ([]model.Category, error)

	CreateSupplier(ctx context.Context, req *SupplierRequest, actor model.Actor) (*model.Supplier, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, req *SupplierRequest, actor model.Actor) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID, actor model.Actor) error
	GetAllSuppliers() ([]model.Supplier, error)
}

type ProductRequest struct {
	SKU          string          `json:"sku" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Stock        int             `json:"stock"`
	Unit         string          `json:"unit"`
	Cost         decimal.Decimal `json:"cost"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorder_level"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type SupplierRequest struct {
	Name        string `json:"name" validate:"required"`
	ContactName string `json:"contact_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
}

type catalogService struct {
	uow          repository.UnitOfWork
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	wsHub        *ws.Hub
}

func NewCatalogService(uow repository.UnitOfWork, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, supplierRepo repository.SupplierRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		uow:          uow,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		wsHub:        hub,
	}
}

func (s *catalogService) validateProduct(req *ProductRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if req.Stock < 0 {
		return &ValidationError{Field: "Stock", Tag: "gte=0"}
	}
	if req.ReorderLevel < 0 {
		return &ValidationError{Field: "ReorderLevel", Tag: "gte=0"}
	}
	if req.Cost.IsNegative() || req.Price.IsNegative() {
		return &ValidationError{Field: "Cost", Tag: "gte=0"}
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *ProductRequest, actor model.Actor) (*model.Product, error) {
	if err := s.validateProduct(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Stock:        req.Stock,
		Unit:         req.Unit,
		Cost:         req.Cost,
		Price:        req.Price,
		ReorderLevel: req.ReorderLevel,
		CategoryID:   req.CategoryID,
		SupplierID:   req.SupplierID,
	}
	product.CreatedBy = actor.ID
	product.UpdatedBy = actor.ID
	if actor.ID != "" {
		id := actor.ID
		product.CreatedByUserID = &id
		product.UpdatedByUserID = &id
	}

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		existing, _ := r.Products.FindBySKU(req.SKU)
		if existing != nil && existing.ID != uuid.Nil {
			return ErrSKUExists
		}
		if err := s.checkRefs(r, req); err != nil {
			return err
		}

		if err := r.Products.Create(product); err != nil {
			return err
		}

		appendAudit(r, actor, "product.create", "products", product.ID, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastProduct("product_created", product, actor)

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *ProductRequest, actor model.Actor) (*model.Product, error) {
	if err := s.validateProduct(req); err != nil {
		return nil, err
	}

	var product *model.Product
	err := s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		// Lock the row: a direct edit may rewrite stock and must not race a
		// concurrent ledger mutation.
		product, err = r.Products.FindByIDForUpdate(id)
		if err != nil {
			return orNotFound(err, fmt.Sprintf("product %s", id))
		}

		if req.SKU != product.SKU {
			existing, _ := r.Products.FindBySKU(req.SKU)
			if existing != nil && existing.ID != uuid.Nil {
				return ErrSKUExists
			}
		}
		if err := s.checkRefs(r, req); err != nil {
			return err
		}

		product.SKU = req.SKU
		product.Name = req.Name
		product.Stock = req.Stock
		product.Unit = req.Unit
		product.Cost = req.Cost
		product.Price = req.Price
		product.ReorderLevel = req.ReorderLevel
		product.CategoryID = req.CategoryID
		product.SupplierID = req.SupplierID
		product.UpdatedBy = actor.ID
		if actor.ID != "" {
			uid := actor.ID
			product.UpdatedByUserID = &uid
		}

		if err := r.Products.Update(product); err != nil {
			return err
		}

		appendAudit(r, actor, "product.update", "products", product.ID, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastProduct("product_updated", product, actor)

	return product, nil
}

func (s *catalogService) checkRefs(r repository.Repos, req *ProductRequest) error {
	if req.CategoryID != nil {
		if _, err := r.Categories.FindByID(*req.CategoryID); err != nil {
			return orNotFound(err, fmt.Sprintf("category %s", *req.CategoryID))
		}
	}
	if req.SupplierID != nil {
		if _, err := r.Suppliers.FindByID(*req.SupplierID); err != nil {
			return orNotFound(err, fmt.Sprintf("supplier %s", *req.SupplierID))
		}
	}
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID, actor model.Actor) error {
	return s.uow.Do(ctx, func(r repository.Repos) error {
		if _, err := r.Products.FindByID(id); err != nil {
			return orNotFound(err, fmt.Sprintf("product %s", id))
		}
		if err := r.Products.Delete(id, actor.ID); err != nil {
			return err
		}
		appendAudit(r, actor, "product.delete", "products", id, nil)
		return nil
	})
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, orNotFound(err, fmt.Sprintf("product %s", id))
	}
	return product, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *CategoryRequest, actor model.Actor) (*model.Category, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	category.CreatedBy = actor.ID
	category.UpdatedBy = actor.ID

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		if err := r.Categories.Create(category); err != nil {
			return err
		}
		appendAudit(r, actor, "category.create", "categories", category.ID, req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *CategoryRequest, actor model.Actor) (*model.Category, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var category *model.Category
	err := s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		category, err = r.Categories.FindByID(id)
		if err != nil {
			return orNotFound(err, fmt.Sprintf("category %s", id))
		}

		category.Name = req.Name
		category.Description = req.Description
		category.UpdatedBy = actor.ID

		if err := r.Categories.Update(category); err != nil {
			return err
		}
		appendAudit(r, actor, "category.update", "categories", id, req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID, actor model.Actor) error {
	return s.uow.Do(ctx, func(r repository.Repos) error {
		if _, err := r.Categories.FindByID(id); err != nil {
			return orNotFound(err, fmt.Sprintf("category %s", id))
		}
		if err := r.Categories.Delete(id, actor.ID); err != nil {
			return err
		}
		appendAudit(r, actor, "category.delete", "categories", id, nil)
		return nil
	})
}

func (s *catalogService) GetAllCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) CreateSupplier(ctx context.Context, req *SupplierRequest, actor model.Actor) (*model.Supplier, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	}
	supplier.CreatedBy = actor.ID
	supplier.UpdatedBy = actor.ID

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		if err := r.Suppliers.Create(supplier); err != nil {
			return err
		}
		appendAudit(r, actor, "supplier.create", "suppliers", supplier.ID, req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *catalogService) UpdateSupplier(ctx context.Context, id uuid.UUID, req *SupplierRequest, actor model.Actor) (*model.Supplier, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var supplier *model.Supplier
	err := s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		supplier, err = r.Suppliers.FindByID(id)
		if err != nil {
			return orNotFound(err, fmt.Sprintf("supplier %s", id))
		}

		supplier.Name = req.Name
		supplier.ContactName = req.ContactName
		supplier.PhoneNumber = req.PhoneNumber
		supplier.Email = req.Email
		supplier.Address = req.Address
		supplier.UpdatedBy = actor.ID

		if err := r.Suppliers.Update(supplier); err != nil {
			return err
		}
		appendAudit(r, actor, "supplier.update", "suppliers", id, req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *catalogService) DeleteSupplier(ctx context.Context, id uuid.UUID, actor model.Actor) error {
	return s.uow.Do(ctx, func(r repository.Repos) error {
		if _, err := r.Suppliers.FindByID(id); err != nil {
			return orNotFound(err, fmt.Sprintf("supplier %s", id))
		}
		if err := r.Suppliers.Delete(id, actor.ID); err != nil {
			return err
		}
		appendAudit(r, actor, "supplier.delete", "suppliers", id, nil)
		return nil
	})
}

func (s *catalogService) GetAllSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *catalogService) broadcastProduct(action string, product *model.Product, actor model.Actor) {
	if s.wsHub == nil || product == nil {
		return
	}
	go s.wsHub.BroadcastJSON(ws.StockUpdate{
		Type:      "stock_update",
		Action:    action,
		ProductID: product.ID.String(),
		SKU:       product.SKU,
		Name:      product.Name,
		NewStock:  product.Stock,
		User:      actor.Name,
		Message:   fmt.Sprintf("%s saved product '%s'", actor.Name, product.Name),
	})
}
