package service

import (
	"context"
	"sync"
	"time"

	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory store backing the fake repositories. One store per test; the fake
// unit of work snapshots it before every transaction and restores the snapshot
// on error, which gives the tests real rollback semantics without a database.
type memStore struct {
	products     map[uuid.UUID]model.Product
	logs         []model.InventoryLog
	audits       []model.AuditLog
	requisitions map[uuid.UUID]model.Requisition
	purchases    map[uuid.UUID]model.Purchase
	services     map[uuid.UUID]model.Service
	categories   map[uuid.UUID]model.Category
	suppliers    map[uuid.UUID]model.Supplier
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[uuid.UUID]model.Product{},
		requisitions: map[uuid.UUID]model.Requisition{},
		purchases:    map[uuid.UUID]model.Purchase{},
		services:     map[uuid.UUID]model.Service{},
		categories:   map[uuid.UUID]model.Category{},
		suppliers:    map[uuid.UUID]model.Supplier{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.requisitions {
		v.Items = append([]model.RequisitionItem(nil), v.Items...)
		c.requisitions[k] = v
	}
	for k, v := range s.purchases {
		v.Items = append([]model.PurchaseItem(nil), v.Items...)
		c.purchases[k] = v
	}
	for k, v := range s.services {
		v.Items = append([]model.ServiceItem(nil), v.Items...)
		c.services[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	c.logs = append([]model.InventoryLog(nil), s.logs...)
	c.audits = append([]model.AuditLog(nil), s.audits...)
	return c
}

// memUnitOfWork serializes transactions with a mutex, matching the row-lock
// serialization the real store provides, and rolls back by restoring the
// pre-transaction snapshot.
type memUnitOfWork struct {
	mu    sync.Mutex
	store *memStore
}

func (u *memUnitOfWork) Do(ctx context.Context, fn func(r repository.Repos) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	snapshot := u.store.clone()
	if err := fn(reposFor(u.store)); err != nil {
		*u.store = *snapshot
		return err
	}
	return nil
}

func reposFor(s *memStore) repository.Repos {
	return repository.Repos{
		Products:      &fakeProductRepo{s},
		InventoryLogs: &fakeInventoryLogRepo{s},
		AuditLogs:     &fakeAuditLogRepo{s},
		Requisitions:  &fakeRequisitionRepo{s},
		Purchases:     &fakePurchaseRepo{s},
		Services:      &fakeServiceRepo{s},
		Categories:    &fakeCategoryRepo{s},
		Suppliers:     &fakeSupplierRepo{s},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ---- product repo ----

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(product *model.Product) error {
	ensureID(&product.ID)
	product.CreatedAt = time.Now()
	r.s.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) FindAll() ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByIDForUpdate(id uuid.UUID) (*model.Product, error) {
	return r.FindByID(id)
}

func (r *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindLowStock() ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.s.products {
		if p.Stock <= p.ReorderLevel {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	if _, ok := r.s.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) UpdateStock(id uuid.UUID, newStock int, updatedBy string) error {
	p, ok := r.s.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = newStock
	p.UpdatedBy = updatedBy
	r.s.products[id] = p
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID, deletedBy string) error {
	if _, ok := r.s.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) GetDashboardStats() (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{TotalValuation: decimal.Zero}
	for _, p := range r.s.products {
		stats.TotalProducts++
		if p.Stock <= p.ReorderLevel {
			stats.LowStockCount++
		}
		stats.TotalValuation = stats.TotalValuation.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return stats, nil
}

// ---- inventory log repo ----

type fakeInventoryLogRepo struct{ s *memStore }

func (r *fakeInventoryLogRepo) Create(entry *model.InventoryLog) error {
	ensureID(&entry.ID)
	entry.CreatedAt = time.Now()
	r.s.logs = append(r.s.logs, *entry)
	return nil
}

func (r *fakeInventoryLogRepo) FindAll() ([]model.InventoryLog, error) {
	return append([]model.InventoryLog(nil), r.s.logs...), nil
}

func (r *fakeInventoryLogRepo) FindByProduct(productID uuid.UUID) ([]model.InventoryLog, error) {
	var out []model.InventoryLog
	for _, e := range r.s.logs {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeInventoryLogRepo) GetStockMovement(startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	byDate := map[string]*repository.StockMovementData{}
	var order []string
	for _, e := range r.s.logs {
		if e.CreatedAt.Before(startDate) || e.CreatedAt.After(endDate) {
			continue
		}
		date := e.CreatedAt.Format("2006-01-02")
		d, ok := byDate[date]
		if !ok {
			d = &repository.StockMovementData{Date: date}
			byDate[date] = d
			order = append(order, date)
		}
		if e.Change > 0 {
			d.Inbound += e.Change
		} else {
			d.Outbound += -e.Change
		}
	}
	var out []repository.StockMovementData
	for _, date := range order {
		out = append(out, *byDate[date])
	}
	return out, nil
}

func (r *fakeInventoryLogRepo) GetCostImpactSummary(startDate, endDate time.Time) (*repository.CostImpactSummary, error) {
	summary := &repository.CostImpactSummary{InboundCost: decimal.Zero, OutboundCost: decimal.Zero}
	for _, e := range r.s.logs {
		if e.CreatedAt.Before(startDate) || e.CreatedAt.After(endDate) {
			continue
		}
		if e.Change > 0 {
			summary.InboundCost = summary.InboundCost.Add(e.TotalCostImpact)
		} else {
			summary.OutboundCost = summary.OutboundCost.Sub(e.TotalCostImpact)
		}
	}
	return summary, nil
}

// ---- audit log repo ----

type fakeAuditLogRepo struct{ s *memStore }

func (r *fakeAuditLogRepo) Create(entry *model.AuditLog) error {
	ensureID(&entry.ID)
	entry.CreatedAt = time.Now()
	r.s.audits = append(r.s.audits, *entry)
	return nil
}

func (r *fakeAuditLogRepo) FindAll() ([]model.AuditLog, error) {
	return append([]model.AuditLog(nil), r.s.audits...), nil
}

func (r *fakeAuditLogRepo) FindByRow(tableName string, rowID uuid.UUID) ([]model.AuditLog, error) {
	var out []model.AuditLog
	for _, e := range r.s.audits {
		if e.TableName == tableName && e.RowID == rowID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ---- requisition repo ----

type fakeRequisitionRepo struct{ s *memStore }

func (r *fakeRequisitionRepo) Create(requisition *model.Requisition) error {
	ensureID(&requisition.ID)
	requisition.CreatedAt = time.Now()
	for i := range requisition.Items {
		ensureID(&requisition.Items[i].ID)
		requisition.Items[i].RequisitionID = requisition.ID
	}
	stored := *requisition
	stored.Items = append([]model.RequisitionItem(nil), requisition.Items...)
	r.s.requisitions[requisition.ID] = stored
	return nil
}

func (r *fakeRequisitionRepo) FindAll() ([]model.Requisition, error) {
	out := make([]model.Requisition, 0, len(r.s.requisitions))
	for _, req := range r.s.requisitions {
		out = append(out, req)
	}
	return out, nil
}

func (r *fakeRequisitionRepo) FindByID(id uuid.UUID) (*model.Requisition, error) {
	req, ok := r.s.requisitions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	req.Items = append([]model.RequisitionItem(nil), req.Items...)
	return &req, nil
}

func (r *fakeRequisitionRepo) FindByIDForUpdate(id uuid.UUID) (*model.Requisition, error) {
	return r.FindByID(id)
}

func (r *fakeRequisitionRepo) Update(requisition *model.Requisition) error {
	stored, ok := r.s.requisitions[requisition.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	updated := *requisition
	updated.Items = stored.Items // items are omitted on update
	r.s.requisitions[requisition.ID] = updated
	return nil
}

// ---- purchase repo ----

type fakePurchaseRepo struct{ s *memStore }

func (r *fakePurchaseRepo) Create(purchase *model.Purchase) error {
	ensureID(&purchase.ID)
	purchase.CreatedAt = time.Now()
	for i := range purchase.Items {
		ensureID(&purchase.Items[i].ID)
		purchase.Items[i].PurchaseID = purchase.ID
	}
	stored := *purchase
	stored.Items = append([]model.PurchaseItem(nil), purchase.Items...)
	r.s.purchases[purchase.ID] = stored
	return nil
}

func (r *fakePurchaseRepo) FindAll() ([]model.Purchase, error) {
	out := make([]model.Purchase, 0, len(r.s.purchases))
	for _, p := range r.s.purchases {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePurchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Items = append([]model.PurchaseItem(nil), p.Items...)
	return &p, nil
}

func (r *fakePurchaseRepo) FindByIDForUpdate(id uuid.UUID) (*model.Purchase, error) {
	return r.FindByID(id)
}

func (r *fakePurchaseRepo) Update(purchase *model.Purchase) error {
	stored, ok := r.s.purchases[purchase.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	updated := *purchase
	updated.Items = stored.Items
	r.s.purchases[purchase.ID] = updated
	return nil
}

// ---- service repo ----

type fakeServiceRepo struct{ s *memStore }

func (r *fakeServiceRepo) Create(service *model.Service) error {
	ensureID(&service.ID)
	service.CreatedAt = time.Now()
	for i := range service.Items {
		ensureID(&service.Items[i].ID)
		service.Items[i].ServiceID = service.ID
	}
	stored := *service
	stored.Items = append([]model.ServiceItem(nil), service.Items...)
	r.s.services[service.ID] = stored
	return nil
}

func (r *fakeServiceRepo) FindAll() ([]model.Service, error) {
	out := make([]model.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		out = append(out, svc)
	}
	return out, nil
}

func (r *fakeServiceRepo) FindByID(id uuid.UUID) (*model.Service, error) {
	svc, ok := r.s.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	svc.Items = append([]model.ServiceItem(nil), svc.Items...)
	return &svc, nil
}

func (r *fakeServiceRepo) Update(service *model.Service) error {
	stored, ok := r.s.services[service.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	updated := *service
	if updated.Items == nil {
		updated.Items = stored.Items
	}
	r.s.services[service.ID] = updated
	return nil
}

func (r *fakeServiceRepo) ReplaceItems(serviceID uuid.UUID, items []model.ServiceItem) error {
	svc, ok := r.s.services[serviceID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range items {
		ensureID(&items[i].ID)
		items[i].ServiceID = serviceID
	}
	svc.Items = append([]model.ServiceItem(nil), items...)
	r.s.services[serviceID] = svc
	return nil
}

func (r *fakeServiceRepo) Delete(id uuid.UUID, deletedBy string) error {
	if _, ok := r.s.services[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.services, id)
	return nil
}

// ---- category repo ----

type fakeCategoryRepo struct{ s *memStore }

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	ensureID(&category.ID)
	category.CreatedAt = time.Now()
	r.s.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindByName(name string) (*model.Category, error) {
	for _, c := range r.s.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) Update(category *model.Category) error {
	if _, ok := r.s.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Delete(id uuid.UUID, deletedBy string) error {
	if _, ok := r.s.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.categories, id)
	return nil
}

// ---- supplier repo ----

type fakeSupplierRepo struct{ s *memStore }

func (r *fakeSupplierRepo) Create(supplier *model.Supplier) error {
	ensureID(&supplier.ID)
	supplier.CreatedAt = time.Now()
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) FindAll() ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		out = append(out, sup)
	}
	return out, nil
}

func (r *fakeSupplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sup, nil
}

func (r *fakeSupplierRepo) Update(supplier *model.Supplier) error {
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) Delete(id uuid.UUID, deletedBy string) error {
	if _, ok := r.s.suppliers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.suppliers, id)
	return nil
}

// ---- shared fixtures ----

type testEnv struct {
	store *memStore
	uow   *memUnitOfWork
	repos repository.Repos
}

func newTestEnv() *testEnv {
	store := newMemStore()
	return &testEnv{
		store: store,
		uow:   &memUnitOfWork{store: store},
		repos: reposFor(store),
	}
}

func (e *testEnv) seedProduct(sku string, stock, reorderLevel int, cost string) *model.Product {
	product := &model.Product{
		SKU:          sku,
		Name:         "Product " + sku,
		Stock:        stock,
		ReorderLevel: reorderLevel,
		Cost:         decimal.RequireFromString(cost),
	}
	_ = e.repos.Products.Create(product)
	return product
}

func (e *testEnv) seedSupplier(name string) *model.Supplier {
	supplier := &model.Supplier{Name: name}
	_ = e.repos.Suppliers.Create(supplier)
	return supplier
}

func (e *testEnv) productStock(id uuid.UUID) int {
	p, _ := e.repos.Products.FindByID(id)
	return p.Stock
}

func adminActor() model.Actor {
	return model.Actor{
		ID:       uuid.NewString(),
		Email:    "admin@example.com",
		Name:     "Admin",
		RoleCode: model.RoleAdmin,
	}
}

func employeeActor() model.Actor {
	return model.Actor{
		ID:       uuid.NewString(),
		Email:    "employee@example.com",
		Name:     "Employee",
		RoleCode: model.RoleEmployee,
	}
}
