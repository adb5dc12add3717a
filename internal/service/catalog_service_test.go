package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogEnv(t *testing.T) (*testEnv, CatalogService) {
	t.Helper()
	env := newTestEnv()
	svc := NewCatalogService(env.uow, env.repos.Products, env.repos.Categories, env.repos.Suppliers, nil)
	return env, svc
}

func TestCreateProduct(t *testing.T) {
	env, svc := newCatalogEnv(t)
	actor := adminActor()

	product, err := svc.CreateProduct(context.Background(), &ProductRequest{
		SKU:          "SOAP-100",
		Name:         "Foam Soap",
		Stock:        10,
		ReorderLevel: 3,
	}, actor)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, actor.ID, product.CreatedBy)

	audits, _ := env.repos.AuditLogs.FindByRow("products", product.ID)
	require.Len(t, audits, 1)
	assert.Equal(t, "product.create", audits[0].Action)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	env, svc := newCatalogEnv(t)
	env.seedProduct("DUP-1", 1, 1, "1.00")

	_, err := svc.CreateProduct(context.Background(), &ProductRequest{
		SKU:  "DUP-1",
		Name: "Duplicate",
	}, adminActor())
	require.ErrorIs(t, err, ErrSKUExists)
}

func TestCreateProductNegativeStock(t *testing.T) {
	_, svc := newCatalogEnv(t)

	_, err := svc.CreateProduct(context.Background(), &ProductRequest{
		SKU:   "NEG-1",
		Name:  "Negative",
		Stock: -1,
	}, adminActor())
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	_, svc := newCatalogEnv(t)
	missing := uuid.New()

	_, err := svc.CreateProduct(context.Background(), &ProductRequest{
		SKU:        "CAT-1",
		Name:       "Orphan",
		CategoryID: &missing,
	}, adminActor())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProductNotFound(t *testing.T) {
	_, svc := newCatalogEnv(t)

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), &ProductRequest{
		SKU:  "X-1",
		Name: "Ghost",
	}, adminActor())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	env, svc := newCatalogEnv(t)
	product := env.seedProduct("DEL-1", 1, 1, "1.00")

	err := svc.DeleteProduct(context.Background(), product.ID, adminActor())
	require.NoError(t, err)

	_, err = svc.GetProductByID(product.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryAndSupplierCRUD(t *testing.T) {
	_, svc := newCatalogEnv(t)
	actor := adminActor()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Chemicals"}, actor)
	require.NoError(t, err)

	category, err = svc.UpdateCategory(ctx, category.ID, &CategoryRequest{Name: "Wash Chemicals"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Wash Chemicals", category.Name)

	supplier, err := svc.CreateSupplier(ctx, &SupplierRequest{Name: "CleanChem", Email: "sales@cleanchem.test"}, actor)
	require.NoError(t, err)

	err = svc.DeleteSupplier(ctx, supplier.ID, actor)
	require.NoError(t, err)

	suppliers, err := svc.GetAllSuppliers()
	require.NoError(t, err)
	assert.Empty(t, suppliers)
}

func TestCreateSupplierBadEmail(t *testing.T) {
	_, svc := newCatalogEnv(t)

	_, err := svc.CreateSupplier(context.Background(), &SupplierRequest{
		Name:  "BadMail",
		Email: "not-an-email",
	}, adminActor())
	require.ErrorIs(t, err, ErrValidation)
}
