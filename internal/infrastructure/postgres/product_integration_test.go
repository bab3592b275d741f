package postgres_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
)

func TestProduct_Integracion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(f.pool)
	uc := usecase.NewProductUseCase(postgres.NewTxRunner(f.pool), repo, nil)

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:     "Pantalón",
		Category: "Pantalones",
		Variations: []dto.ProductVariationRequest{
			{Type: "Talla", Value: "32", SKU: "PAN-32", UnitPrice: decimal.RequireFromString("899.50")},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Variations, 1)
	assert.Equal(t, 0, f.stock(t, created.Variations[0].VariationID), "inventario inicial en 0")

	products := f.count(t, "product")
	_, err = uc.Create(ctx, dto.CreateProductRequest{
		Name:       "Copia",
		Variations: []dto.ProductVariationRequest{{Type: "Talla", Value: "S", SKU: "CAM-S"}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, products, f.count(t, "product"), "el SKU repetido revierte el producto")

	updated, err := uc.Update(ctx, created.ProductID, dto.UpdateProductRequest{Name: "Pantalón Chino", Category: "Pantalones"})
	require.NoError(t, err)
	assert.Equal(t, "Pantalón Chino", updated.Name)
	require.Len(t, updated.Variations, 1)
	assert.True(t, decimal.RequireFromString("899.50").Equal(updated.Variations[0].UnitPrice))

	require.NoError(t, uc.Archive(ctx, created.ProductID))
	got, err := repo.GetByID(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusArchived, got.Status)

	visible, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Camisa", visible[0].Name)

	assert.ErrorIs(t, uc.Archive(ctx, 999999), domain.ErrNotFound)
	missing, err := repo.GetByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
