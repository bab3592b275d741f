package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/listing"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// InventoryFilters filtros categóricos aceptados por el listado de inventario.
var InventoryFilters = []string{"product_status", "type"}

var inventorySpec = listing.Spec[dto.InventoryResponse]{
	Search: []func(dto.InventoryResponse) string{
		func(i dto.InventoryResponse) string { return i.ProductName },
		func(i dto.InventoryResponse) string { return i.SKU },
		func(i dto.InventoryResponse) string { return i.Value },
	},
	Date: func(i dto.InventoryResponse) (time.Time, bool) {
		if i.UpdatedAt == nil {
			return time.Time{}, false
		}
		return *i.UpdatedAt, true
	},
	Categories: map[string]func(dto.InventoryResponse) string{
		"product_status": func(i dto.InventoryResponse) string { return i.ProductStatus },
		"type":           func(i dto.InventoryResponse) string { return i.Type },
	},
	Sortable: map[string]listing.SortField[dto.InventoryResponse]{
		"variation_id":   {Kind: listing.Numeric, Value: func(i dto.InventoryResponse) string { return strconv.FormatInt(i.VariationID, 10) }},
		"product_name":   {Kind: listing.Text, Value: func(i dto.InventoryResponse) string { return i.ProductName }},
		"sku":            {Kind: listing.Text, Value: func(i dto.InventoryResponse) string { return i.SKU }},
		"stock_quantity": {Kind: listing.Numeric, Value: func(i dto.InventoryResponse) string { return strconv.Itoa(i.StockQuantity) }},
		"unit_price":     {Kind: listing.Numeric, Value: func(i dto.InventoryResponse) string { return i.UnitPrice.String() }},
		"updated_at":     {Kind: listing.Text, Value: func(i dto.InventoryResponse) string { return listing.TimeKey(i.UpdatedAt) }},
	},
}

// InventoryUseCase lectura del inventario por variación.
type InventoryUseCase struct {
	repo repository.InventoryRepository
	loc  *time.Location
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository, loc *time.Location) *InventoryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &InventoryUseCase{repo: repo, loc: loc}
}

// List devuelve el inventario con su variación y producto.
func (uc *InventoryUseCase) List(ctx context.Context) ([]dto.InventoryResponse, error) {
	rows, err := uc.repo.ListView(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar inventario: %w", err)
	}
	out := make([]dto.InventoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventoryResponse{
			VariationID:   r.VariationID,
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			SKU:           r.SKU,
			Type:          r.Type,
			Value:         r.Value,
			UnitPrice:     r.UnitPrice,
			StockQuantity: r.StockQuantity,
			ProductStatus: r.ProductStatus,
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return out, nil
}

// Browse aplica el listado paginado sobre el inventario completo.
func (uc *InventoryUseCase) Browse(ctx context.Context, q listing.Query) (*dto.ListingResponse[dto.InventoryResponse], error) {
	all, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toListingResponse(listing.Apply(all, inventorySpec, q, uc.loc), q.Sort), nil
}
