package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/listing"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductTxRunner transacción de alta de producto: producto, variaciones e inventario se confirman juntos.
type ProductTxRunner interface {
	RunProduct(ctx context.Context, fn func(
		products repository.ProductRepository,
		ledger repository.InventoryRepository,
	) error) error
}

// ProductFilters filtros categóricos aceptados por el listado de productos.
var ProductFilters = []string{"category", "status"}

var productSpec = listing.Spec[dto.ProductResponse]{
	Search: []func(dto.ProductResponse) string{
		func(p dto.ProductResponse) string { return p.Name },
		func(p dto.ProductResponse) string { return p.Description },
	},
	Date: func(p dto.ProductResponse) (time.Time, bool) {
		return p.CreatedAt, !p.CreatedAt.IsZero()
	},
	Categories: map[string]func(dto.ProductResponse) string{
		"category": func(p dto.ProductResponse) string { return p.Category },
		"status":   func(p dto.ProductResponse) string { return p.Status },
	},
	Sortable: map[string]listing.SortField[dto.ProductResponse]{
		"product_id": {Kind: listing.Numeric, Value: func(p dto.ProductResponse) string { return strconv.FormatInt(p.ProductID, 10) }},
		"name":       {Kind: listing.Text, Value: func(p dto.ProductResponse) string { return p.Name }},
		"category":   {Kind: listing.Text, Value: func(p dto.ProductResponse) string { return p.Category }},
		"status":     {Kind: listing.Text, Value: func(p dto.ProductResponse) string { return p.Status }},
		"created_at": {Kind: listing.Text, Value: func(p dto.ProductResponse) string { return listing.TimeKey(&p.CreatedAt) }},
	},
}

// ProductUseCase catálogo de productos: alta con inventario inicial, edición, archivo y listado.
type ProductUseCase struct {
	tx   ProductTxRunner
	repo repository.ProductRepository
	loc  *time.Location
}

// NewProductUseCase construye el caso de uso. repo lee fuera de transacción.
func NewProductUseCase(tx ProductTxRunner, repo repository.ProductRepository, loc *time.Location) *ProductUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ProductUseCase{tx: tx, repo: repo, loc: loc}
}

// Create inserta el producto, sus variaciones y una fila de inventario en 0 por variación.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &entity.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	vars := make([]entity.ProductVariation, 0, len(in.Variations))
	for i, v := range in.Variations {
		pv := entity.ProductVariation{
			Type:      strings.TrimSpace(v.Type),
			Value:     strings.TrimSpace(v.Value),
			SKU:       strings.TrimSpace(v.SKU),
			UnitPrice: v.UnitPrice,
		}
		if pv.Type == "" || pv.Value == "" || pv.SKU == "" {
			return nil, fmt.Errorf("%w: variation %d: type, value and sku are required", domain.ErrInvalidInput, i+1)
		}
		if pv.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: variation %d: unit_price cannot be negative", domain.ErrInvalidInput, i+1)
		}
		vars = append(vars, pv)
	}

	err := uc.tx.RunProduct(ctx, func(products repository.ProductRepository, ledger repository.InventoryRepository) error {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		if len(vars) == 0 {
			vars = append(vars, defaultVariation(p.ProductID))
		}
		for i := range vars {
			vars[i].ProductID = p.ProductID
			if err := products.CreateVariation(ctx, &vars[i]); err != nil {
				return err
			}
			if err := ledger.Open(ctx, vars[i].VariationID); err != nil {
				return err
			}
		}
		p.Variations = vars
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func defaultVariation(productID int64) entity.ProductVariation {
	return entity.ProductVariation{Type: "Default", Value: "Default", SKU: fmt.Sprintf("P%d-DEFAULT", productID)}
}

// Update cambia nombre, descripción y categoría.
func (uc *ProductUseCase) Update(ctx context.Context, productID int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p := &entity.Product{
		ProductID:   productID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	return uc.GetByID(ctx, productID)
}

// Archive oculta el producto del catálogo; inventario e historial se conservan.
func (uc *ProductUseCase) Archive(ctx context.Context, productID int64) error {
	if err := uc.repo.SetStatus(ctx, productID, entity.ProductStatusArchived); err != nil {
		return fmt.Errorf("archivar producto: %w", err)
	}
	return nil
}

// GetByID devuelve domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, productID int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("producto %d: %w", productID, domain.ErrNotFound)
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// List devuelve los productos por product_id. Los archivados se omiten salvo showArchived.
func (uc *ProductUseCase) List(ctx context.Context, showArchived bool) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if !showArchived && p.Status == entity.ProductStatusArchived {
			continue
		}
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Browse aplica los controles de la tabla. Con filtro de estado se incluyen los archivados.
func (uc *ProductUseCase) Browse(ctx context.Context, q listing.Query, showArchived bool) (*dto.ListingResponse[dto.ProductResponse], error) {
	all, err := uc.List(ctx, showArchived || q.Filters["status"] != "")
	if err != nil {
		return nil, err
	}
	return toListingResponse(listing.Apply(all, productSpec, q, uc.loc), q.Sort), nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	vars := make([]dto.ProductVariationResponse, 0, len(p.Variations))
	for _, v := range p.Variations {
		vars = append(vars, dto.ProductVariationResponse{
			VariationID: v.VariationID,
			Type:        v.Type,
			Value:       v.Value,
			SKU:         v.SKU,
			UnitPrice:   v.UnitPrice,
		})
	}
	return dto.ProductResponse{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Variations:  vars,
	}
}
