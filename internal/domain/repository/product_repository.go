package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductRepository catálogo de productos y variaciones.
type ProductRepository interface {
	// Create asigna ProductID, Status y fechas.
	Create(ctx context.Context, p *entity.Product) error
	// CreateVariation asigna VariationID; un SKU repetido devuelve domain.ErrDuplicate.
	CreateVariation(ctx context.Context, v *entity.ProductVariation) error
	// Update cambia nombre, descripción y categoría; domain.ErrNotFound si no existe.
	Update(ctx context.Context, p *entity.Product) error
	SetStatus(ctx context.Context, productID int64, status string) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, productID int64) (*entity.Product, error)
	// List todos los productos con sus variaciones, por product_id.
	List(ctx context.Context) ([]*entity.Product, error)
}
