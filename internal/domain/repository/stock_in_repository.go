package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// StockInRepository define el puerto de persistencia para entradas de inventario.
type StockInRepository interface {
	Create(ctx context.Context, stockIn *entity.StockIn) error
	CreateItem(ctx context.Context, item *entity.StockInItem) error
	ListMovements(ctx context.Context) ([]*entity.StockInMovement, error)
}
