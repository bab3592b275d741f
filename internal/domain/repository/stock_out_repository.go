package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// StockOutRepository define el puerto de persistencia para salidas de inventario (cabecera + ítems).
type StockOutRepository interface {
	// Create inserta la cabecera y asigna StockOutID.
	Create(ctx context.Context, stockOut *entity.StockOut) error
	CreateItem(ctx context.Context, item *entity.StockOutItem) error
	// ListMovements devuelve todos los ítems con su cabecera, más recientes primero.
	ListMovements(ctx context.Context) ([]*entity.StockOutMovement, error)
	// GetByID devuelve las filas de una salida; slice vacío si no existe.
	GetByID(ctx context.Context, stockOutID int64) ([]*entity.StockOutRecord, error)
	// ListMovementsByID devuelve las filas del historial de una sola salida (comprobante PDF).
	ListMovementsByID(ctx context.Context, stockOutID int64) ([]*entity.StockOutMovement, error)
}
