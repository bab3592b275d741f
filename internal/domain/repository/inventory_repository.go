package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// InventoryRepository define el puerto del libro de inventario (stock_quantity por variación).
// Usado dentro de transacciones para que cabecera, ítems y saldo se confirmen juntos.
type InventoryRepository interface {
	// Adjust suma delta (negativo en salidas) al saldo y devuelve el saldo resultante.
	// Devuelve domain.ErrVariationNotFound si la variación no tiene fila de inventario.
	Adjust(ctx context.Context, variationID int64, delta int) (int, error)
	// Open crea la fila de inventario en 0 de una variación nueva.
	Open(ctx context.Context, variationID int64) error
	ListView(ctx context.Context) ([]*entity.InventoryView, error)
}
