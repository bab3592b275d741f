package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// OrderTransactionRepository lectura del subsistema de órdenes usada por las salidas de inventario.
type OrderTransactionRepository interface {
	// GetReferenceNumber devuelve domain.ErrOrderTransactionNotFound si no existe.
	GetReferenceNumber(ctx context.Context, orderTransactionID int64) (string, error)
}

// OrderRepository órdenes con sus ítems para la consola y cambio de sus estados.
type OrderRepository interface {
	ListWithItems(ctx context.Context) ([]*entity.Order, error)
	// UpdatePaymentStatus y UpdateOrderStatus devuelven domain.ErrNotFound si la orden no existe.
	UpdatePaymentStatus(ctx context.Context, orderID int64, status string) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
}
