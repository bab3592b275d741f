package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository            = (*OrderRepo)(nil)
	_ repository.OrderTransactionRepository = (*OrderRepo)(nil)
)

// OrderRepo lectura del subsistema de órdenes.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetReferenceNumber reference_number de la transacción de pago de una orden.
func (r *OrderRepo) GetReferenceNumber(ctx context.Context, orderTransactionID int64) (string, error) {
	var ref string
	err := r.q.QueryRow(ctx,
		`SELECT reference_number FROM order_transaction WHERE order_transaction_id = $1`,
		orderTransactionID,
	).Scan(&ref)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("order_transaction %d: %w", orderTransactionID, domain.ErrOrderTransactionNotFound)
		}
		return "", fmt.Errorf("get order_transaction: %w", err)
	}
	return ref, nil
}

// ListWithItems órdenes con sus ítems, más recientes primero. Dos consultas: cabeceras e ítems.
func (r *OrderRepo) ListWithItems(ctx context.Context) ([]*entity.Order, error) {
	query := `
		SELECT o.order_id, ot.order_transaction_id, COALESCE(ot.reference_number, ''),
		       c.first_name || ' ' || c.last_name AS customer_name,
		       o.date_ordered, o.total_amount, o.payment_status, o.order_status
		FROM orders o
		JOIN customer c ON o.customer_id = c.customer_id
		LEFT JOIN order_transaction ot ON ot.order_id = o.order_id
		ORDER BY o.date_ordered DESC NULLS LAST, o.order_id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	byID := make(map[int64]*entity.Order)
	ids := make([]int64, 0)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.OrderID, &o.OrderTransactionID, &o.ReferenceNumber, &o.CustomerName,
			&o.DateOrdered, &o.TotalAmount, &o.PaymentStatus, &o.OrderStatus); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if _, dup := byID[o.OrderID]; dup {
			continue
		}
		o.Items = []entity.OrderItem{}
		orders = append(orders, &o)
		byID[o.OrderID] = &o
		ids = append(ids, o.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(ids) == 0 {
		return orders, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT oi.order_id, oi.order_item_id, oi.variation_id, p.name, pv.type, pv.value,
		       oi.quantity, oi.unit_price
		FROM order_item oi
		JOIN product_variation pv ON oi.variation_id = pv.variation_id
		JOIN product p ON pv.product_id = p.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.order_item_id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID int64
		var it entity.OrderItem
		if err := itemRows.Scan(&orderID, &it.OrderItemID, &it.VariationID, &it.ProductName,
			&it.Type, &it.Value, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return orders, itemRows.Err()
}

func (r *OrderRepo) UpdatePaymentStatus(ctx context.Context, orderID int64, status string) error {
	return r.updateStatus(ctx, `UPDATE orders SET payment_status = $2 WHERE order_id = $1`, orderID, status)
}

func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	return r.updateStatus(ctx, `UPDATE orders SET order_status = $2 WHERE order_id = $1`, orderID, status)
}

func (r *OrderRepo) updateStatus(ctx context.Context, query string, orderID int64, status string) error {
	tag, err := r.q.Exec(ctx, query, orderID, status)
	if err != nil {
		return fmt.Errorf("update order %d: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("orden %d: %w", orderID, domain.ErrNotFound)
	}
	return nil
}
