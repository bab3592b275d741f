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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo libro de inventario sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Adjust aplica delta en la misma sentencia UPDATE (atómico por fila bajo READ COMMITTED).
func (r *InventoryRepo) Adjust(ctx context.Context, variationID int64, delta int) (int, error) {
	query := `
		UPDATE inventory
		SET stock_quantity = stock_quantity + $1, updated_at = now()
		WHERE variation_id = $2
		RETURNING stock_quantity`
	var qty int
	err := r.q.QueryRow(ctx, query, delta, variationID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("variación %d: %w", variationID, domain.ErrVariationNotFound)
		}
		return 0, fmt.Errorf("update inventory: %w", err)
	}
	return qty, nil
}

// Open inserta la fila en 0; la variación debe existir.
func (r *InventoryRepo) Open(ctx context.Context, variationID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventory (variation_id, stock_quantity, updated_at) VALUES ($1, 0, now())`,
		variationID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("variación %d: %w", variationID, domain.ErrVariationNotFound)
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// ListView inventario con variación y producto.
func (r *InventoryRepo) ListView(ctx context.Context) ([]*entity.InventoryView, error) {
	query := `
		SELECT i.variation_id, p.product_id, p.name, pv.sku, pv.type, pv.value,
		       pv.unit_price, i.stock_quantity, p.status, i.updated_at
		FROM inventory i
		JOIN product_variation pv ON i.variation_id = pv.variation_id
		JOIN product p ON pv.product_id = p.product_id
		ORDER BY p.name, pv.variation_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.InventoryView, 0)
	for rows.Next() {
		var v entity.InventoryView
		if err := rows.Scan(&v.VariationID, &v.ProductID, &v.ProductName, &v.SKU, &v.Type, &v.Value,
			&v.UnitPrice, &v.StockQuantity, &v.ProductStatus, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
