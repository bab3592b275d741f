package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

// StockOutRepo implementación de StockOutRepository sobre PostgreSQL (usable con pool o tx).
type StockOutRepo struct {
	q Querier
}

// NewStockOutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOutRepository(q Querier) *StockOutRepo {
	return &StockOutRepo{q: q}
}

// Create inserta la cabecera y asigna StockOutID desde RETURNING.
func (r *StockOutRepo) Create(ctx context.Context, so *entity.StockOut) error {
	query := `
		INSERT INTO stock_out (reference_number, stock_out_date, order_transaction_id, employee_id)
		VALUES ($1, $2, $3, $4)
		RETURNING stock_out_id`
	err := r.q.QueryRow(ctx, query, so.ReferenceNumber, so.StockOutDate, so.OrderTransactionID, so.EmployeeID).
		Scan(&so.StockOutID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert stock_out: %w: %v", domain.ErrEmployeeNotFound, err)
		}
		return fmt.Errorf("insert stock_out: %w", err)
	}
	return nil
}

// CreateItem inserta un ítem de la salida.
func (r *StockOutRepo) CreateItem(ctx context.Context, item *entity.StockOutItem) error {
	query := `
		INSERT INTO stock_out_items (stock_out_id, variation_id, quantity, reason)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, item.StockOutID, item.VariationID, item.Quantity, item.Reason)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert stock_out_items: %w: %v", domain.ErrVariationNotFound, err)
		}
		return fmt.Errorf("insert stock_out_items: %w", err)
	}
	return nil
}

const stockOutMovementSelect = `
	SELECT
		so.stock_out_id,
		so.reference_number,
		so.employee_id,
		to_char(so.stock_out_date, 'MM-DD-YYYY, HH:MI AM') AS stock_out_date,
		soi.variation_id,
		soi.quantity,
		COALESCE(soi.reason, ''),
		pv.type,
		pv.value,
		pv.sku,
		p.name,
		e.first_name || ' ' || e.last_name AS employee_name
	FROM stock_out so
	JOIN stock_out_items soi ON so.stock_out_id = soi.stock_out_id
	JOIN product_variation pv ON soi.variation_id = pv.variation_id
	JOIN product p ON pv.product_id = p.product_id
	JOIN employee e ON so.employee_id = e.employee_id`

// ListMovements historial completo de salidas, más recientes primero.
func (r *StockOutRepo) ListMovements(ctx context.Context) ([]*entity.StockOutMovement, error) {
	query := stockOutMovementSelect + `
	ORDER BY so.stock_out_date DESC, so.stock_out_id DESC, soi.stock_out_item_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock_out: %w", err)
	}
	return collectStockOutMovements(rows)
}

// ListMovementsByID filas del historial de una sola salida, en orden de inserción.
func (r *StockOutRepo) ListMovementsByID(ctx context.Context, stockOutID int64) ([]*entity.StockOutMovement, error) {
	query := stockOutMovementSelect + `
	WHERE so.stock_out_id = $1
	ORDER BY soi.stock_out_item_id`
	rows, err := r.q.Query(ctx, query, stockOutID)
	if err != nil {
		return nil, fmt.Errorf("list stock_out %d: %w", stockOutID, err)
	}
	return collectStockOutMovements(rows)
}

func collectStockOutMovements(rows pgx.Rows) ([]*entity.StockOutMovement, error) {
	defer rows.Close()
	out := make([]*entity.StockOutMovement, 0)
	for rows.Next() {
		var m entity.StockOutMovement
		if err := rows.Scan(
			&m.StockOutID, &m.ReferenceNumber, &m.EmployeeID, &m.StockOutDate,
			&m.VariationID, &m.Quantity, &m.Reason,
			&m.Type, &m.Value, &m.SKU, &m.Name, &m.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("scan stock_out movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// GetByID filas crudas de una salida; slice vacío si el id no existe.
func (r *StockOutRepo) GetByID(ctx context.Context, stockOutID int64) ([]*entity.StockOutRecord, error) {
	query := `
		SELECT so.stock_out_id, so.reference_number, so.stock_out_date,
		       soi.variation_id, soi.quantity, COALESCE(soi.reason, '')
		FROM stock_out so
		JOIN stock_out_items soi ON so.stock_out_id = soi.stock_out_id
		WHERE so.stock_out_id = $1
		ORDER BY soi.stock_out_item_id`
	rows, err := r.q.Query(ctx, query, stockOutID)
	if err != nil {
		return nil, fmt.Errorf("get stock_out %d: %w", stockOutID, err)
	}
	defer rows.Close()
	out := make([]*entity.StockOutRecord, 0)
	for rows.Next() {
		var rec entity.StockOutRecord
		if err := rows.Scan(&rec.StockOutID, &rec.ReferenceNumber, &rec.StockOutDate,
			&rec.VariationID, &rec.Quantity, &rec.Reason); err != nil {
			return nil, fmt.Errorf("scan stock_out record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
