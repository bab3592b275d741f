package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

// StockInRepo implementación de StockInRepository sobre PostgreSQL.
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

// Create inserta la cabecera y asigna StockInID.
func (r *StockInRepo) Create(ctx context.Context, si *entity.StockIn) error {
	query := `
		INSERT INTO stock_in (reference_number, supplier, stock_in_date, employee_id)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING stock_in_id`
	err := r.q.QueryRow(ctx, query, si.ReferenceNumber, si.Supplier, si.StockInDate, si.EmployeeID).Scan(&si.StockInID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert stock_in: %w: %v", domain.ErrEmployeeNotFound, err)
		}
		return fmt.Errorf("insert stock_in: %w", err)
	}
	return nil
}

// CreateItem inserta un ítem de la entrada.
func (r *StockInRepo) CreateItem(ctx context.Context, item *entity.StockInItem) error {
	query := `
		INSERT INTO stock_in_items (stock_in_id, variation_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, item.StockInID, item.VariationID, item.Quantity, item.UnitCost)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert stock_in_items: %w: %v", domain.ErrVariationNotFound, err)
		}
		return fmt.Errorf("insert stock_in_items: %w", err)
	}
	return nil
}

// ListMovements historial de entradas, más recientes primero.
func (r *StockInRepo) ListMovements(ctx context.Context) ([]*entity.StockInMovement, error) {
	query := `
		SELECT
			si.stock_in_id,
			si.reference_number,
			COALESCE(si.supplier, ''),
			si.employee_id,
			to_char(si.stock_in_date, 'MM-DD-YYYY, HH:MI AM') AS stock_in_date,
			sii.variation_id,
			sii.quantity,
			sii.unit_cost,
			pv.type,
			pv.value,
			pv.sku,
			p.name,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM stock_in si
		JOIN stock_in_items sii ON si.stock_in_id = sii.stock_in_id
		JOIN product_variation pv ON sii.variation_id = pv.variation_id
		JOIN product p ON pv.product_id = p.product_id
		JOIN employee e ON si.employee_id = e.employee_id
		ORDER BY si.stock_in_date DESC, si.stock_in_id DESC, sii.stock_in_item_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock_in: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.StockInMovement, 0)
	for rows.Next() {
		var m entity.StockInMovement
		if err := rows.Scan(
			&m.StockInID, &m.ReferenceNumber, &m.Supplier, &m.EmployeeID, &m.StockInDate,
			&m.VariationID, &m.Quantity, &m.UnitCost,
			&m.Type, &m.Value, &m.SKU, &m.Name, &m.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("scan stock_in movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
