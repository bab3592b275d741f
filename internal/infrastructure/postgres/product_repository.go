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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `product_id, name, description, category, status, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO product (name, description, category, status)
		VALUES ($1, $2, $3, 'active')
		RETURNING product_id, status, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, p.Name, p.Description, p.Category).
		Scan(&p.ProductID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) CreateVariation(ctx context.Context, v *entity.ProductVariation) error {
	query := `
		INSERT INTO product_variation (product_id, type, value, sku, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING variation_id`
	err := r.q.QueryRow(ctx, query, v.ProductID, v.Type, v.Value, v.SKU, v.UnitPrice).Scan(&v.VariationID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %q: %w", v.SKU, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %d: %w", v.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert product_variation: %w", err)
	}
	return nil
}

// Update no toca el estado; archivar va por SetStatus.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE product SET name = $2, description = $3, category = $4, updated_at = now()
		WHERE product_id = $1
		RETURNING status, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, p.ProductID, p.Name, p.Description, p.Category).
		Scan(&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("producto %d: %w", p.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) SetStatus(ctx context.Context, productID int64, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product SET status = $2, updated_at = now() WHERE product_id = $1`,
		productID, status)
	if err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", productID, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, productID int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE product_id = $1`, productID).
		Scan(&p.ProductID, &p.Name, &p.Description, &p.Category, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.attachVariations(ctx, map[int64]*entity.Product{p.ProductID: &p}, []int64{p.ProductID}); err != nil {
		return nil, err
	}
	return &p, nil
}

// List dos consultas: productos y variaciones.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM product ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	byID := make(map[int64]*entity.Product)
	ids := make([]int64, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Description, &p.Category, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
		byID[p.ProductID] = &p
		ids = append(ids, p.ProductID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.attachVariations(ctx, byID, ids); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) attachVariations(ctx context.Context, byID map[int64]*entity.Product, ids []int64) error {
	for _, p := range byID {
		p.Variations = []entity.ProductVariation{}
	}
	rows, err := r.q.Query(ctx, `
		SELECT variation_id, product_id, type, value, sku, unit_price
		FROM product_variation
		WHERE product_id = ANY($1)
		ORDER BY product_id, variation_id`, ids)
	if err != nil {
		return fmt.Errorf("list product variations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v entity.ProductVariation
		if err := rows.Scan(&v.VariationID, &v.ProductID, &v.Type, &v.Value, &v.SKU, &v.UnitPrice); err != nil {
			return fmt.Errorf("scan product variation: %w", err)
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variations = append(p.Variations, v)
		}
	}
	return rows.Err()
}
