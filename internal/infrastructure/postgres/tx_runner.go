package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner      = (*TxRunner)(nil)
	_ usecase.ProductTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunStockOut inicia una transacción con los repos de una salida y hace Commit o Rollback.
func (r *TxRunner) RunStockOut(ctx context.Context, fn func(
	stockOuts repository.StockOutRepository,
	ledger repository.InventoryRepository,
	orders repository.OrderTransactionRepository,
	seq repository.ReferenceSequence,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockOutRepository(tx), NewInventoryRepository(tx), NewOrderRepository(tx), NewReferenceSequence(tx))
	})
}

// RunStockIn inicia una transacción con los repos de una entrada y hace Commit o Rollback.
func (r *TxRunner) RunStockIn(ctx context.Context, fn func(
	stockIns repository.StockInRepository,
	ledger repository.InventoryRepository,
	seq repository.ReferenceSequence,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockInRepository(tx), NewInventoryRepository(tx), NewReferenceSequence(tx))
	})
}

// RunProduct da de alta un producto con sus variaciones y filas de inventario en una transacción.
func (r *TxRunner) RunProduct(ctx context.Context, fn func(
	products repository.ProductRepository,
	ledger repository.InventoryRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewInventoryRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
