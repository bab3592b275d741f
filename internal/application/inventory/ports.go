package inventory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	RunStockOut(ctx context.Context, fn func(
		stockOuts repository.StockOutRepository,
		ledger repository.InventoryRepository,
		orders repository.OrderTransactionRepository,
		seq repository.ReferenceSequence,
	) error) error

	RunStockIn(ctx context.Context, fn func(
		stockIns repository.StockInRepository,
		ledger repository.InventoryRepository,
		seq repository.ReferenceSequence,
	) error) error
}

// StockOutListCache cache del historial de salidas. Una implementación sin backend
// devuelve siempre miss.
//
// La generación permite descartar listas leídas antes de una invalidación: el lector
// toma Generation antes de consultar la BD y Set solo escribe si no cambió.
type StockOutListCache interface {
	// Get devuelve (nil, false, nil) en miss.
	Get(ctx context.Context) ([]*entity.StockOutMovement, bool, error)
	Generation(ctx context.Context) (int64, error)
	// Set guarda rows solo si la generación actual sigue siendo gen.
	Set(ctx context.Context, gen int64, rows []*entity.StockOutMovement) error
	// Invalidate incrementa la generación y borra la lista.
	Invalidate(ctx context.Context) error
}

// NoopStockOutListCache se usa cuando no hay Redis configurado: siempre miss.
type NoopStockOutListCache struct{}

func (NoopStockOutListCache) Get(context.Context) ([]*entity.StockOutMovement, bool, error) {
	return nil, false, nil
}
func (NoopStockOutListCache) Generation(context.Context) (int64, error) { return 0, nil }
func (NoopStockOutListCache) Set(context.Context, int64, []*entity.StockOutMovement) error {
	return nil
}
func (NoopStockOutListCache) Invalidate(context.Context) error { return nil }

// StockOutPDFGenerator genera el comprobante de una salida.
type StockOutPDFGenerator interface {
	GenerateStockOutPDF(ctx context.Context, rows []*entity.StockOutMovement) ([]byte, error)
}
