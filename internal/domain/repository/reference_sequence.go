package repository

import "context"

// ReferenceSequence contador durable, estrictamente creciente y seguro en concurrencia
// (secuencia nativa de la base de datos) para números de referencia generados.
type ReferenceSequence interface {
	NextStockOut(ctx context.Context) (int64, error)
	NextStockIn(ctx context.Context) (int64, error)
}
