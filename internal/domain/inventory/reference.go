package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Prefijos de números de referencia generados.
const (
	AdjustmentPrefix = "ADJ" // salida manual (sin orden)
	StockInPrefix    = "IN"  // entrada sin referencia del proveedor
)

// ReferenceLookup obtiene el reference_number de una transacción de orden existente.
type ReferenceLookup func(ctx context.Context, orderTransactionID int64) (string, error)

// SequenceFunc devuelve el siguiente valor de la secuencia compartida.
type SequenceFunc func(ctx context.Context) (int64, error)

// FormatReference arma "<prefijo>-<YYYYMMDD UTC>-<seq>" truncado a la longitud de la columna.
func FormatReference(prefix string, now time.Time, seq int64) string {
	return TruncateReference(fmt.Sprintf("%s-%s-%d", prefix, now.UTC().Format("20060102"), seq))
}

// TruncateReference corta s a entity.ReferenceNumberMaxLen bytes.
func TruncateReference(s string) string {
	if len(s) > entity.ReferenceNumberMaxLen {
		return s[:entity.ReferenceNumberMaxLen]
	}
	return s
}

// ResolveReferenceNumber decide el número de referencia de una salida:
//  1. con orden vinculada, se reutiliza tal cual el reference_number de la orden;
//  2. sin orden, se genera ADJ-<fecha UTC>-<siguiente valor de la secuencia>.
func ResolveReferenceNumber(
	ctx context.Context,
	orderTransactionID *int64,
	lookup ReferenceLookup,
	next SequenceFunc,
	now time.Time,
) (string, error) {
	if orderTransactionID != nil {
		ref, err := lookup(ctx, *orderTransactionID)
		if err != nil {
			return "", err
		}
		return ref, nil
	}
	seq, err := next(ctx)
	if err != nil {
		return "", fmt.Errorf("siguiente valor de secuencia: %w", err)
	}
	return FormatReference(AdjustmentPrefix, now, seq), nil
}

// ResolveStockInReference usa el número del documento del proveedor si viene informado;
// si no, genera IN-<fecha UTC>-<siguiente valor de la secuencia de entradas>.
func ResolveStockInReference(ctx context.Context, supplied string, next SequenceFunc, now time.Time) (string, error) {
	if s := strings.TrimSpace(supplied); s != "" {
		return TruncateReference(s), nil
	}
	seq, err := next(ctx)
	if err != nil {
		return "", fmt.Errorf("siguiente valor de secuencia: %w", err)
	}
	return FormatReference(StockInPrefix, now, seq), nil
}
