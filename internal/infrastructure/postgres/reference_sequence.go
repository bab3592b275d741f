package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ReferenceSequence = (*ReferenceSequenceRepo)(nil)

// ReferenceSequenceRepo secuencias nativas de PostgreSQL. nextval no se revierte con la transacción.
type ReferenceSequenceRepo struct {
	q Querier
}

// NewReferenceSequence construye el adaptador.
func NewReferenceSequence(q Querier) *ReferenceSequenceRepo {
	return &ReferenceSequenceRepo{q: q}
}

func (r *ReferenceSequenceRepo) NextStockOut(ctx context.Context) (int64, error) {
	return r.next(ctx, "stock_out_ref_num_seq")
}

func (r *ReferenceSequenceRepo) NextStockIn(ctx context.Context) (int64, error) {
	return r.next(ctx, "stock_in_ref_num_seq")
}

func (r *ReferenceSequenceRepo) next(ctx context.Context, seq string) (int64, error) {
	var v int64
	if err := r.q.QueryRow(ctx, `SELECT nextval($1::regclass)`, seq).Scan(&v); err != nil {
		return 0, fmt.Errorf("nextval %s: %w", seq, err)
	}
	return v, nil
}
