package inventory_test

import (
	"cmp"
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// state datos en memoria; el fakeTx trabaja sobre una copia y la publica solo en commit.
type state struct {
	inventory  map[int64]int
	stockOuts  []entity.StockOut
	outItems   []entity.StockOutItem
	stockIns   []entity.StockIn
	inItems    []entity.StockInItem
	nextOutID  int64
	nextInID   int64
	failOnItem int64 // variación cuyo ítem falla al insertarse
}

func (s *state) clone() *state {
	c := *s
	c.inventory = maps.Clone(s.inventory)
	c.stockOuts = slices.Clone(s.stockOuts)
	c.outItems = slices.Clone(s.outItems)
	c.stockIns = slices.Clone(s.stockIns)
	c.inItems = slices.Clone(s.inItems)
	return &c
}

type fakeDB struct {
	mu        sync.Mutex
	st        *state
	orderRefs map[int64]string
	// las secuencias no participan del rollback, igual que en PostgreSQL
	seqOut, seqIn int64
	txCalls       int
}

func newFakeDB(stock map[int64]int) *fakeDB {
	return &fakeDB{st: &state{inventory: stock}, orderRefs: map[int64]string{}}
}

func (db *fakeDB) RunStockOut(ctx context.Context, fn func(
	repository.StockOutRepository,
	repository.InventoryRepository,
	repository.OrderTransactionRepository,
	repository.ReferenceSequence,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.txCalls++
	work := db.st.clone()
	if err := fn(&stockOutRepo{st: work}, &ledgerRepo{st: work}, orderRepo{refs: db.orderRefs}, &sequence{db: db}); err != nil {
		return err
	}
	db.st = work
	return nil
}

func (db *fakeDB) RunStockIn(ctx context.Context, fn func(
	repository.StockInRepository,
	repository.InventoryRepository,
	repository.ReferenceSequence,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.txCalls++
	work := db.st.clone()
	if err := fn(&stockInRepo{st: work}, &ledgerRepo{st: work}, &sequence{db: db}); err != nil {
		return err
	}
	db.st = work
	return nil
}

// readRepo repositorio de lectura fuera de transacción: siempre ve el último estado confirmado.
type readRepo struct {
	db        *fakeDB
	listCalls int
	// afterList corre después de tomar la foto del historial, ya sin el lock.
	afterList func()
}

func (r *readRepo) committed() *stockOutRepo {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return &stockOutRepo{st: r.db.st}
}

func (r *readRepo) Create(context.Context, *entity.StockOut) error { return errors.New("solo lectura") }
func (r *readRepo) CreateItem(context.Context, *entity.StockOutItem) error {
	return errors.New("solo lectura")
}

func (r *readRepo) ListMovements(ctx context.Context) ([]*entity.StockOutMovement, error) {
	r.listCalls++
	rows, err := r.committed().ListMovements(ctx)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return rows, err
}

func (r *readRepo) ListMovementsByID(ctx context.Context, id int64) ([]*entity.StockOutMovement, error) {
	return r.committed().ListMovementsByID(ctx, id)
}

func (r *readRepo) GetByID(ctx context.Context, id int64) ([]*entity.StockOutRecord, error) {
	return r.committed().GetByID(ctx, id)
}

type stockOutRepo struct{ st *state }

func (r *stockOutRepo) Create(_ context.Context, so *entity.StockOut) error {
	r.st.nextOutID++
	so.StockOutID = r.st.nextOutID
	r.st.stockOuts = append(r.st.stockOuts, *so)
	return nil
}

func (r *stockOutRepo) CreateItem(_ context.Context, item *entity.StockOutItem) error {
	if r.st.failOnItem != 0 && item.VariationID == r.st.failOnItem {
		return errors.New("violación de llave foránea")
	}
	r.st.outItems = append(r.st.outItems, *item)
	return nil
}

// ListMovements ordena como la consulta real: fecha de la cabecera desc, luego stock_out_id desc;
// los ítems de una misma salida conservan su orden de inserción.
func (r *stockOutRepo) ListMovements(context.Context) ([]*entity.StockOutMovement, error) {
	items := slices.Clone(r.st.outItems)
	slices.SortStableFunc(items, func(a, b entity.StockOutItem) int {
		if c := r.header(b.StockOutID).StockOutDate.Compare(r.header(a.StockOutID).StockOutDate); c != 0 {
			return c
		}
		return cmp.Compare(b.StockOutID, a.StockOutID)
	})
	var out []*entity.StockOutMovement
	for _, it := range items {
		out = append(out, r.movement(it))
	}
	return out, nil
}

func (r *stockOutRepo) ListMovementsByID(_ context.Context, id int64) ([]*entity.StockOutMovement, error) {
	var out []*entity.StockOutMovement
	for _, it := range r.st.outItems {
		if it.StockOutID == id {
			out = append(out, r.movement(it))
		}
	}
	return out, nil
}

func (r *stockOutRepo) GetByID(_ context.Context, id int64) ([]*entity.StockOutRecord, error) {
	var out []*entity.StockOutRecord
	for _, it := range r.st.outItems {
		if it.StockOutID != id {
			continue
		}
		h := r.header(id)
		out = append(out, &entity.StockOutRecord{
			StockOutID:      id,
			ReferenceNumber: h.ReferenceNumber,
			StockOutDate:    h.StockOutDate,
			VariationID:     it.VariationID,
			Quantity:        it.Quantity,
			Reason:          it.Reason,
		})
	}
	return out, nil
}

func (r *stockOutRepo) header(id int64) entity.StockOut {
	for _, h := range r.st.stockOuts {
		if h.StockOutID == id {
			return h
		}
	}
	return entity.StockOut{}
}

func (r *stockOutRepo) movement(it entity.StockOutItem) *entity.StockOutMovement {
	h := r.header(it.StockOutID)
	return &entity.StockOutMovement{
		StockOutID:      it.StockOutID,
		ReferenceNumber: h.ReferenceNumber,
		EmployeeID:      h.EmployeeID,
		StockOutDate:    h.StockOutDate.Format("01-02-2006, 03:04 PM"),
		VariationID:     it.VariationID,
		Quantity:        it.Quantity,
		Reason:          it.Reason,
	}
}

type stockInRepo struct{ st *state }

func (r *stockInRepo) Create(_ context.Context, si *entity.StockIn) error {
	r.st.nextInID++
	si.StockInID = r.st.nextInID
	r.st.stockIns = append(r.st.stockIns, *si)
	return nil
}

func (r *stockInRepo) CreateItem(_ context.Context, item *entity.StockInItem) error {
	r.st.inItems = append(r.st.inItems, *item)
	return nil
}

func (r *stockInRepo) ListMovements(context.Context) ([]*entity.StockInMovement, error) {
	var out []*entity.StockInMovement
	for _, it := range r.st.inItems {
		out = append(out, &entity.StockInMovement{StockInID: it.StockInID, VariationID: it.VariationID, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}
	return out, nil
}

type ledgerRepo struct{ st *state }

func (r *ledgerRepo) Adjust(_ context.Context, variationID int64, delta int) (int, error) {
	qty, ok := r.st.inventory[variationID]
	if !ok {
		return 0, domain.ErrVariationNotFound
	}
	qty += delta
	r.st.inventory[variationID] = qty
	return qty, nil
}

func (r *ledgerRepo) ListView(context.Context) ([]*entity.InventoryView, error) { return nil, nil }

func (r *ledgerRepo) Open(_ context.Context, variationID int64) error {
	r.st.inventory[variationID] = 0
	return nil
}

type orderRepo struct{ refs map[int64]string }

func (r orderRepo) GetReferenceNumber(_ context.Context, id int64) (string, error) {
	ref, ok := r.refs[id]
	if !ok {
		return "", domain.ErrOrderTransactionNotFound
	}
	return ref, nil
}

type sequence struct{ db *fakeDB }

func (s *sequence) NextStockOut(context.Context) (int64, error) {
	s.db.seqOut++
	return s.db.seqOut, nil
}

func (s *sequence) NextStockIn(context.Context) (int64, error) {
	s.db.seqIn++
	return s.db.seqIn, nil
}

type fakeCache struct {
	rows        []*entity.StockOutMovement
	hit         bool
	gen         int64
	invalidated int
	// failInvalidate cantidad de llamadas a Invalidate que fallan antes de funcionar
	failInvalidate int
}

func (c *fakeCache) Get(context.Context) ([]*entity.StockOutMovement, bool, error) {
	return c.rows, c.hit, nil
}

func (c *fakeCache) Generation(context.Context) (int64, error) { return c.gen, nil }

func (c *fakeCache) Set(_ context.Context, gen int64, rows []*entity.StockOutMovement) error {
	if gen != c.gen {
		return nil
	}
	c.rows, c.hit = rows, true
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	if c.failInvalidate > 0 {
		c.failInvalidate--
		return errors.New("redis: connection refused")
	}
	c.gen++
	c.rows, c.hit = nil, false
	c.invalidated++
	return nil
}

type fakePDF struct{ rows []*entity.StockOutMovement }

func (g *fakePDF) GenerateStockOutPDF(_ context.Context, rows []*entity.StockOutMovement) ([]byte, error) {
	g.rows = rows
	return []byte("%PDF-1.3"), nil
}
