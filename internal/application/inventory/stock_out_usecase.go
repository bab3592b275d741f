package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ErrMissingRequiredFields lote sin productos o sin empleado (o sin fecha en la API HTTP).
var ErrMissingRequiredFields = fmt.Errorf("%w: Missing required fields", domain.ErrInvalidInput)

// StockOutLine una variación a descontar.
type StockOutLine struct {
	VariationID int64
	Quantity    int
	Reason      string
}

// StockOutInput entrada para registrar una salida.
// Sin OrderTransactionID la salida es un ajuste manual y cada línea requiere motivo.
type StockOutInput struct {
	Products           []StockOutLine
	OrderTransactionID *int64
	EmployeeID         int64
	StockOutDate       time.Time // cero = ahora
}

// StockOutResult resultado de una salida confirmada.
type StockOutResult struct {
	StockOutID      int64
	ReferenceNumber string
	StockOutDate    time.Time // momento de confirmación, UTC
}

// StockOutUseCase registra salidas de inventario y lee su historial.
type StockOutUseCase struct {
	txRunner  TxRunner
	stockOuts repository.StockOutRepository
	cache     StockOutListCache
	log       *logger.Logger
	now       func() time.Time
}

// NewStockOutUseCase construye el caso de uso. cache y log pueden ser nil.
func NewStockOutUseCase(
	txRunner TxRunner,
	stockOuts repository.StockOutRepository,
	cache StockOutListCache,
	log *logger.Logger,
) *StockOutUseCase {
	if cache == nil {
		cache = NoopStockOutListCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockOutUseCase{
		txRunner:  txRunner,
		stockOuts: stockOuts,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// CreateStockOutFromRequest convierte el body HTTP y registra la salida.
func (uc *StockOutUseCase) CreateStockOutFromRequest(ctx context.Context, req dto.CreateStockOutRequest) (*dto.StockOutCreatedResponse, error) {
	in := StockOutInput{
		OrderTransactionID: req.OrderTransactionID.Ptr(),
		EmployeeID:         int64(req.EmployeeID),
		StockOutDate:       req.StockOutDate.Time,
	}
	for _, p := range req.StockOutProducts {
		in.Products = append(in.Products, StockOutLine{
			VariationID: int64(p.VariationID),
			Quantity:    int(p.Quantity),
			Reason:      strings.TrimSpace(p.Reason),
		})
	}
	res, err := uc.CreateStockOut(ctx, in)
	if err != nil {
		return nil, err
	}
	return &dto.StockOutCreatedResponse{
		Message:         "Stock Out recorded successfully",
		StockOutID:      res.StockOutID,
		ReferenceNumber: res.ReferenceNumber,
		StockOutDate:    res.StockOutDate,
	}, nil
}

// CreateStockOut valida el lote y, en una sola transacción, resuelve el número de referencia,
// inserta la cabecera, inserta cada ítem y descuenta su cantidad del inventario.
// Cualquier error revierte todo el lote.
func (uc *StockOutUseCase) CreateStockOut(ctx context.Context, in StockOutInput) (*StockOutResult, error) {
	if err := validateStockOut(in); err != nil {
		return nil, err
	}
	date := in.StockOutDate
	if date.IsZero() {
		date = uc.now()
	}

	var header entity.StockOut
	err := uc.txRunner.RunStockOut(ctx, func(
		stockOuts repository.StockOutRepository,
		ledger repository.InventoryRepository,
		orders repository.OrderTransactionRepository,
		seq repository.ReferenceSequence,
	) error {
		ref, err := inventory.ResolveReferenceNumber(ctx, in.OrderTransactionID, orders.GetReferenceNumber, seq.NextStockOut, uc.now())
		if err != nil {
			return err
		}
		header = entity.StockOut{
			ReferenceNumber:    ref,
			StockOutDate:       date,
			OrderTransactionID: in.OrderTransactionID,
			EmployeeID:         in.EmployeeID,
		}
		if err := stockOuts.Create(ctx, &header); err != nil {
			return fmt.Errorf("crear cabecera de salida: %w", err)
		}
		for _, line := range in.Products {
			item := &entity.StockOutItem{
				StockOutID:  header.StockOutID,
				VariationID: line.VariationID,
				Quantity:    line.Quantity,
				Reason:      line.Reason,
			}
			if err := stockOuts.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("crear ítem de salida (variación %d): %w", line.VariationID, err)
			}
			balance, err := ledger.Adjust(ctx, line.VariationID, -line.Quantity)
			if err != nil {
				return fmt.Errorf("descontar inventario (variación %d): %w", line.VariationID, err)
			}
			if balance < 0 {
				uc.log.Warn().
					Int64("variation_id", line.VariationID).
					Int("stock_quantity", balance).
					Str("reference_number", ref).
					Msg("inventario negativo tras salida")
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("employee_id", in.EmployeeID).Msg("salida de inventario revertida")
		return nil, err
	}

	uc.invalidateCache(ctx)
	uc.log.Info().
		Int64("stock_out_id", header.StockOutID).
		Str("reference_number", header.ReferenceNumber).
		Int("items", len(in.Products)).
		Msg("salida de inventario registrada")

	return &StockOutResult{
		StockOutID:      header.StockOutID,
		ReferenceNumber: header.ReferenceNumber,
		StockOutDate:    uc.now().UTC(),
	}, nil
}

func validateStockOut(in StockOutInput) error {
	if len(in.Products) == 0 || in.EmployeeID <= 0 {
		return ErrMissingRequiredFields
	}
	for i, line := range in.Products {
		if line.VariationID <= 0 {
			return fmt.Errorf("%w: producto %d sin variation_id", domain.ErrInvalidInput, i+1)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: producto %d con cantidad no positiva", domain.ErrInvalidInput, i+1)
		}
		if in.OrderTransactionID == nil && line.Reason == "" {
			return fmt.Errorf("%w: producto %d sin motivo de ajuste", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// ListStockOuts devuelve el historial de salidas, más recientes primero.
func (uc *StockOutUseCase) ListStockOuts(ctx context.Context) ([]dto.StockOutMovementResponse, error) {
	rows, hit, err := uc.cache.Get(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("cache de salidas no disponible")
	}
	if !hit {
		// la generación se lee antes de la consulta; una salida confirmada en medio
		// la incrementa y el Set de esta lectura se descarta.
		gen, genErr := uc.cache.Generation(ctx)
		rows, err = uc.stockOuts.ListMovements(ctx)
		if err != nil {
			return nil, fmt.Errorf("listar salidas: %w", err)
		}
		if genErr != nil {
			uc.log.Warn().Err(genErr).Msg("generación del cache de salidas no disponible")
		} else if err := uc.cache.Set(ctx, gen, rows); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el cache de salidas")
		}
	}
	out := make([]dto.StockOutMovementResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStockOutMovementResponse(r))
	}
	return out, nil
}

// invalidateCache reintenta una vez; si ambos intentos fallan la lista cacheada
// queda vigente hasta su TTL.
func (uc *StockOutUseCase) invalidateCache(ctx context.Context) {
	err := uc.cache.Invalidate(ctx)
	if err == nil {
		return
	}
	uc.log.Warn().Err(err).Msg("no se pudo invalidar el cache de salidas, reintentando")
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Error().Err(err).Msg("cache de salidas sin invalidar hasta su TTL")
	}
}

// GetStockOut devuelve las filas de una salida. Un id inexistente produce una lista vacía.
func (uc *StockOutUseCase) GetStockOut(ctx context.Context, stockOutID int64) ([]dto.StockOutRecordResponse, error) {
	rows, err := uc.stockOuts.GetByID(ctx, stockOutID)
	if err != nil {
		return nil, fmt.Errorf("obtener salida %d: %w", stockOutID, err)
	}
	out := make([]dto.StockOutRecordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockOutRecordResponse{
			StockOutID:      r.StockOutID,
			ReferenceNumber: r.ReferenceNumber,
			StockOutDate:    r.StockOutDate,
			VariationID:     r.VariationID,
			Quantity:        r.Quantity,
			Reason:          r.Reason,
		})
	}
	return out, nil
}

func toStockOutMovementResponse(r *entity.StockOutMovement) dto.StockOutMovementResponse {
	return dto.StockOutMovementResponse{
		StockOutID:      r.StockOutID,
		ReferenceNumber: r.ReferenceNumber,
		EmployeeID:      r.EmployeeID,
		StockOutDate:    r.StockOutDate,
		VariationID:     r.VariationID,
		Quantity:        r.Quantity,
		Reason:          r.Reason,
		Type:            r.Type,
		Value:           r.Value,
		SKU:             r.SKU,
		Name:            r.Name,
		EmployeeName:    r.EmployeeName,
	}
}
