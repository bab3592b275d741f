package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// StockInLine una variación recibida.
type StockInLine struct {
	VariationID int64
	Quantity    int
	UnitCost    decimal.Decimal
}

// StockInInput entrada para registrar una entrada de inventario.
type StockInInput struct {
	Products        []StockInLine
	ReferenceNumber string // vacío = se genera IN-...
	Supplier        string
	EmployeeID      int64
	StockInDate     time.Time
}

// StockInResult resultado de una entrada confirmada.
type StockInResult struct {
	StockInID       int64
	ReferenceNumber string
	StockInDate     time.Time
	TotalUnits      int
	TotalCost       decimal.Decimal
}

// StockInUseCase registra entradas de inventario y lee su historial.
type StockInUseCase struct {
	txRunner TxRunner
	stockIns repository.StockInRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewStockInUseCase construye el caso de uso.
func NewStockInUseCase(txRunner TxRunner, stockIns repository.StockInRepository, log *logger.Logger) *StockInUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockInUseCase{txRunner: txRunner, stockIns: stockIns, log: log, now: time.Now}
}

// CreateStockInFromRequest convierte el body HTTP y registra la entrada.
func (uc *StockInUseCase) CreateStockInFromRequest(ctx context.Context, req dto.CreateStockInRequest) (*dto.StockInCreatedResponse, error) {
	in := StockInInput{
		ReferenceNumber: req.ReferenceNumber,
		Supplier:        req.Supplier,
		EmployeeID:      int64(req.EmployeeID),
		StockInDate:     req.StockInDate.Time,
	}
	for _, p := range req.StockInProducts {
		in.Products = append(in.Products, StockInLine{
			VariationID: int64(p.VariationID),
			Quantity:    int(p.Quantity),
			UnitCost:    p.UnitCost,
		})
	}
	res, err := uc.CreateStockIn(ctx, in)
	if err != nil {
		return nil, err
	}
	return &dto.StockInCreatedResponse{
		Message:         "Stock In recorded successfully",
		StockInID:       res.StockInID,
		ReferenceNumber: res.ReferenceNumber,
		StockInDate:     res.StockInDate,
		TotalUnits:      res.TotalUnits,
		TotalCost:       res.TotalCost,
	}, nil
}

// CreateStockIn inserta cabecera e ítems y suma cada cantidad al inventario en una sola transacción.
func (uc *StockInUseCase) CreateStockIn(ctx context.Context, in StockInInput) (*StockInResult, error) {
	if err := validateStockIn(in); err != nil {
		return nil, err
	}
	date := in.StockInDate
	if date.IsZero() {
		date = uc.now()
	}

	var header entity.StockIn
	err := uc.txRunner.RunStockIn(ctx, func(
		stockIns repository.StockInRepository,
		ledger repository.InventoryRepository,
		seq repository.ReferenceSequence,
	) error {
		ref, err := inventory.ResolveStockInReference(ctx, in.ReferenceNumber, seq.NextStockIn, uc.now())
		if err != nil {
			return err
		}
		header = entity.StockIn{
			ReferenceNumber: ref,
			Supplier:        in.Supplier,
			StockInDate:     date,
			EmployeeID:      in.EmployeeID,
		}
		if err := stockIns.Create(ctx, &header); err != nil {
			return fmt.Errorf("crear cabecera de entrada: %w", err)
		}
		for _, line := range in.Products {
			item := &entity.StockInItem{
				StockInID:   header.StockInID,
				VariationID: line.VariationID,
				Quantity:    line.Quantity,
				UnitCost:    line.UnitCost,
			}
			if err := stockIns.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("crear ítem de entrada (variación %d): %w", line.VariationID, err)
			}
			if _, err := ledger.Adjust(ctx, line.VariationID, line.Quantity); err != nil {
				return fmt.Errorf("sumar inventario (variación %d): %w", line.VariationID, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("employee_id", in.EmployeeID).Msg("entrada de inventario revertida")
		return nil, err
	}

	costLines := make([]inventory.CostLine, 0, len(in.Products))
	for _, line := range in.Products {
		costLines = append(costLines, inventory.CostLine{VariationID: line.VariationID, Quantity: line.Quantity, UnitCost: line.UnitCost})
	}
	cost := inventory.SummarizeStockInCost(costLines)

	uc.log.Info().
		Int64("stock_in_id", header.StockInID).
		Str("reference_number", header.ReferenceNumber).
		Int("items", len(in.Products)).
		Int("units", cost.TotalUnits).
		Str("total_cost", cost.TotalCost.StringFixed(2)).
		Msg("entrada de inventario registrada")

	return &StockInResult{
		StockInID:       header.StockInID,
		ReferenceNumber: header.ReferenceNumber,
		StockInDate:     uc.now().UTC(),
		TotalUnits:      cost.TotalUnits,
		TotalCost:       cost.TotalCost,
	}, nil
}

func validateStockIn(in StockInInput) error {
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
		if line.UnitCost.IsNegative() {
			return fmt.Errorf("%w: producto %d con costo unitario negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// ListStockIns devuelve el historial de entradas, más recientes primero.
func (uc *StockInUseCase) ListStockIns(ctx context.Context) ([]dto.StockInMovementResponse, error) {
	rows, err := uc.stockIns.ListMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar entradas: %w", err)
	}
	out := make([]dto.StockInMovementResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockInMovementResponse{
			StockInID:       r.StockInID,
			ReferenceNumber: r.ReferenceNumber,
			Supplier:        r.Supplier,
			EmployeeID:      r.EmployeeID,
			StockInDate:     r.StockInDate,
			VariationID:     r.VariationID,
			Quantity:        r.Quantity,
			UnitCost:        r.UnitCost,
			Type:            r.Type,
			Value:           r.Value,
			SKU:             r.SKU,
			Name:            r.Name,
			EmployeeName:    r.EmployeeName,
		})
	}
	return out, nil
}
