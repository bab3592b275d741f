package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// StockOutPDFUseCase genera el comprobante PDF de una salida de inventario.
type StockOutPDFUseCase struct {
	stockOuts repository.StockOutRepository
	generator StockOutPDFGenerator
}

// NewStockOutPDFUseCase construye el caso de uso.
func NewStockOutPDFUseCase(stockOuts repository.StockOutRepository, generator StockOutPDFGenerator) *StockOutPDFUseCase {
	return &StockOutPDFUseCase{stockOuts: stockOuts, generator: generator}
}

// DownloadStockOutPDF devuelve (pdfBytes, filename, nil), o domain.ErrNotFound si la salida no tiene ítems.
func (uc *StockOutPDFUseCase) DownloadStockOutPDF(ctx context.Context, stockOutID int64) ([]byte, string, error) {
	rows, err := uc.stockOuts.ListMovementsByID(ctx, stockOutID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener salida: %w", err)
	}
	if len(rows) == 0 {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err := uc.generator.GenerateStockOutPDF(ctx, rows)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("salida_%s.pdf", rows[0].ReferenceNumber), nil
}
