package http

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// stockOutService lo implementa *inventory.StockOutUseCase.
type stockOutService interface {
	CreateStockOutFromRequest(ctx context.Context, req dto.CreateStockOutRequest) (*dto.StockOutCreatedResponse, error)
	ListStockOuts(ctx context.Context) ([]dto.StockOutMovementResponse, error)
	GetStockOut(ctx context.Context, stockOutID int64) ([]dto.StockOutRecordResponse, error)
}

// stockOutPDFService lo implementa *inventory.StockOutPDFUseCase.
type stockOutPDFService interface {
	DownloadStockOutPDF(ctx context.Context, stockOutID int64) ([]byte, string, error)
}

// StockOutHandler salidas de inventario (protegido).
type StockOutHandler struct {
	uc  stockOutService
	pdf stockOutPDFService
	loc *time.Location
}

// NewStockOutHandler construye el handler. loc interpreta fechas enviadas sin zona.
func NewStockOutHandler(uc stockOutService, pdf stockOutPDFService, loc *time.Location) *StockOutHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &StockOutHandler{uc: uc, pdf: pdf, loc: loc}
}

// Create godoc
// @Summary      Registrar salida de inventario
// @Description  Inserta cabecera e ítems y descuenta el inventario en una sola transacción.
// @Tags         stock-out
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateStockOutRequest  true  "stockOutProducts, employee_id, stock_out_date, order_transaction_id (opcional)"
// @Success      201   {object}  dto.StockOutCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock-out [post]
func (h *StockOutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body", Error: err.Error()})
	}
	in.StockOutDate.Localize(h.loc)
	if len(in.StockOutProducts) == 0 || in.EmployeeID == 0 || in.StockOutDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Missing required fields"})
	}
	out, err := h.uc.CreateStockOutFromRequest(c.Context(), in)
	if err != nil {
		if errors.Is(err, inventory.ErrMissingRequiredFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Missing required fields"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		RequestLog(c).Error().Err(err).Msg("error during stock out")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error during stock out", Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de salidas
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockOutMovementResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock-out [get]
func (h *StockOutHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListStockOuts(c.Context())
	if err != nil {
		RequestLog(c).Error().Err(err).Msg("error during get all stock out")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error during get all stock out", Error: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Ítems de una salida
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "stock_out_id"
// @Success      200  {array}   dto.StockOutRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [get]
func (h *StockOutHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	rows, err := h.uc.GetStockOut(c.Context(), id)
	if err != nil {
		RequestLog(c).Error().Err(err).Int64("stock_out_id", id).Msg("error during fetching stock out data")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error during fetching stock out data", Error: err.Error()})
	}
	return c.JSON(rows)
}

// DownloadPDF godoc
// @Summary      Comprobante PDF de una salida
// @Tags         stock-out
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path      int  true  "stock_out_id"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id}/pdf [get]
func (h *StockOutHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pdfBytes, filename, err := h.pdf.DownloadStockOutPDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "salida no encontrada"})
		}
		RequestLog(c).Error().Err(err).Int64("stock_out_id", id).Msg("pdf de salida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el PDF", Error: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q", c.Params("id"))
	}
	return id, nil
}
