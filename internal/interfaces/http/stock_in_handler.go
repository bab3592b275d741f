package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// stockInService lo implementa *inventory.StockInUseCase.
type stockInService interface {
	CreateStockInFromRequest(ctx context.Context, req dto.CreateStockInRequest) (*dto.StockInCreatedResponse, error)
	ListStockIns(ctx context.Context) ([]dto.StockInMovementResponse, error)
}

// StockInHandler entradas de inventario (protegido).
type StockInHandler struct {
	uc  stockInService
	loc *time.Location
}

// NewStockInHandler construye el handler. loc interpreta fechas enviadas sin zona.
func NewStockInHandler(uc stockInService, loc *time.Location) *StockInHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &StockInHandler{uc: uc, loc: loc}
}

// Create godoc
// @Summary      Registrar entrada de inventario
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateStockInRequest  true  "stockInProducts, employee_id, reference_number (opcional), supplier"
// @Success      201   {object}  dto.StockInCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *StockInHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body", Error: err.Error()})
	}
	in.StockInDate.Localize(h.loc)
	if in.EmployeeID == 0 {
		in.EmployeeID = dto.FlexInt(GetEmployeeID(c))
	}
	out, err := h.uc.CreateStockInFromRequest(c.Context(), in)
	if err != nil {
		if errors.Is(err, inventory.ErrMissingRequiredFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Missing required fields"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		RequestLog(c).Error().Err(err).Msg("error during stock in")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error during stock in", Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de entradas
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockInMovementResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock-in [get]
func (h *StockInHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListStockIns(c.Context())
	if err != nil {
		RequestLog(c).Error().Err(err).Msg("error during get all stock in")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error during get all stock in", Error: err.Error()})
	}
	return c.JSON(list)
}
