package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/listing"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// inventoryService lo implementa *usecase.InventoryUseCase.
type inventoryService interface {
	List(ctx context.Context) ([]dto.InventoryResponse, error)
	Browse(ctx context.Context, q listing.Query) (*dto.ListingResponse[dto.InventoryResponse], error)
}

// InventoryHandler listado de existencias por variación (protegido).
type InventoryHandler struct {
	uc  inventoryService
	loc *time.Location
}

// NewInventoryHandler construye el handler; loc es la zona para start_date/end_date.
func NewInventoryHandler(uc inventoryService, loc *time.Location) *InventoryHandler {
	return &InventoryHandler{uc: uc, loc: loc}
}

// List godoc
// @Summary      Inventario
// @Description  Sin "page" devuelve el arreglo completo; con "page" aplica búsqueda, rango de fechas, filtros, orden y paginación de 10.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search          query     string  false  "búsqueda por sku, nombre, tipo o valor"
// @Param        start_date      query     string  false  "YYYY-MM-DD"
// @Param        end_date        query     string  false  "YYYY-MM-DD"
// @Param        product_status  query     string  false  "estado del producto"
// @Param        type            query     string  false  "tipo de variación"
// @Param        sort            query     string  false  "campo de orden"
// @Param        order           query     string  false  "asc | desc"
// @Param        page            query     int     false  "página (1..)"
// @Success      200  {object}  dto.ListingResponse[dto.InventoryResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	q, paged, err := parseListingQuery(c, usecase.InventoryFilters, h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if !paged {
		list, err := h.uc.List(c.Context())
		if err != nil {
			RequestLog(c).Error().Err(err).Msg("listar inventario")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error fetching inventory", Error: err.Error()})
		}
		return c.JSON(list)
	}
	page, err := h.uc.Browse(c.Context(), q)
	if err != nil {
		RequestLog(c).Error().Err(err).Msg("listar inventario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error fetching inventory", Error: err.Error()})
	}
	return c.JSON(page)
}
