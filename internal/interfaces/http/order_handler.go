package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/listing"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// orderService lo implementa *usecase.OrderUseCase.
type orderService interface {
	List(ctx context.Context) ([]dto.OrderResponse, error)
	Browse(ctx context.Context, q listing.Query) (*dto.ListingResponse[dto.OrderResponse], error)
	UpdatePaymentStatus(ctx context.Context, orderID int64, status string) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
	Statuses() dto.OrderStatusesResponse
}

// OrderHandler pedidos con sus ítems y cambio de estados (protegido).
type OrderHandler struct {
	uc  orderService
	loc *time.Location
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc orderService, loc *time.Location) *OrderHandler {
	return &OrderHandler{uc: uc, loc: loc}
}

// List godoc
// @Summary      Pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        search          query     string  false  "id de pedido o cliente"
// @Param        start_date      query     string  false  "YYYY-MM-DD"
// @Param        end_date        query     string  false  "YYYY-MM-DD"
// @Param        order_status    query     string  false  "estado del pedido"
// @Param        payment_status  query     string  false  "estado del pago"
// @Param        sort            query     string  false  "campo de orden"
// @Param        order           query     string  false  "asc | desc"
// @Param        page            query     int     false  "página (1..)"
// @Success      200  {object}  dto.ListingResponse[dto.OrderResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	q, paged, err := parseListingQuery(c, usecase.OrderFilters, h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if !paged {
		list, err := h.uc.List(c.Context())
		if err != nil {
			RequestLog(c).Error().Err(err).Msg("listar pedidos")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error fetching orders", Error: err.Error()})
		}
		return c.JSON(list)
	}
	page, err := h.uc.Browse(c.Context(), q)
	if err != nil {
		RequestLog(c).Error().Err(err).Msg("listar pedidos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error fetching orders", Error: err.Error()})
	}
	return c.JSON(page)
}

// Statuses godoc
// @Summary      Estados asignables de pago y pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderStatusesResponse
// @Router       /api/orders/statuses [get]
func (h *OrderHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(h.uc.Statuses())
}

// UpdatePaymentStatus godoc
// @Summary      Cambiar estado de pago
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "order_id"
// @Param        body  body      dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payment-status [put]
func (h *OrderHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	return h.updateStatus(c, h.uc.UpdatePaymentStatus, "Payment status updated successfully")
}

// UpdateOrderStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "order_id"
// @Param        body  body      dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/order-status [put]
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	return h.updateStatus(c, h.uc.UpdateOrderStatus, "Order status updated successfully")
}

func (h *OrderHandler) updateStatus(c *fiber.Ctx, update func(context.Context, int64, string) error, ok string) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body", Error: err.Error()})
	}
	if err := update(c.Context(), id, in.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Order not found"})
		}
		RequestLog(c).Error().Err(err).Int64("order_id", id).Msg("actualizar estado de pedido")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Error updating order", Error: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: ok})
}
