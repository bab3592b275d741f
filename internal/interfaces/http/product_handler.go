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

// productService lo implementa *usecase.ProductUseCase.
type productService interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, productID int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Archive(ctx context.Context, productID int64) error
	GetByID(ctx context.Context, productID int64) (*dto.ProductResponse, error)
	List(ctx context.Context, showArchived bool) ([]dto.ProductResponse, error)
	Browse(ctx context.Context, q listing.Query, showArchived bool) (*dto.ListingResponse[dto.ProductResponse], error)
}

// ProductHandler catálogo de productos (protegido).
type ProductHandler struct {
	uc  productService
	loc *time.Location
}

// NewProductHandler construye el handler.
func NewProductHandler(uc productService, loc *time.Location) *ProductHandler {
	return &ProductHandler{uc: uc, loc: loc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Crea el producto, sus variaciones y su inventario en 0 en una transacción.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProductRequest  true  "name, description, category, variations"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body", Error: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "product_id"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "product_id"
// @Param        body  body      dto.UpdateProductRequest  true  "name, description, category"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body", Error: err.Error()})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "product_id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/archive [put]
func (h *ProductHandler) Archive(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.Archive(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Product archived successfully"})
}

// List godoc
// @Summary      Productos
// @Description  Los archivados se omiten salvo show_archived=true o filtro de status.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search         query     string  false  "nombre o descripción"
// @Param        category       query     string  false  "categoría"
// @Param        status         query     string  false  "active | archived"
// @Param        show_archived  query     bool    false  "incluir archivados"
// @Param        sort           query     string  false  "campo de orden"
// @Param        order          query     string  false  "asc | desc"
// @Param        page           query     int     false  "página (1..)"
// @Success      200  {object}  dto.ListingResponse[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, paged, err := parseListingQuery(c, usecase.ProductFilters, h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	showArchived := c.QueryBool("show_archived")
	if !paged {
		list, err := h.uc.List(c.Context(), showArchived)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(list)
	}
	page, err := h.uc.Browse(c.Context(), q, showArchived)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(page)
}

func (h *ProductHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Product not found"})
	}
	RequestLog(c).Error().Err(err).Msg("productos")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Error processing products", Error: err.Error()})
}
