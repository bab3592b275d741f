package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Pinger dependencia verificada por /health (pool de Postgres, cliente Redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      loginService
	StockOutUC  stockOutService
	StockOutPDF stockOutPDFService
	StockInUC   stockInService
	InventoryUC inventoryService
	OrderUC     orderService
	ProductUC   productService
	Location    *time.Location
	JWTSecret   string
	Checks      map[string]Pinger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Checks))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleStaff))

	stockOut := protected.Group("/stock-out")
	stockOutHandler := NewStockOutHandler(deps.StockOutUC, deps.StockOutPDF, deps.Location)
	stockOut.Post("/", stockOutHandler.Create)
	stockOut.Get("/", stockOutHandler.List)
	stockOut.Get("/:id", stockOutHandler.GetByID)
	stockOut.Get("/:id/pdf", stockOutHandler.DownloadPDF)

	stockIn := protected.Group("/stock-in")
	stockInHandler := NewStockInHandler(deps.StockInUC, deps.Location)
	stockIn.Post("/", stockInHandler.Create)
	stockIn.Get("/", stockInHandler.List)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Location)
	protected.Get("/inventory", inventoryHandler.List)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Location)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/archive", productHandler.Archive)

	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Location)
	orders.Get("/", orderHandler.List)
	orders.Get("/statuses", orderHandler.Statuses)
	orders.Put("/:id/payment-status", orderHandler.UpdatePaymentStatus)
	orders.Put("/:id/order-status", orderHandler.UpdateOrderStatus)
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func healthHandler(checks map[string]Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		status := fiber.Map{"status": "ok"}
		code := fiber.StatusOK
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				RequestLog(c).Warn().Err(err).Str("check", name).Msg("health")
				status[name] = "down"
				status["status"] = "degraded"
				code = fiber.StatusServiceUnavailable
				continue
			}
			status[name] = "up"
		}
		return c.Status(code).JSON(status)
	}
}
