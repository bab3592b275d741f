package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	infracache "github.com/jhoicas/tienda-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.Location().String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	checks := map[string]httpRouter.Pinger{"postgres": pool}

	// Cache del historial de salidas: Redis si REDIS_ADDR está definido.
	var stockOutCache inventory.StockOutListCache = inventory.NoopStockOutListCache{}
	if cfg.Redis.Enabled() {
		redisCache := infracache.NewRedisStockOutCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.StockOutTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, el cache fallará en abierto")
		}
		stockOutCache = redisCache
		checks["redis"] = redisCache
	}

	employeeRepo := postgres.NewEmployeeRepository(pool)
	stockOutRepo := postgres.NewStockOutRepository(pool)
	stockInRepo := postgres.NewStockInRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	loc := cfg.Location()
	stockOutUC := inventory.NewStockOutUseCase(txRunner, stockOutRepo, stockOutCache, log)
	stockInUC := inventory.NewStockInUseCase(txRunner, stockInRepo, log)
	stockOutPDFUC := inventory.NewStockOutPDFUseCase(stockOutRepo, infrapdf.NewStockOutVoucherGenerator(cfg.App.Name))
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo, loc)
	orderUC := usecase.NewOrderUseCase(orderRepo, loc)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, loc)
	authUC := auth.NewAuthUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Tienda API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		StockOutUC:  stockOutUC,
		StockOutPDF: stockOutPDFUC,
		StockInUC:   stockInUC,
		InventoryUC: inventoryUC,
		OrderUC:     orderUC,
		ProductUC:   productUC,
		Location:    loc,
		JWTSecret:   cfg.JWT.Secret,
		Checks:      checks,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
