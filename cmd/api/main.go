package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appinventory "github.com/guille-nat/Api-Compras-sub000/internal/application/inventory"
	"github.com/guille-nat/Api-Compras-sub000/internal/application/usecase"
	"github.com/guille-nat/Api-Compras-sub000/internal/infrastructure/eventbus"
	"github.com/guille-nat/Api-Compras-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/guille-nat/Api-Compras-sub000/internal/interfaces/http"
	"github.com/guille-nat/Api-Compras-sub000/pkg/config"
	"github.com/guille-nat/Api-Compras-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewStorageLocationRepository(pool)
	recordRepo := postgres.NewInventoryRecordRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	snapshotRepo := postgres.NewStockSnapshotRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Publicador de movimientos. URL vacía lo desactiva.
	var notifier appinventory.MovementNotifier
	if cfg.RabbitMQ.URL != "" {
		publisher, err := eventbus.NewMovementPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer publisher.Close()
		notifier = publisher
		log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("publicación de movimientos habilitada")
	}

	stockOpsUC := appinventory.NewStockOperationsUseCase(txRunner, productRepo, locationRepo, notifier)
	stockQueryUC := appinventory.NewStockQueryUseCase(recordRepo, movementRepo, snapshotRepo, productRepo, locationRepo)
	snapshotUC := appinventory.NewSnapshotRebuildUseCase(txRunner)
	productUC := usecase.NewProductUseCase(productRepo)
	locationUC := usecase.NewStorageLocationUseCase(locationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		LocationUC:   locationUC,
		StockOps:     stockOpsUC,
		StockQueries: stockQueryUC,
		Snapshot:     snapshotUC,
		JWTSecret:    cfg.JWT.Secret,
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
