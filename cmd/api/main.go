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

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/sheets"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/tabular"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
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
		Str("backend", cfg.Store.Backend).
		Str("estrategia", cfg.Inventory.BalanceStrategy).
		Msg("iniciando aplicación")

	strategy, err := inventory.ParseStrategy(cfg.Inventory.BalanceStrategy)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de estrategia de balance")
	}

	ctx := context.Background()

	var (
		catalogRepo repository.CatalogRepository
		movRepo     repository.MovementRepository
		txRunner    inventory.TxRunner
	)
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		catalogRepo = postgres.NewCatalogRepository(pool)
		movRepo = postgres.NewMovementRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	default: // sheets
		client, err := sheets.NewClient(ctx, sheets.Config{
			CredentialsFile: cfg.Sheets.CredentialsFile,
			CredentialsJSON: cfg.Sheets.CredentialsJSON,
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Google Sheets")
		}
		catalogRepo = tabular.NewCatalogRepository(client, cfg.Sheets.CatalogSheet)
		movRepo = tabular.NewMovementRepository(client, cfg.Sheets.MovementsSheet)
		txRunner = tabular.NewTxRunner(catalogRepo, movRepo)
	}

	catalogUC := catalog.NewResolveUseCase(catalogRepo, cfg.Inventory.StrictCodes)
	clock := inventory.NewBusinessClock(cfg.Inventory.UTCOffsetHours)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, catalogUC, movRepo, strategy, clock)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén de Herramientas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:        catalogUC,
		RegisterMovement: registerMovementUC,
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
