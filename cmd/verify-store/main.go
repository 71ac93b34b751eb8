package main

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/sheets"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/tabular"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// verify-store comprueba que el backend configurado es alcanzable y que el
// catálogo y el log de movimientos son legibles con los encabezados esperados.
// Útil después de cambiar credenciales o al preparar una hoja nueva.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().Str("backend", cfg.Store.Backend).Msg("verificando almacén")

	ctx := context.Background()

	var (
		catalogRepo repository.CatalogRepository
		movRepo     repository.MovementRepository
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
	default:
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
	}

	items, err := catalogRepo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	log.Info().Int("herramientas", len(items)).Msg("catálogo legible")

	movements, err := movRepo.List(1, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("leer log de movimientos")
	}
	log.Info().Int("muestra", len(movements)).Msg("log de movimientos legible")

	log.Info().Msg("almacén verificado")
}
