package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC        *catalog.ResolveUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de herramientas
	catalogGroup := api.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogGroup.Get("/", catalogHandler.List)
	catalogGroup.Post("/", catalogHandler.Create)
	catalogGroup.Get("/:code", catalogHandler.GetByCode)

	// Movimientos de inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/reconcile/:code", inventoryHandler.ReconcileBalance)
}
