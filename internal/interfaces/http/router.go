package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guille-nat/Api-Compras-sub000/internal/application/inventory"
	"github.com/guille-nat/Api-Compras-sub000/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	LocationUC   *usecase.StorageLocationUseCase
	StockOps     *inventory.StockOperationsUseCase
	StockQueries *inventory.StockQueryUseCase
	Snapshot     *inventory.SnapshotRebuildUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; altas solo admin/bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(RoleAdmin, RoleBodeguero), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Storage locations (protegido; altas solo admin/bodeguero)
	locations := protected.Group("/locations")
	locationHandler := NewStorageLocationHandler(deps.LocationUC)
	locations.Post("/", RequireRole(RoleAdmin, RoleBodeguero), locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Inventory (protegido). Las mutaciones exigen rol de bodega;
	// las consultas quedan abiertas a cualquier usuario autenticado.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockOps, deps.StockQueries, deps.Snapshot)
	mutate := RequireRole(RoleAdmin, RoleBodeguero)
	invGroup.Post("/purchase-entry", mutate, inventoryHandler.PurchaseEntry)
	invGroup.Post("/exit-sale", RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor), inventoryHandler.ExitSale)
	invGroup.Post("/transfer", mutate, inventoryHandler.Transfer)
	invGroup.Post("/return-entry", mutate, inventoryHandler.ReturnEntry)
	invGroup.Post("/adjustment", RequireRole(RoleAdmin), inventoryHandler.Adjustment)
	invGroup.Post("/snapshot/rebuild", RequireRole(RoleAdmin), inventoryHandler.RebuildSnapshot)
	invGroup.Get("/snapshot", inventoryHandler.Snapshots)
	invGroup.Get("/records", inventoryHandler.Records)
	invGroup.Get("/stock/total", inventoryHandler.TotalStock)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/movements/by-location", inventoryHandler.MovementsByLocation)
}
