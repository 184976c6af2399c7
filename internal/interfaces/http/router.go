package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/almacen-dev/almacen-api/internal/application/inventory"
	"github.com/almacen-dev/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	SupplierUC     *usecase.SupplierUseCase
	StatsUC        *usecase.StatsUseCase
	WithdrawalUC   *inventory.WithdrawalUseCase
	MetricsEnabled bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", productHandler.Update)
	products.Delete("/:code", productHandler.Delete)

	// Consultas de inventario
	api.Get("/low-stock", productHandler.LowStock)
	api.Get("/next-product-code", productHandler.NextCode)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Withdrawals (salidas)
	withdrawals := api.Group("/withdrawals")
	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalUC)
	withdrawals.Post("/", withdrawalHandler.Register)
	withdrawals.Get("/", withdrawalHandler.List)
	withdrawals.Delete("/:id", withdrawalHandler.Reverse)

	// Statistics
	statsHandler := NewStatsHandler(deps.StatsUC)
	api.Get("/statistics", statsHandler.Statistics)

	// Exports
	exports := api.Group("/export")
	exportHandler := NewExportHandler(deps.ProductUC, deps.WithdrawalUC)
	exports.Get("/products.csv", exportHandler.ProductsCSV)
	exports.Get("/withdrawals.csv", exportHandler.WithdrawalsCSV)
	exports.Get("/products.xlsx", exportHandler.ProductsXLSX)
}
