package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC  *usecase.LocationUseCase
	ItemUC      *usecase.ItemUseCase
	RecipientUC *usecase.RecipientUseCase
	SupplierUC  *usecase.SupplierUseCase
	TransferUC  *ledger.TransferUseCase
	ReceiveUC   *ledger.ReceiveUseCase
	QueryUC     *ledger.QueryUseCase
	Metrics     *Metrics
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Recipients (protegido)
	recipients := protected.Group("/recipients")
	recipientHandler := NewRecipientHandler(deps.RecipientUC)
	recipients.Post("/", recipientHandler.Create)
	recipients.Get("/", recipientHandler.List)
	recipients.Put("/:id", recipientHandler.Update)
	recipients.Delete("/:id", recipientHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Stock: recepciones, consultas y auditoría (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.ReceiveUC, deps.QueryUC)
	stock.Post("/receive", stockHandler.Receive)
	stock.Get("/", stockHandler.List)
	stock.Get("/transit", stockHandler.Transit)
	stock.Get("/availability", stockHandler.Availability)
	stock.Get("/logs", stockHandler.Logs)

	// Transfers: ciclo de vida de órdenes (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC, deps.QueryUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/confirm", transferHandler.Confirm)
	transfers.Post("/:id/reject", transferHandler.Reject)
	transfers.Delete("/:id", transferHandler.Delete)
	transfers.Put("/:id", transferHandler.Edit)
	transfers.Post("/:id/resolve", transferHandler.Resolve)
}
