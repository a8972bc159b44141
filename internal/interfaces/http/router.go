package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tradeportal-api/internal/application/analytics"
	"github.com/jhoicas/tradeportal-api/internal/application/auth"
	"github.com/jhoicas/tradeportal-api/internal/application/billing"
	"github.com/jhoicas/tradeportal-api/internal/application/documents"
	"github.com/jhoicas/tradeportal-api/internal/application/shipping"
	"github.com/jhoicas/tradeportal-api/internal/application/stock"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InvoiceUC   *billing.InvoiceUseCase
	InvoicePDF  *billing.PDFUseCase
	ShipmentUC  *shipping.ShipmentUseCase
	StockUC     *stock.StockUseCase
	DocumentUC  *documents.DocumentUseCase
	DashboardUC *analytics.DashboardUseCase
	Pool        *pgxpool.Pool
	Storage     shipping.ObjectStorage
	JWTSecret   string
	Version     string
	Environment string
}

// Router registra las rutas de la API.
//
// Matriz de acceso: admin ve todo; staff solo embarques y documentos. Los
// borrados duros son siempre de admin.
func Router(app *fiber.App, deps RouterDeps) {
	// Health (público, sin token)
	healthHandler := NewHealthHandler(deps.Pool, deps.Storage, deps.Version, deps.Environment)
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Auth (login público; el resto protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	authProtected := protected.Group("/auth")
	authProtected.Get("/me", authHandler.Me)
	authProtected.Put("/me", authHandler.UpdateMe)
	authProtected.Post("/register", RequireAdmin(), authHandler.Register)

	// Users (solo admin)
	users := protected.Group("/users", RequireAccess(entity.ResourceUsers))
	users.Get("/", authHandler.ListUsers)
	users.Delete("/:id", authHandler.DeleteUser)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	// Invoices (solo admin)
	invoices := protected.Group("/invoices", RequireAccess(entity.ResourceInvoices))
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/available", invoiceHandler.Available)
	invoices.Get("/stats", dashboardHandler.InvoiceStats)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.SetStatus)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Shipments (admin y staff; borrado solo admin)
	shipments := protected.Group("/shipments", RequireAccess(entity.ResourceShipments))
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/stats", dashboardHandler.ShipmentStats)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Put("/:id", shipmentHandler.Update)
	shipments.Post("/:id/advance", shipmentHandler.Advance)
	shipments.Patch("/:id/status", shipmentHandler.SetStatus)
	shipments.Post("/:id/documents", shipmentHandler.AddDocument)
	shipments.Delete("/:id/documents", shipmentHandler.RemoveDocument)
	shipments.Delete("/:id", RequireAdmin(), shipmentHandler.Delete)

	// Stock de oficina (solo admin)
	stockGroup := protected.Group("/stock", RequireAccess(entity.ResourceStock))
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/", stockHandler.Create)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/locations", stockHandler.Locations)
	stockGroup.Get("/stats", dashboardHandler.StockStats)
	stockGroup.Get("/:id", stockHandler.GetByID)
	stockGroup.Put("/:id", stockHandler.Update)
	stockGroup.Put("/:id/quantity", stockHandler.SetQuantity)
	stockGroup.Post("/:id/adjust", stockHandler.Adjust)
	stockGroup.Delete("/:id", stockHandler.Delete)

	// Documents (admin y staff; borrado solo admin)
	docs := protected.Group("/documents", RequireAccess(entity.ResourceDocuments))
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	docs.Post("/", documentHandler.Upload)
	docs.Get("/", documentHandler.List)
	docs.Get("/:id", documentHandler.GetByID)
	docs.Delete("/:id", RequireAdmin(), documentHandler.Delete)

	// Dashboard (admin y staff)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)
}
