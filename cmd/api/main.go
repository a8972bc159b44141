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

	appanalytics "github.com/jhoicas/tradeportal-api/internal/application/analytics"
	"github.com/jhoicas/tradeportal-api/internal/application/auth"
	"github.com/jhoicas/tradeportal-api/internal/application/billing"
	"github.com/jhoicas/tradeportal-api/internal/application/documents"
	"github.com/jhoicas/tradeportal-api/internal/application/shipping"
	"github.com/jhoicas/tradeportal-api/internal/application/stock"
	infrapdf "github.com/jhoicas/tradeportal-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tradeportal-api/internal/infrastructure/postgres"
	infrastorage "github.com/jhoicas/tradeportal-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/tradeportal-api/internal/interfaces/http"
	"github.com/jhoicas/tradeportal-api/pkg/config"
	"github.com/jhoicas/tradeportal-api/pkg/logger"
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
		Str("version", cfg.App.Version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	objectStorage, err := infrastorage.NewGCSStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al bucket de documentos")
	}
	defer objectStorage.Close()

	userRepo := postgres.NewUserRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo)

	// PDF: representación imprimible de la factura
	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, pdfGenerator)

	shipmentUC := shipping.NewShipmentUseCase(shipmentRepo, invoiceRepo, objectStorage, log)
	stockUC := stock.NewStockUseCase(stockRepo)
	documentUC := documents.NewDocumentUseCase(documentRepo, objectStorage, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    30 * 1024 * 1024, // margen sobre el límite de subida de documentos
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Trade Portal API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InvoiceUC:   invoiceUC,
		InvoicePDF:  invoicePDFUC,
		ShipmentUC:  shipmentUC,
		StockUC:     stockUC,
		DocumentUC:  documentUC,
		DashboardUC: dashboardUC,
		Pool:        pool,
		Storage:     objectStorage,
		JWTSecret:   cfg.JWT.Secret,
		Version:     cfg.App.Version,
		Environment: cfg.App.Env,
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
