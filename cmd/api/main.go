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

	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/application/usecase"
	infrapdf "github.com/dvalencia/bookstore-api/internal/infrastructure/pdf"
	"github.com/dvalencia/bookstore-api/internal/infrastructure/postgres"
	"github.com/dvalencia/bookstore-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/dvalencia/bookstore-api/internal/interfaces/http"
	"github.com/dvalencia/bookstore-api/pkg/config"
	"github.com/dvalencia/bookstore-api/pkg/logger"
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

	bookRepo := postgres.NewBookRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	sellerRepo := postgres.NewSellerRepository(pool)

	aggregator := report.NewAggregator(statsRepo, cfg.Report.TrendMonths)
	composer := report.NewComposer()

	// Renderers en orden de preferencia: el rico primero, el fallback XML
	// siempre al final como red de seguridad.
	factories := []report.Factory{
		&spreadsheet.ExcelizeFactory{Disabled: cfg.Report.RichDisabled},
		&spreadsheet.XMLFactory{},
	}

	exportUC := report.NewExportUseCase(bookRepo, sellerRepo, auditRepo, aggregator, composer, factories, log)
	pdfExportUC := report.NewPDFExportUseCase(sellerRepo, auditRepo, aggregator, infrapdf.NewMarotoSummaryGenerator(), log)

	bookUC := usecase.NewBookUseCase(bookRepo, auditRepo, log)
	dashboardUC := usecase.NewDashboardUseCase(sellerRepo, auditRepo, aggregator)
	activityUC := usecase.NewActivityUseCase(auditRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BookStore Seller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BookUC:      bookUC,
		DashboardUC: dashboardUC,
		ActivityUC:  activityUC,
		ExportUC:    exportUC,
		PDFExportUC: pdfExportUC,
		JWTSecret:   cfg.JWT.Secret,
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
