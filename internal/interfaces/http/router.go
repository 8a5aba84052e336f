package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BookUC      *usecase.BookUseCase
	DashboardUC *usecase.DashboardUseCase
	ActivityUC  *usecase.ActivityUseCase
	ExportUC    *report.ExportUseCase
	PDFExportUC *report.PDFExportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo el surface es por vendedor y
// requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido)
	books := protected.Group("/books")
	bookHandler := NewBookHandler(deps.BookUC)
	books.Post("/", bookHandler.Create)
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.GetByID)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)

	// Panel (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)

	// Bitácora (protegido)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", activityHandler.List)

	// Reportes (protegido)
	reports := protected.Group("/reports/inventory")
	exportHandler := NewExportHandler(deps.ExportUC, deps.PDFExportUC)
	reports.Get("/export", exportHandler.Export)
	reports.Get("/pdf", exportHandler.ExportPDF)
}
