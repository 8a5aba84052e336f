package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dvalencia/bookstore-api/internal/application/dto"
	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/domain"
)

// spreadsheetExporter y pdfExporter interfaces locales sobre los casos de uso
// de exportación, para poder inyectar dobles en los tests del handler.
type spreadsheetExporter interface {
	Export(ctx context.Context, sellerID string, req dto.ExportRequest) (*report.ExportResult, error)
}

type pdfExporter interface {
	Export(ctx context.Context, sellerID string) (*report.ExportResult, error)
}

// ExportHandler maneja las descargas de reportes de inventario (protegido).
type ExportHandler struct {
	sheet spreadsheetExporter
	pdf   pdfExporter
}

// NewExportHandler construye el handler.
func NewExportHandler(sheet spreadsheetExporter, pdf pdfExporter) *ExportHandler {
	return &ExportHandler{sheet: sheet, pdf: pdf}
}

// Export godoc
// @Summary      Exportar reporte de inventario (xlsx o xls según capacidad)
// @Tags         reports
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        search      query  string  false  "Substring sobre title/author/isbn"
// @Param        genre       query  string  false  "Género exacto"
// @Param        condition   query  string  false  "Condición exacta"
// @Param        min_price   query  string  false  "Precio mínimo"
// @Param        max_price   query  string  false  "Precio máximo"
// @Param        sort_by     query  string  false  "Columna de orden"
// @Param        sort_order  query  string  false  "ASC o DESC"
// @Param        date_from   query  string  false  "YYYY-MM-DD"
// @Param        date_to     query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "seller_id requerido"})
	}

	var req dto.ExportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}

	res, err := h.sheet.Export(c.UserContext(), sellerID, req)
	if err != nil {
		return exportError(c, err)
	}
	return sendDownload(c, res)
}

// ExportPDF godoc
// @Summary      Exportar resumen de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory/pdf [get]
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "seller_id requerido"})
	}

	res, err := h.pdf.Export(c.UserContext(), sellerID)
	if err != nil {
		return exportError(c, err)
	}
	return sendDownload(c, res)
}

func sendDownload(c *fiber.Ctx, res *report.ExportResult) error {
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	// Los reportes se calculan frescos en cada request; nada de caches intermedios.
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	return c.Send(res.Body)
}

func exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vendedor no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "EXPORT_FAILED",
			Message: "no se pudo generar el reporte; intente el resumen PDF como alternativa",
		})
	}
}
