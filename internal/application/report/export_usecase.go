package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvalencia/bookstore-api/internal/application/dto"
	"github.com/dvalencia/bookstore-api/internal/domain"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
	"github.com/dvalencia/bookstore-api/pkg/logger"
)

// ExportResult artefacto terminado de una exportación. ContentType y Filename
// vienen del renderer elegido; RendererName queda para la bitácora y logs.
type ExportResult struct {
	Body         []byte
	ContentType  string
	Filename     string
	RowCount     int
	RendererName string
}

// ExportUseCase orquesta el pipeline completo de exportación: parseo de
// filtros, consulta del inventario, agregación estadística, sondeo de
// capacidades y render. Cada request termina con exactamente una entrada en la
// bitácora, de éxito o de fallo.
type ExportUseCase struct {
	books     repository.BookRepository
	sellers   repository.SellerRepository
	audit     repository.AuditRepository
	agg       *Aggregator
	comp      *Composer
	factories []Factory
	log       *logger.Logger
}

// NewExportUseCase construye el caso de uso. El orden de factories define la
// preferencia de formato: la primera disponible gana.
func NewExportUseCase(
	books repository.BookRepository,
	sellers repository.SellerRepository,
	audit repository.AuditRepository,
	agg *Aggregator,
	comp *Composer,
	factories []Factory,
	log *logger.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		books:     books,
		sellers:   sellers,
		audit:     audit,
		agg:       agg,
		comp:      comp,
		factories: factories,
		log:       log,
	}
}

// Export ejecuta el pipeline para un vendedor. Los filtros de req afectan solo
// la hoja de listado; las estadísticas siempre cubren el inventario completo.
func (uc *ExportUseCase) Export(ctx context.Context, sellerID string, req dto.ExportRequest) (*ExportResult, error) {
	res, err := uc.export(ctx, sellerID, req)
	if err != nil {
		uc.writeAudit(ctx, sellerID, false, 0, "", err)
		return nil, err
	}
	uc.writeAudit(ctx, sellerID, true, res.RowCount, res.RendererName, nil)
	return res, nil
}

func (uc *ExportUseCase) export(ctx context.Context, sellerID string, req dto.ExportRequest) (*ExportResult, error) {
	filter, err := ParseFilter(req)
	if err != nil {
		return nil, err
	}

	seller, err := uc.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("export: vendedor: %w", err)
	}
	if seller == nil {
		return nil, fmt.Errorf("export: vendedor %s: %w", sellerID, domain.ErrNotFound)
	}

	// limit 0 = sin paginación: el export siempre lista todo lo que pase el filtro.
	records, total, err := uc.books.ListRecords(ctx, sellerID, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("export: inventario: %w", err)
	}

	snap, err := uc.agg.Snapshot(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	now := time.Now()
	rep := uc.comp.Compose(seller, snap, records, now)

	name, renderer, err := Detect(uc.factories)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	body, err := renderer.Render(&RenderInput{
		Seller:      seller,
		Report:      rep,
		Snapshot:    snap,
		Records:     records,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("export: render %s: %w", name, err)
	}

	uc.log.Info().
		Str("seller_id", sellerID).
		Str("renderer", name).
		Int("rows", total).
		Int("bytes", len(body)).
		Msg("exportación de inventario generada")

	return &ExportResult{
		Body:         body,
		ContentType:  renderer.ContentType(),
		Filename:     renderer.Filename(now),
		RowCount:     total,
		RendererName: name,
	}, nil
}

// ParseFilter traduce los parámetros crudos del request al filtro del dominio.
// Precio o fecha malformados son error de entrada; un sort_by desconocido cae
// en silencio a la columna por defecto.
func ParseFilter(req dto.ExportRequest) (repository.ListFilter, error) {
	f := repository.ListFilter{
		Search:    strings.TrimSpace(req.Search),
		Genre:     strings.TrimSpace(req.Genre),
		Condition: strings.TrimSpace(req.Condition),
	}

	if v := strings.TrimSpace(req.MinPrice); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return f, fmt.Errorf("min_price %q: %w", v, domain.ErrInvalidInput)
		}
		f.MinPrice = &d
	}
	if v := strings.TrimSpace(req.MaxPrice); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return f, fmt.Errorf("max_price %q: %w", v, domain.ErrInvalidInput)
		}
		f.MaxPrice = &d
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return f, fmt.Errorf("min_price mayor que max_price: %w", domain.ErrInvalidInput)
	}

	if v := strings.TrimSpace(req.DateFrom); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("date_from %q: %w", v, domain.ErrInvalidInput)
		}
		f.DateFrom = &t
	}
	if v := strings.TrimSpace(req.DateTo); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("date_to %q: %w", v, domain.ErrInvalidInput)
		}
		// Inclusivo: el límite superior cubre el día entero.
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}

	f.SortBy, _ = repository.ParseSortColumn(req.SortBy)
	switch {
	case strings.EqualFold(req.SortOrder, "desc"):
		f.SortDesc = true
	case strings.EqualFold(req.SortOrder, "asc"):
		f.SortDesc = false
	default:
		// Sin orden explícito: lo más reciente primero.
		f.SortDesc = req.SortBy == "" && req.SortOrder == ""
	}

	return f, nil
}

// writeAudit registra el desenlace del pipeline. Un fallo al escribir la
// bitácora no cambia la respuesta al cliente; solo se loguea.
func (uc *ExportUseCase) writeAudit(ctx context.Context, sellerID string, ok bool, rows int, renderer string, cause error) {
	entry := newExportAudit(sellerID, ok, rows, renderer, cause)
	if err := uc.audit.Insert(ctx, entry); err != nil {
		uc.log.Warn().Err(err).
			Str("seller_id", sellerID).
			Str("action", entry.Action).
			Msg("no se pudo registrar la bitácora de exportación")
	}
}
