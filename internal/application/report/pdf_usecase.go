package report

import (
	"context"
	"fmt"
	"time"

	"github.com/dvalencia/bookstore-api/internal/domain"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
	"github.com/dvalencia/bookstore-api/pkg/logger"
)

// SummaryPDFGenerator serializa el resumen del inventario a PDF. La
// implementación vive en infrastructure/pdf para mantener maroto fuera de la
// capa de aplicación.
type SummaryPDFGenerator interface {
	Generate(seller string, store string, snap *Snapshot, generatedAt time.Time) ([]byte, error)
}

// PDFExportUseCase exporta el resumen estadístico como PDF. A diferencia del
// export de hojas de cálculo no lista el inventario fila por fila: solo KPIs,
// desgloses y tendencia.
type PDFExportUseCase struct {
	sellers repository.SellerRepository
	audit   repository.AuditRepository
	agg     *Aggregator
	gen     SummaryPDFGenerator
	log     *logger.Logger
}

// NewPDFExportUseCase construye el caso de uso.
func NewPDFExportUseCase(
	sellers repository.SellerRepository,
	audit repository.AuditRepository,
	agg *Aggregator,
	gen SummaryPDFGenerator,
	log *logger.Logger,
) *PDFExportUseCase {
	return &PDFExportUseCase{sellers: sellers, audit: audit, agg: agg, gen: gen, log: log}
}

// Export genera el PDF de resumen para un vendedor y registra el desenlace en
// la bitácora.
func (uc *PDFExportUseCase) Export(ctx context.Context, sellerID string) (*ExportResult, error) {
	res, err := uc.export(ctx, sellerID)
	if err != nil {
		uc.writeAudit(ctx, sellerID, false, 0, err)
		return nil, err
	}
	uc.writeAudit(ctx, sellerID, true, res.RowCount, nil)
	return res, nil
}

func (uc *PDFExportUseCase) export(ctx context.Context, sellerID string) (*ExportResult, error) {
	seller, err := uc.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("export pdf: vendedor: %w", err)
	}
	if seller == nil {
		return nil, fmt.Errorf("export pdf: vendedor %s: %w", sellerID, domain.ErrNotFound)
	}

	snap, err := uc.agg.Snapshot(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}

	now := time.Now()
	body, err := uc.gen.Generate(seller.DisplayName, seller.StoreName, snap, now)
	if err != nil {
		return nil, fmt.Errorf("export pdf: render: %w", err)
	}

	uc.log.Info().
		Str("seller_id", sellerID).
		Int("bytes", len(body)).
		Msg("resumen PDF generado")

	return &ExportResult{
		Body:         body,
		ContentType:  "application/pdf",
		Filename:     fmt.Sprintf("BookStore_Inventory_Summary_%s.pdf", now.Format("2006-01-02")),
		RowCount:     snap.Basic.TotalBooks,
		RendererName: "pdf",
	}, nil
}

func (uc *PDFExportUseCase) writeAudit(ctx context.Context, sellerID string, ok bool, rows int, cause error) {
	entry := newExportAudit(sellerID, ok, rows, "pdf", cause)
	if err := uc.audit.Insert(ctx, entry); err != nil {
		uc.log.Warn().Err(err).
			Str("seller_id", sellerID).
			Msg("no se pudo registrar la bitácora de exportación PDF")
	}
}
