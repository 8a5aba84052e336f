package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvalencia/bookstore-api/internal/domain/entity"
)

// newExportAudit arma la entrada de bitácora de un intento de exportación.
// Éxito registra el formato y el conteo de filas; fallo registra la causa.
func newExportAudit(sellerID string, ok bool, rows int, renderer string, cause error) *entity.ActivityLog {
	entry := &entity.ActivityLog{
		ID:        uuid.NewString(),
		SellerID:  sellerID,
		CreatedAt: time.Now(),
	}
	if ok {
		entry.Action = entity.ActionExportSuccess
		entry.Details = fmt.Sprintf("Exported inventory report (%s, %d rows)", renderer, rows)
	} else {
		entry.Action = entity.ActionExportFailed
		entry.Details = fmt.Sprintf("Inventory export failed: %v", cause)
	}
	return entry
}
