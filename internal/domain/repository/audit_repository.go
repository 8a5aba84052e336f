package repository

import (
	"context"

	"github.com/dvalencia/bookstore-api/internal/domain/entity"
)

// AuditRepository puerto de la bitácora de actividad del vendedor.
// Cada intento de exportación (exitoso o fallido) termina en exactamente una entrada.
type AuditRepository interface {
	Insert(ctx context.Context, entry *entity.ActivityLog) error
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.ActivityLog, int, error)
}
