package usecase

import (
	"context"

	"github.com/dustin/go-humanize"

	"github.com/dvalencia/bookstore-api/internal/application/dto"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

// ActivityUseCase listado paginado de la bitácora del vendedor.
type ActivityUseCase struct {
	audit repository.AuditRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(audit repository.AuditRepository) *ActivityUseCase {
	return &ActivityUseCase{audit: audit}
}

// List devuelve la bitácora más reciente primero.
func (uc *ActivityUseCase) List(ctx context.Context, sellerID string, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	page.DefaultPage()
	entries, total, err := uc.audit.ListBySeller(ctx, sellerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ActivityEntryDTO{
			ID:        e.ID,
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
			Ago:       humanize.Time(e.CreatedAt),
		})
	}
	return &dto.ActivityListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
