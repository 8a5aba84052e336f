package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dvalencia/bookstore-api/internal/application/dto"
	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/domain"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

const recentActivityLimit = 5

// DashboardUseCase arma el panel del vendedor: el mismo snapshot estadístico
// que alimenta los reportes, más la actividad reciente.
type DashboardUseCase struct {
	sellers repository.SellerRepository
	audit   repository.AuditRepository
	agg     *report.Aggregator
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(sellers repository.SellerRepository, audit repository.AuditRepository, agg *report.Aggregator) *DashboardUseCase {
	return &DashboardUseCase{sellers: sellers, audit: audit, agg: agg}
}

// Get calcula el panel para un vendedor.
func (uc *DashboardUseCase) Get(ctx context.Context, sellerID string) (*dto.DashboardResponse, error) {
	seller, err := uc.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: vendedor: %w", err)
	}
	if seller == nil {
		return nil, fmt.Errorf("dashboard: vendedor %s: %w", sellerID, domain.ErrNotFound)
	}

	snap, err := uc.agg.Snapshot(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	recent, _, err := uc.audit.ListBySeller(ctx, sellerID, recentActivityLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("dashboard: actividad: %w", err)
	}
	activity := make([]dto.ActivityEntryDTO, 0, len(recent))
	for _, e := range recent {
		activity = append(activity, dto.ActivityEntryDTO{
			ID:        e.ID,
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
			Ago:       humanize.Time(e.CreatedAt),
		})
	}

	return &dto.DashboardResponse{
		SellerID:       seller.ID,
		StoreName:      seller.StoreName,
		GeneratedAt:    time.Now(),
		Stats:          snap,
		RecentActivity: activity,
	}, nil
}
