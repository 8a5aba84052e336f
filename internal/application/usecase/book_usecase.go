package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dvalencia/bookstore-api/internal/application/dto"
	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/domain"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
	"github.com/dvalencia/bookstore-api/pkg/logger"
)

var validConditions = map[string]bool{
	entity.ConditionNew:        true,
	entity.ConditionLikeNew:    true,
	entity.ConditionGood:       true,
	entity.ConditionAcceptable: true,
	entity.ConditionPoor:       true,
}

// BookUseCase casos de uso CRUD del catálogo del vendedor. Cada mutación deja
// una entrada en la bitácora de actividad.
type BookUseCase struct {
	repo  repository.BookRepository
	audit repository.AuditRepository
	log   *logger.Logger
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(repo repository.BookRepository, audit repository.AuditRepository, log *logger.Logger) *BookUseCase {
	return &BookUseCase{repo: repo, audit: audit, log: log}
}

// Create crea un libro del vendedor.
func (uc *BookUseCase) Create(ctx context.Context, sellerID string, in dto.CreateBookRequest) (*dto.BookResponse, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Author) == "" {
		return nil, fmt.Errorf("title y author son obligatorios: %w", domain.ErrInvalidInput)
	}
	if in.Condition == "" {
		in.Condition = entity.ConditionGood
	}
	if !validConditions[in.Condition] {
		return nil, fmt.Errorf("condition %q: %w", in.Condition, domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() || in.CostPrice.IsNegative() {
		return nil, fmt.Errorf("precio negativo: %w", domain.ErrInvalidInput)
	}
	if in.StockQuantity < 0 {
		return nil, fmt.Errorf("stock negativo: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	book := &entity.Book{
		ID:            uuid.NewString(),
		SellerID:      sellerID,
		Title:         strings.TrimSpace(in.Title),
		Author:        strings.TrimSpace(in.Author),
		ISBN:          in.ISBN,
		Genre:         in.Genre,
		Condition:     in.Condition,
		Price:         in.Price,
		CostPrice:     in.CostPrice,
		StockQuantity: in.StockQuantity,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	uc.writeAudit(ctx, sellerID, entity.ActionBookCreated, fmt.Sprintf("Added %q by %s", book.Title, book.Author))
	return toBookResponse(book), nil
}

// GetByID obtiene un libro del vendedor.
func (uc *BookUseCase) GetByID(ctx context.Context, sellerID, id string) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, nil
	}
	return toBookResponse(book), nil
}

// Update actualiza un libro (campos opcionales).
func (uc *BookUseCase) Update(ctx context.Context, sellerID, id string, in dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, nil
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("title vacío: %w", domain.ErrInvalidInput)
		}
		book.Title = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		if strings.TrimSpace(*in.Author) == "" {
			return nil, fmt.Errorf("author vacío: %w", domain.ErrInvalidInput)
		}
		book.Author = strings.TrimSpace(*in.Author)
	}
	if in.ISBN != nil {
		book.ISBN = in.ISBN
	}
	if in.Genre != nil {
		book.Genre = in.Genre
	}
	if in.Condition != nil {
		if !validConditions[*in.Condition] {
			return nil, fmt.Errorf("condition %q: %w", *in.Condition, domain.ErrInvalidInput)
		}
		book.Condition = *in.Condition
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("precio negativo: %w", domain.ErrInvalidInput)
		}
		book.Price = *in.Price
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, fmt.Errorf("costo negativo: %w", domain.ErrInvalidInput)
		}
		book.CostPrice = *in.CostPrice
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, fmt.Errorf("stock negativo: %w", domain.ErrInvalidInput)
		}
		book.StockQuantity = *in.StockQuantity
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	book.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	uc.writeAudit(ctx, sellerID, entity.ActionBookUpdated, fmt.Sprintf("Updated %q", book.Title))
	return toBookResponse(book), nil
}

// Delete elimina un libro del vendedor.
func (uc *BookUseCase) Delete(ctx context.Context, sellerID, id string) error {
	book, err := uc.repo.GetByID(ctx, sellerID, id)
	if err != nil {
		return err
	}
	if book == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, sellerID, id); err != nil {
		return err
	}
	uc.writeAudit(ctx, sellerID, entity.ActionBookDeleted, fmt.Sprintf("Removed %q", book.Title))
	return nil
}

// List lista el inventario del vendedor con filtros y paginación. Comparte el
// parseo de filtros con el pipeline de exportación.
func (uc *BookUseCase) List(ctx context.Context, sellerID string, req dto.BookListRequest) (*dto.BookListResponse, error) {
	filter, err := report.ParseFilter(req.ExportRequest)
	if err != nil {
		return nil, err
	}
	req.DefaultPage()
	records, total, err := uc.repo.ListRecords(ctx, sellerID, filter, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookResponse, 0, len(records))
	for i := range records {
		items = append(items, recordToBookResponse(&records[i]))
	}
	return &dto.BookListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset, Total: total},
	}, nil
}

func (uc *BookUseCase) writeAudit(ctx context.Context, sellerID, action, details string) {
	entry := &entity.ActivityLog{
		ID:        uuid.NewString(),
		SellerID:  sellerID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := uc.audit.Insert(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Msg("no se pudo registrar la bitácora")
	}
}

func toBookResponse(b *entity.Book) *dto.BookResponse {
	return &dto.BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Genre:         b.Genre,
		Condition:     b.Condition,
		Price:         b.Price,
		CostPrice:     b.CostPrice,
		StockQuantity: b.StockQuantity,
		Description:   b.Description,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func recordToBookResponse(r *repository.InventoryRecord) dto.BookResponse {
	return dto.BookResponse{
		ID:            r.ID,
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		Genre:         r.Genre,
		Condition:     r.Condition,
		Price:         r.Price,
		CostPrice:     r.CostPrice,
		StockQuantity: r.StockQuantity,
		Description:   r.Description,
		AvgRating:     r.AvgRating,
		ReviewCount:   r.ReviewCount,
		TotalSold:     r.TotalSold,
		ProfitMargin:  r.ProfitMargin,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
