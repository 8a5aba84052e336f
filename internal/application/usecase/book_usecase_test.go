package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvalencia/bookstore-api/internal/application/dto"
	"github.com/dvalencia/bookstore-api/internal/application/usecase"
	"github.com/dvalencia/bookstore-api/internal/domain"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
	"github.com/dvalencia/bookstore-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memBookRepo struct {
	books map[string]*entity.Book
}

func newMemBookRepo() *memBookRepo {
	return &memBookRepo{books: map[string]*entity.Book{}}
}

func (m *memBookRepo) Create(_ context.Context, b *entity.Book) error {
	m.books[b.ID] = b
	return nil
}

func (m *memBookRepo) GetByID(_ context.Context, sellerID, id string) (*entity.Book, error) {
	b, ok := m.books[id]
	if !ok || b.SellerID != sellerID {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *memBookRepo) Update(_ context.Context, b *entity.Book) error {
	m.books[b.ID] = b
	return nil
}

func (m *memBookRepo) Delete(_ context.Context, _, id string) error {
	delete(m.books, id)
	return nil
}

func (m *memBookRepo) ListRecords(context.Context, string, repository.ListFilter, int, int) ([]repository.InventoryRecord, int, error) {
	return nil, 0, nil
}

type memAuditRepo struct {
	entries []*entity.ActivityLog
}

func (m *memAuditRepo) Insert(_ context.Context, e *entity.ActivityLog) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memAuditRepo) ListBySeller(context.Context, string, int, int) ([]*entity.ActivityLog, int, error) {
	return m.entries, len(m.entries), nil
}

func newBookUseCase() (*usecase.BookUseCase, *memBookRepo, *memAuditRepo) {
	books := newMemBookRepo()
	audit := &memAuditRepo{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return usecase.NewBookUseCase(books, audit, log), books, audit
}

func validCreate() dto.CreateBookRequest {
	return dto.CreateBookRequest{
		Title:         "Cien años de soledad",
		Author:        "Gabriel García Márquez",
		Condition:     entity.ConditionGood,
		Price:         decimal.NewFromInt(45),
		CostPrice:     decimal.NewFromInt(20),
		StockQuantity: 3,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBookWritesAuditEntry(t *testing.T) {
	uc, books, audit := newBookUseCase()

	out, err := uc.Create(context.Background(), "seller-1", validCreate())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.ID)
	assert.Len(t, books.books, 1)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, entity.ActionBookCreated, audit.entries[0].Action)
	assert.Contains(t, audit.entries[0].Details, "Cien años de soledad")
}

func TestCreateBookRejectsInvalidInput(t *testing.T) {
	uc, _, audit := newBookUseCase()

	cases := []func(*dto.CreateBookRequest){
		func(in *dto.CreateBookRequest) { in.Title = "  " },
		func(in *dto.CreateBookRequest) { in.Author = "" },
		func(in *dto.CreateBookRequest) { in.Condition = "mint" },
		func(in *dto.CreateBookRequest) { in.Price = decimal.NewFromInt(-1) },
		func(in *dto.CreateBookRequest) { in.StockQuantity = -1 },
	}
	for _, mutate := range cases {
		in := validCreate()
		mutate(&in)
		_, err := uc.Create(context.Background(), "seller-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, audit.entries, "entradas inválidas no deben llegar a la bitácora")
}

func TestCreateBookDefaultsCondition(t *testing.T) {
	uc, _, _ := newBookUseCase()

	in := validCreate()
	in.Condition = ""
	out, err := uc.Create(context.Background(), "seller-1", in)
	require.NoError(t, err)
	assert.Equal(t, entity.ConditionGood, out.Condition)
}

func TestUpdateBookNotFoundReturnsNil(t *testing.T) {
	uc, _, _ := newBookUseCase()

	newTitle := "Otro título"
	out, err := uc.Update(context.Background(), "seller-1", "no-existe", dto.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUpdateBookAppliesPartialChanges(t *testing.T) {
	uc, _, audit := newBookUseCase()

	created, err := uc.Create(context.Background(), "seller-1", validCreate())
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(60)
	out, err := uc.Update(context.Background(), "seller-1", created.ID, dto.UpdateBookRequest{Price: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Price.Equal(newPrice))
	assert.Equal(t, created.Title, out.Title, "los campos no enviados no cambian")

	require.Len(t, audit.entries, 2)
	assert.Equal(t, entity.ActionBookUpdated, audit.entries[1].Action)
}

func TestDeleteBookNotFound(t *testing.T) {
	uc, _, _ := newBookUseCase()

	err := uc.Delete(context.Background(), "seller-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteBookWritesAuditEntry(t *testing.T) {
	uc, books, audit := newBookUseCase()

	created, err := uc.Create(context.Background(), "seller-1", validCreate())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "seller-1", created.ID))
	assert.Empty(t, books.books)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, entity.ActionBookDeleted, audit.entries[1].Action)
}
