package report_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de StatsRepository: calcula los agregados en memoria a partir de los
// libros sembrados, con la misma semántica que las consultas SQL (géneros
// vacíos excluidos, condición vacía incluida, meses en orden descendente).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStatsRepo struct {
	books []entity.Book
}

func (f *fakeStatsRepo) GetBasicStats(_ context.Context, _ string) (repository.BasicStatsResult, error) {
	var res repository.BasicStatsResult
	if len(f.books) == 0 {
		return res, nil
	}
	res.TotalBooks = len(f.books)
	res.MinPrice = f.books[0].Price
	res.MaxPrice = f.books[0].Price
	sum := decimal.Zero
	for _, b := range f.books {
		res.TotalValue = res.TotalValue.Add(b.Price)
		res.TotalCost = res.TotalCost.Add(b.CostPrice)
		res.TotalStock += b.StockQuantity
		res.PotentialProfit = res.PotentialProfit.Add(
			b.Price.Sub(b.CostPrice).Mul(decimal.NewFromInt(int64(b.StockQuantity))))
		sum = sum.Add(b.Price)
		if b.Price.LessThan(res.MinPrice) {
			res.MinPrice = b.Price
		}
		if b.Price.GreaterThan(res.MaxPrice) {
			res.MaxPrice = b.Price
		}
	}
	res.AvgPrice = sum.Div(decimal.NewFromInt(int64(len(f.books))))
	return res, nil
}

func (f *fakeStatsRepo) GetGenreBreakdown(_ context.Context, _ string) ([]repository.CategoryCountResult, error) {
	return f.breakdown(func(b entity.Book) (string, bool) {
		if b.Genre == nil || *b.Genre == "" {
			return "", false
		}
		return *b.Genre, true
	}), nil
}

func (f *fakeStatsRepo) GetConditionBreakdown(_ context.Context, _ string) ([]repository.CategoryCountResult, error) {
	return f.breakdown(func(b entity.Book) (string, bool) {
		return b.Condition, true
	}), nil
}

func (f *fakeStatsRepo) breakdown(keyOf func(entity.Book) (string, bool)) []repository.CategoryCountResult {
	byKey := map[string]*repository.CategoryCountResult{}
	for _, b := range f.books {
		key, ok := keyOf(b)
		if !ok {
			continue
		}
		row, exists := byKey[key]
		if !exists {
			row = &repository.CategoryCountResult{Key: key}
			byKey[key] = row
		}
		row.Count++
		row.TotalValue = row.TotalValue.Add(b.Price)
		row.TotalStock += b.StockQuantity
	}
	rows := make([]repository.CategoryCountResult, 0, len(byKey))
	for _, row := range byKey {
		row.AvgPrice = row.TotalValue.Div(decimal.NewFromInt(int64(row.Count)))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

func (f *fakeStatsRepo) GetMonthlyTrend(_ context.Context, _ string, months int) ([]repository.MonthlyCountResult, error) {
	byMonth := map[time.Time]*repository.MonthlyCountResult{}
	for _, b := range f.books {
		m := time.Date(b.CreatedAt.Year(), b.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		row, ok := byMonth[m]
		if !ok {
			row = &repository.MonthlyCountResult{Month: m}
			byMonth[m] = row
		}
		row.BooksAdded++
		row.TotalValue = row.TotalValue.Add(b.Price)
	}
	rows := make([]repository.MonthlyCountResult, 0, len(byMonth))
	for _, row := range byMonth {
		row.AvgPrice = row.TotalValue.Div(decimal.NewFromInt(int64(row.BooksAdded)))
		rows = append(rows, *row)
	}
	// Más reciente primero, como la consulta real.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month.After(rows[j].Month) })
	if len(rows) > months {
		rows = rows[:months]
	}
	return rows, nil
}

func (f *fakeStatsRepo) GetPriceBandStats(_ context.Context, _ string, min decimal.Decimal, max *decimal.Decimal) (int, decimal.Decimal, error) {
	count := 0
	sum := decimal.Zero
	for _, b := range f.books {
		if b.Price.LessThan(min) {
			continue
		}
		if max != nil && b.Price.GreaterThanOrEqual(*max) {
			continue
		}
		count++
		sum = sum.Add(b.Price)
	}
	if count == 0 {
		return 0, decimal.Zero, nil
	}
	return count, sum.Div(decimal.NewFromInt(int64(count))), nil
}

var _ repository.StatsRepository = (*fakeStatsRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func seedBook(genre, condition string, price float64, stock int, created time.Time) entity.Book {
	var g *string
	if genre != "" {
		g = strPtr(genre)
	}
	return entity.Book{
		Genre:         g,
		Condition:     condition,
		Price:         decimal.NewFromFloat(price),
		CostPrice:     decimal.NewFromFloat(price / 2),
		StockQuantity: stock,
		CreatedAt:     created,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshotBasicStatsAndBuckets(t *testing.T) {
	now := time.Now()
	repo := &fakeStatsRepo{books: []entity.Book{
		seedBook("Fiction", entity.ConditionNew, 10, 2, now),
		seedBook("Fiction", entity.ConditionGood, 30, 1, now),
		seedBook("History", entity.ConditionNew, 220, 3, now),
	}}
	agg := report.NewAggregator(repo, 12)

	snap, err := agg.Snapshot(context.Background(), "seller-1")
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Basic.TotalBooks)
	assert.Equal(t, 6, snap.Basic.TotalStock)
	assert.True(t, snap.Basic.MinPrice.Equal(decimal.NewFromInt(10)), "min=%s", snap.Basic.MinPrice)
	assert.True(t, snap.Basic.MaxPrice.Equal(decimal.NewFromInt(220)), "max=%s", snap.Basic.MaxPrice)

	// Las cinco bandas fijas, en orden, particionando el inventario.
	require.Len(t, snap.Buckets, 5)
	labels := []string{"Under RM25", "RM25-50", "RM50-100", "RM100-200", "Over RM200"}
	counts := []int{1, 1, 0, 0, 1}
	total := 0
	for i, b := range snap.Buckets {
		assert.Equal(t, labels[i], b.Label)
		assert.Equal(t, counts[i], b.Count)
		total += b.Count
	}
	assert.Equal(t, snap.Basic.TotalBooks, total, "las bandas deben particionar el inventario")
}

func TestSnapshotConditionBreakdownPercentages(t *testing.T) {
	now := time.Now()
	repo := &fakeStatsRepo{books: []entity.Book{
		seedBook("Fiction", entity.ConditionNew, 10, 1, now),
		seedBook("Fiction", entity.ConditionNew, 30, 1, now),
		seedBook("History", entity.ConditionGood, 220, 1, now),
	}}
	agg := report.NewAggregator(repo, 12)

	snap, err := agg.Snapshot(context.Background(), "seller-1")
	require.NoError(t, err)

	require.Len(t, snap.Conditions, 2)
	assert.Equal(t, entity.ConditionNew, snap.Conditions[0].Key)
	assert.Equal(t, 2, snap.Conditions[0].Count)
	assert.Equal(t, 1, snap.Conditions[0].Rank)
	assert.Equal(t, "66.7", snap.Conditions[0].Pct.String())
	assert.Equal(t, "33.3", snap.Conditions[1].Pct.String())
}

func TestSnapshotGenreBreakdownExcludesEmptyAndRanks(t *testing.T) {
	now := time.Now()
	repo := &fakeStatsRepo{books: []entity.Book{
		seedBook("Fiction", entity.ConditionNew, 10, 1, now),
		seedBook("Fiction", entity.ConditionNew, 12, 1, now),
		seedBook("History", entity.ConditionGood, 20, 1, now),
		seedBook("", entity.ConditionGood, 20, 1, now), // sin género: fuera del breakdown
	}}
	agg := report.NewAggregator(repo, 12)

	snap, err := agg.Snapshot(context.Background(), "seller-1")
	require.NoError(t, err)

	require.Len(t, snap.Genres, 2)
	assert.Equal(t, "Fiction", snap.Genres[0].Key)
	assert.Equal(t, 1, snap.Genres[0].Rank)
	assert.Equal(t, "History", snap.Genres[1].Key)
	assert.Equal(t, 2, snap.Genres[1].Rank)

	// El total por géneros puede ser menor al total de libros (los sin género
	// no aparecen), nunca mayor.
	sum := 0
	for _, g := range snap.Genres {
		sum += g.Count
	}
	assert.LessOrEqual(t, sum, snap.Basic.TotalBooks)
}

func TestSnapshotEmptyInventoryAllZeros(t *testing.T) {
	agg := report.NewAggregator(&fakeStatsRepo{}, 12)

	snap, err := agg.Snapshot(context.Background(), "seller-1")
	require.NoError(t, err)

	assert.Equal(t, 0, snap.Basic.TotalBooks)
	assert.True(t, snap.Basic.TotalValue.IsZero())
	assert.True(t, snap.Basic.AvgPrice.IsZero())
	assert.Empty(t, snap.Genres)
	assert.Empty(t, snap.Conditions)
	assert.Empty(t, snap.Trend)
	require.Len(t, snap.Buckets, 5)
	for _, b := range snap.Buckets {
		assert.Equal(t, 0, b.Count)
		assert.True(t, b.Pct.IsZero())
	}
}

func TestSnapshotTrendChronologicalWithGrowth(t *testing.T) {
	base := time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)
	books := []entity.Book{
		// Mayo: 2 altas; junio: 4 altas; julio: 1 alta.
		seedBook("Fiction", entity.ConditionNew, 10, 1, base),
		seedBook("Fiction", entity.ConditionNew, 10, 1, base),
		seedBook("Fiction", entity.ConditionNew, 10, 1, base.AddDate(0, 1, 0)),
		seedBook("Fiction", entity.ConditionNew, 10, 1, base.AddDate(0, 1, 0)),
		seedBook("Fiction", entity.ConditionNew, 10, 1, base.AddDate(0, 1, 0)),
		seedBook("Fiction", entity.ConditionNew, 10, 1, base.AddDate(0, 1, 0)),
		seedBook("Fiction", entity.ConditionNew, 10, 1, base.AddDate(0, 2, 0)),
	}
	agg := report.NewAggregator(&fakeStatsRepo{books: books}, 12)

	snap, err := agg.Snapshot(context.Background(), "seller-1")
	require.NoError(t, err)

	require.Len(t, snap.Trend, 3)
	// Cronológico ascendente aunque la consulta entregue descendente.
	assert.Equal(t, "May 2026", snap.Trend[0].Label)
	assert.Equal(t, "Jun 2026", snap.Trend[1].Label)
	assert.Equal(t, "Jul 2026", snap.Trend[2].Label)

	// El mes más antiguo no tiene línea base.
	assert.True(t, snap.Trend[0].GrowthPct.IsZero())
	// 2 → 4: +100.0%; 4 → 1: -75.0%.
	assert.Equal(t, "100", snap.Trend[1].GrowthPct.String())
	assert.Equal(t, "-75", snap.Trend[2].GrowthPct.String())
}
