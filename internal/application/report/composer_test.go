package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

func testSeller() *entity.Seller {
	return &entity.Seller{
		ID:          "seller-1",
		DisplayName: "Daniela Valencia",
		StoreName:   "Valencia Books",
	}
}

func testRecord(id, title string) repository.InventoryRecord {
	return repository.InventoryRecord{
		ID:            id,
		Title:         title,
		Author:        "Anonymous",
		Condition:     entity.ConditionGood,
		Price:         decimal.NewFromInt(30),
		StockQuantity: 2,
		CreatedAt:     time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, time.July, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestComposeProducesFiveSheetsInOrder(t *testing.T) {
	comp := report.NewComposer()
	snap := &report.Snapshot{}

	rep := comp.Compose(testSeller(), snap, nil, time.Now())

	require.Len(t, rep.Sheets, 5)
	titles := make([]string, 0, 5)
	for _, s := range rep.Sheets {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Dashboard", "Inventory", "Analytics", "Genre Ranking", "Monthly Trends"}, titles)
	assert.Equal(t, "Daniela Valencia", rep.SellerName)
	assert.Equal(t, "Valencia Books", rep.StoreName)
}

func TestComposeListingSheetOnlyReflectsRecords(t *testing.T) {
	comp := report.NewComposer()
	records := []repository.InventoryRecord{
		testRecord("b1", "Cien años de soledad"),
		testRecord("b2", "El coronel no tiene quien le escriba"),
	}

	rep := comp.Compose(testSeller(), &report.Snapshot{}, records, time.Now())

	listing := rep.Sheets[1]
	assert.Equal(t, 1, listing.HeaderRow)
	assert.True(t, listing.Freeze)
	// encabezado + una fila por registro
	require.Len(t, listing.Rows, 3)
	require.Len(t, listing.Rows[0], 16)
	assert.Equal(t, "b1", listing.Rows[1][0].Value)
	assert.Equal(t, "b2", listing.Rows[2][0].Value)
	// sin ISBN ni género: placeholders, nunca celdas vacías
	assert.Equal(t, "Not specified", listing.Rows[1][3].Value)
	assert.Equal(t, "Not categorized", listing.Rows[1][4].Value)
}

func TestComposeEmptyInventoryUsesNoDataRows(t *testing.T) {
	comp := report.NewComposer()

	rep := comp.Compose(testSeller(), &report.Snapshot{}, nil, time.Now())

	for _, sheet := range rep.Sheets {
		found := false
		for _, row := range sheet.Rows {
			if len(row) == 1 && row[0].Value == "No data available" {
				found = true
				break
			}
		}
		// El dashboard siempre tiene KPIs; sus tablas vacías también degradan.
		assert.True(t, found, "hoja %q debe marcar tablas vacías", sheet.Title)
	}
}

func TestComposeRankingAppliesTierStyles(t *testing.T) {
	comp := report.NewComposer()
	snap := &report.Snapshot{
		Genres: []report.BreakdownEntry{
			{Key: "Fiction", Count: 5, Rank: 1},
			{Key: "History", Count: 3, Rank: 2},
			{Key: "Poetry", Count: 2, Rank: 3},
			{Key: "Science", Count: 1, Rank: 4},
		},
	}

	rep := comp.Compose(testSeller(), snap, nil, time.Now())

	ranking := rep.Sheets[3]
	// filas: título, vacía, encabezado, luego los géneros
	rows := ranking.Rows[3:]
	require.Len(t, rows, 4)
	assert.Equal(t, report.StyleTierGold, rows[0][0].Style)
	assert.Equal(t, report.StyleTierSilver, rows[1][0].Style)
	assert.Equal(t, report.StyleTierBronze, rows[2][0].Style)
	assert.Equal(t, report.StyleDefault, rows[3][0].Style)
}

func TestComposeConditionHighlights(t *testing.T) {
	comp := report.NewComposer()
	rec := testRecord("b1", "Libro maltratado")
	rec.Condition = entity.ConditionPoor

	rep := comp.Compose(testSeller(), &report.Snapshot{}, []repository.InventoryRecord{rec}, time.Now())

	listing := rep.Sheets[1]
	condCell := listing.Rows[1][5]
	assert.Equal(t, "Poor", condCell.Value)
	assert.Equal(t, report.StyleHighlightBad, condCell.Style)
}
