package report

import (
	"time"

	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

const (
	topGenresDashboard = 5
	descriptionMaxLen  = 500
)

// Composer arma las cinco hojas lógicas del reporte a partir del Snapshot
// agregado (inventario completo) y del listado filtrado de registros.
//
// Asimetría intencional: los filtros del request afectan SOLO a la hoja de
// listado; Dashboard, Analytics, Genre Ranking y Monthly Trends se calculan
// siempre sobre el inventario completo del vendedor.
type Composer struct{}

// NewComposer construye el compositor.
func NewComposer() *Composer { return &Composer{} }

// Compose construye el reporte de cinco hojas.
func (c *Composer) Compose(
	seller *entity.Seller,
	snap *Snapshot,
	records []repository.InventoryRecord,
	now time.Time,
) *Report {
	return &Report{
		SellerName:  seller.DisplayName,
		StoreName:   seller.StoreName,
		GeneratedAt: now,
		Sheets: []Sheet{
			c.dashboardSheet(seller, snap, now),
			c.listingSheet(records),
			c.analyticsSheet(snap),
			c.rankingSheet(snap),
			c.trendSheet(snap),
		},
	}
}

// dashboardSheet hoja resumen: identidad, KPIs, análisis de precios y top géneros.
func (c *Composer) dashboardSheet(seller *entity.Seller, snap *Snapshot, now time.Time) Sheet {
	b := snap.Basic
	rows := [][]Cell{
		{titleCell("BookStore Inventory Report")},
		{textCell("Seller"), textCell(seller.DisplayName)},
		{textCell("Generated"), dateCell(now)},
		{},
		{headerCell("Key Performance Indicators")},
		{textCell("Total Books"), numberCell(b.TotalBooks)},
		{textCell("Total Inventory Value"), currencyCell(b.TotalValue)},
		{textCell("Total Stock"), numberCell(b.TotalStock)},
		{textCell("Average Price"), currencyCell(b.AvgPrice)},
		{},
		{headerCell("Price Analysis")},
		{textCell("Minimum Price"), currencyCell(b.MinPrice)},
		{textCell("Maximum Price"), currencyCell(b.MaxPrice)},
		{textCell("Price Spread"), currencyCell(b.MaxPrice.Sub(b.MinPrice))},
		{textCell("Potential Profit"), currencyCell(b.PotentialProfit)},
		{},
		{headerCell("Top 5 Genres")},
		{headerCell("Genre"), headerCell("Books"), headerCell("Total Value"), headerCell("Avg Price")},
	}

	if len(snap.Genres) == 0 {
		rows = append(rows, noDataRow())
	} else {
		top := snap.Genres
		if len(top) > topGenresDashboard {
			top = top[:topGenresDashboard]
		}
		for _, g := range top {
			rows = append(rows, []Cell{
				textCell(g.Key),
				numberCell(g.Count),
				currencyCell(g.TotalValue),
				currencyCell(g.AvgPrice),
			})
		}
	}

	return Sheet{Title: "Dashboard", Rows: rows}
}

// listingSheet hoja de listado completo: una fila por libro, 16 columnas.
// Esta es la única hoja que respeta los filtros del request.
func (c *Composer) listingSheet(records []repository.InventoryRecord) Sheet {
	rows := [][]Cell{{
		headerCell("ID"), headerCell("Title"), headerCell("Author"),
		headerCell("ISBN"), headerCell("Genre"), headerCell("Condition"),
		headerCell("Price"), headerCell("Cost"), headerCell("Stock"),
		headerCell("Profit Margin"), headerCell("Rating"), headerCell("Reviews"),
		headerCell("Total Sold"), headerCell("Created"), headerCell("Updated"),
		headerCell("Description"),
	}}

	if len(records) == 0 {
		rows = append(rows, noDataRow())
	}
	for _, rec := range records {
		condition := Cell{
			Value: humanizeCondition(rec.Condition),
			Type:  TypeText,
			Style: conditionStyle(rec.Condition),
		}
		rows = append(rows, []Cell{
			textCell(rec.ID),
			textCell(rec.Title),
			textCell(rec.Author),
			textCell(strOr(rec.ISBN, "Not specified")),
			textCell(strOr(rec.Genre, "Not categorized")),
			condition,
			currencyCell(rec.Price),
			currencyCell(rec.CostPrice),
			numberCell(rec.StockQuantity),
			percentCell(rec.ProfitMargin),
			decimalCell(rec.AvgRating.Round(1)),
			numberCell(rec.ReviewCount),
			numberCell(rec.TotalSold),
			textCell(rec.CreatedAt.Format("2006-01-02")),
			textCell(rec.UpdatedAt.Format("2006-01-02")),
			textCell(truncate(rec.Description, descriptionMaxLen)),
		})
	}

	return Sheet{Title: "Inventory", HeaderRow: 1, Freeze: true, Rows: rows}
}

// analyticsSheet breakdown por condición y distribución por bandas de precio,
// ambos con columna de participación porcentual.
func (c *Composer) analyticsSheet(snap *Snapshot) Sheet {
	rows := [][]Cell{
		{titleCell("Inventory Analytics")},
		{},
		{headerCell("Condition Breakdown")},
		{headerCell("Condition"), headerCell("Books"), headerCell("Percentage"), headerCell("Total Value"), headerCell("Avg Price")},
	}

	if len(snap.Conditions) == 0 {
		rows = append(rows, noDataRow())
	}
	for _, cond := range snap.Conditions {
		rows = append(rows, []Cell{
			textCell(humanizeCondition(cond.Key)),
			numberCell(cond.Count),
			percentCell(cond.Pct),
			currencyCell(cond.TotalValue),
			currencyCell(cond.AvgPrice),
		})
	}

	rows = append(rows,
		[]Cell{},
		[]Cell{headerCell("Price Range Distribution")},
		[]Cell{headerCell("Price Range"), headerCell("Books"), headerCell("Percentage"), headerCell("Avg Price")},
	)

	if len(snap.Buckets) == 0 {
		rows = append(rows, noDataRow())
	}
	for _, bucket := range snap.Buckets {
		rows = append(rows, []Cell{
			textCell(bucket.Label),
			numberCell(bucket.Count),
			percentCell(bucket.Pct),
			currencyCell(bucket.AvgPrice),
		})
	}

	return Sheet{Title: "Analytics", Rows: rows}
}

// rankingSheet géneros ordenados 1..N por count, con market share.
// Los tres primeros puestos llevan resaltado de podio.
func (c *Composer) rankingSheet(snap *Snapshot) Sheet {
	rows := [][]Cell{
		{titleCell("Genre Ranking")},
		{},
		{headerCell("Rank"), headerCell("Genre"), headerCell("Books"), headerCell("Market Share"), headerCell("Total Value"), headerCell("Avg Price")},
	}

	if len(snap.Genres) == 0 {
		rows = append(rows, noDataRow())
	}
	for _, g := range snap.Genres {
		style := tierStyle(g.Rank)
		rows = append(rows, []Cell{
			{Value: g.Rank, Type: TypeNumber, Style: style},
			{Value: g.Key, Type: TypeText, Style: style},
			numberCell(g.Count),
			percentCell(g.Pct),
			currencyCell(g.TotalValue),
			currencyCell(g.AvgPrice),
		})
	}

	return Sheet{Title: "Genre Ranking", Rows: rows}
}

// trendSheet meses en orden cronológico con el crecimiento ya precalculado
// por el agregador (el mes más antiguo siempre 0).
func (c *Composer) trendSheet(snap *Snapshot) Sheet {
	rows := [][]Cell{
		{titleCell("Monthly Trends")},
		{},
		{headerCell("Month"), headerCell("Books Added"), headerCell("Avg Price"), headerCell("Total Value"), headerCell("Growth")},
	}

	if len(snap.Trend) == 0 {
		rows = append(rows, noDataRow())
	}
	for _, month := range snap.Trend {
		rows = append(rows, []Cell{
			textCell(month.Label),
			numberCell(month.BooksAdded),
			currencyCell(month.AvgPrice),
			currencyCell(month.TotalValue),
			percentCell(month.GrowthPct),
		})
	}

	return Sheet{Title: "Monthly Trends", Rows: rows}
}

// ── helpers ───────────────────────────────────────────────────────────────────

var conditionLabels = map[string]string{
	entity.ConditionNew:        "New",
	entity.ConditionLikeNew:    "Like New",
	entity.ConditionGood:       "Good",
	entity.ConditionAcceptable: "Acceptable",
	entity.ConditionPoor:       "Poor",
}

// humanizeCondition etiqueta legible de la condición; vacía = "Not specified".
func humanizeCondition(cond string) string {
	if label, ok := conditionLabels[cond]; ok {
		return label
	}
	if cond == "" {
		return "Not specified"
	}
	return cond
}

// conditionStyle mapeo condición → clase de resaltado del listado.
func conditionStyle(cond string) Style {
	switch cond {
	case entity.ConditionNew, entity.ConditionLikeNew:
		return StyleHighlightGood
	case entity.ConditionAcceptable:
		return StyleHighlightWarn
	case entity.ConditionPoor:
		return StyleHighlightBad
	default:
		return StyleDefault
	}
}

func tierStyle(rank int) Style {
	switch rank {
	case 1:
		return StyleTierGold
	case 2:
		return StyleTierSilver
	case 3:
		return StyleTierBronze
	default:
		return StyleDefault
	}
}

func strOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

// truncate corta por runas para no partir caracteres multibyte.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
