package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

const defaultTrendMonths = 12

var hundred = decimal.NewFromInt(100)

// BasicStats agregados escalares del inventario, siempre en cero (nunca null)
// para un inventario vacío.
type BasicStats struct {
	TotalBooks      int             `json:"total_books"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	TotalStock      int             `json:"total_stock"`
	AvgPrice        decimal.Decimal `json:"avg_price"`
	MinPrice        decimal.Decimal `json:"min_price"`
	MaxPrice        decimal.Decimal `json:"max_price"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

// BreakdownEntry una fila de breakdown por dimensión categórica, con el
// porcentaje y el rank ya calculados para que ambos renderers (y el dashboard
// JSON) consuman exactamente los mismos derivados.
type BreakdownEntry struct {
	Key        string          `json:"key"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
	AvgPrice   decimal.Decimal `json:"avg_price"`
	TotalStock int             `json:"total_stock"`
	Pct        decimal.Decimal `json:"pct"`  // participación % sobre total de libros
	Rank       int             `json:"rank"` // 1 = mayor count; empates conservan el orden de la consulta
}

// TrendEntry un mes de la tendencia, en orden CRONOLÓGICO ascendente.
// GrowthPct compara books_added contra el mes cronológicamente anterior;
// el mes más antiguo siempre tiene 0 (no hay línea base).
type TrendEntry struct {
	Month      time.Time       `json:"-"`
	Label      string          `json:"month_label"` // ej. "Aug 2026"
	BooksAdded int             `json:"books_added"`
	AvgPrice   decimal.Decimal `json:"avg_price"`
	TotalValue decimal.Decimal `json:"total_value"`
	GrowthPct  decimal.Decimal `json:"growth_pct"`
}

// PriceBucket banda fija de precio [Min, Max). Max nil = sin tope.
// Las cinco bandas particionan el inventario completo sin traslapes ni huecos.
type PriceBucket struct {
	Label    string           `json:"label"`
	Min      decimal.Decimal  `json:"min"`
	Max      *decimal.Decimal `json:"max,omitempty"`
	Count    int              `json:"count"`
	AvgPrice decimal.Decimal  `json:"avg_price"`
	Pct      decimal.Decimal  `json:"pct"`
}

// Snapshot estadísticas completas del inventario de un vendedor, calculadas
// siempre sobre el inventario SIN filtrar. Transitorio por request.
type Snapshot struct {
	Basic      BasicStats       `json:"basic_stats"`
	Genres     []BreakdownEntry `json:"genre_breakdown"`
	Conditions []BreakdownEntry `json:"condition_breakdown"`
	Trend      []TrendEntry     `json:"monthly_trend"`
	Buckets    []PriceBucket    `json:"price_buckets"`
}

// Bandas de precio fijas del reporte. Límite superior exclusivo.
var priceBands = []struct {
	Label string
	Min   int64
	Max   int64 // 0 = sin tope
}{
	{"Under RM25", 0, 25},
	{"RM25-50", 25, 50},
	{"RM50-100", 50, 100},
	{"RM100-200", 100, 200},
	{"Over RM200", 200, 0},
}

// Aggregator calcula el Snapshot estadístico del inventario.
// Todas las consultas son secuenciales y cualquier fallo aborta el pipeline
// completo: no existe agregación parcial.
type Aggregator struct {
	stats       repository.StatsRepository
	trendMonths int
}

// NewAggregator construye el agregador. months <= 0 usa el default (12).
func NewAggregator(stats repository.StatsRepository, months int) *Aggregator {
	if months <= 0 {
		months = defaultTrendMonths
	}
	return &Aggregator{stats: stats, trendMonths: months}
}

// Snapshot ejecuta las consultas agregadas y deriva porcentajes, ranks y
// crecimientos. Los derivados se calculan aquí, una sola vez, para que los
// renderers no repitan aritmética.
func (a *Aggregator) Snapshot(ctx context.Context, sellerID string) (*Snapshot, error) {
	basicRes, err := a.stats.GetBasicStats(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("aggregator: básicos: %w", err)
	}
	basic := BasicStats{
		TotalBooks:      basicRes.TotalBooks,
		TotalValue:      basicRes.TotalValue.Round(2),
		TotalCost:       basicRes.TotalCost.Round(2),
		TotalStock:      basicRes.TotalStock,
		AvgPrice:        basicRes.AvgPrice.Round(2),
		MinPrice:        basicRes.MinPrice.Round(2),
		MaxPrice:        basicRes.MaxPrice.Round(2),
		PotentialProfit: basicRes.PotentialProfit.Round(2),
	}

	genreRows, err := a.stats.GetGenreBreakdown(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("aggregator: géneros: %w", err)
	}
	condRows, err := a.stats.GetConditionBreakdown(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("aggregator: condiciones: %w", err)
	}
	trendRows, err := a.stats.GetMonthlyTrend(ctx, sellerID, a.trendMonths)
	if err != nil {
		return nil, fmt.Errorf("aggregator: tendencia mensual: %w", err)
	}

	buckets := make([]PriceBucket, 0, len(priceBands))
	for _, band := range priceBands {
		min := decimal.NewFromInt(band.Min)
		var max *decimal.Decimal
		if band.Max > 0 {
			m := decimal.NewFromInt(band.Max)
			max = &m
		}
		count, avg, err := a.stats.GetPriceBandStats(ctx, sellerID, min, max)
		if err != nil {
			return nil, fmt.Errorf("aggregator: banda %s: %w", band.Label, err)
		}
		buckets = append(buckets, PriceBucket{
			Label:    band.Label,
			Min:      min,
			Max:      max,
			Count:    count,
			AvgPrice: avg.Round(2),
			Pct:      pctOf(count, basic.TotalBooks),
		})
	}

	return &Snapshot{
		Basic:      basic,
		Genres:     buildBreakdown(genreRows, basic.TotalBooks),
		Conditions: buildBreakdown(condRows, basic.TotalBooks),
		Trend:      buildTrend(trendRows),
		Buckets:    buckets,
	}, nil
}

// buildBreakdown enriquece las filas agrupadas con porcentaje y rank.
// El orden de la consulta (count DESC) se conserva tal cual: los empates
// mantienen su posición original.
func buildBreakdown(rows []repository.CategoryCountResult, totalBooks int) []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, BreakdownEntry{
			Key:        row.Key,
			Count:      row.Count,
			TotalValue: row.TotalValue.Round(2),
			AvgPrice:   row.AvgPrice.Round(2),
			TotalStock: row.TotalStock,
			Pct:        pctOf(row.Count, totalBooks),
			Rank:       i + 1,
		})
	}
	return entries
}

// buildTrend invierte las filas (la consulta llega descendente) a orden
// cronológico y calcula el crecimiento contra el mes inmediatamente anterior.
// Un mes anterior con 0 libros no produce crecimiento (evita división por cero).
func buildTrend(rows []repository.MonthlyCountResult) []TrendEntry {
	entries := make([]TrendEntry, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		entries = append(entries, TrendEntry{
			Month:      row.Month,
			Label:      row.Month.Format("Jan 2006"),
			BooksAdded: row.BooksAdded,
			AvgPrice:   row.AvgPrice.Round(2),
			TotalValue: row.TotalValue.Round(2),
			GrowthPct:  decimal.Zero,
		})
	}
	for i := 1; i < len(entries); i++ {
		prev := entries[i-1].BooksAdded
		if prev > 0 {
			diff := decimal.NewFromInt(int64(entries[i].BooksAdded - prev))
			entries[i].GrowthPct = diff.Div(decimal.NewFromInt(int64(prev))).Mul(hundred).Round(1)
		}
	}
	return entries
}

// pctOf participación porcentual de count sobre total, 1 decimal, 0 si total es 0.
func pctOf(count, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(count)).Div(decimal.NewFromInt(int64(total))).Mul(hundred).Round(1)
}
