package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BasicStatsResult métricas escalares del inventario completo de un vendedor.
// Todas las sumas/promedios llegan en 0 (nunca NULL) si el inventario está vacío.
type BasicStatsResult struct {
	TotalBooks      int
	TotalValue      decimal.Decimal // Σ price
	TotalCost       decimal.Decimal // Σ cost_price
	TotalStock      int
	AvgPrice        decimal.Decimal
	MinPrice        decimal.Decimal
	MaxPrice        decimal.Decimal
	PotentialProfit decimal.Decimal // Σ (price - cost_price) * stock_quantity
}

// CategoryCountResult una fila de breakdown agrupado por una dimensión
// categórica (género o condición), ordenado por count descendente en SQL.
type CategoryCountResult struct {
	Key        string
	Count      int
	TotalValue decimal.Decimal
	AvgPrice   decimal.Decimal
	TotalStock int
}

// MonthlyCountResult libros agregados en un mes calendario.
// La consulta devuelve los meses en orden descendente (más reciente primero).
type MonthlyCountResult struct {
	Month      time.Time // primer día del mes
	BooksAdded int
	AvgPrice   decimal.Decimal
	TotalValue decimal.Decimal
}

// StatsRepository puerto de consultas agregadas de solo lectura.
// Todas operan sobre el inventario COMPLETO del vendedor, sin filtros.
type StatsRepository interface {
	GetBasicStats(ctx context.Context, sellerID string) (BasicStatsResult, error)
	// GetGenreBreakdown excluye géneros vacíos/NULL.
	GetGenreBreakdown(ctx context.Context, sellerID string) ([]CategoryCountResult, error)
	// GetConditionBreakdown incluye la condición vacía como fila propia.
	GetConditionBreakdown(ctx context.Context, sellerID string) ([]CategoryCountResult, error)
	GetMonthlyTrend(ctx context.Context, sellerID string, months int) ([]MonthlyCountResult, error)
	// GetPriceBandStats cuenta y promedia los libros con price en [min, max).
	// max nil significa sin tope superior.
	GetPriceBandStats(ctx context.Context, sellerID string, min decimal.Decimal, max *decimal.Decimal) (count int, avgPrice decimal.Decimal, err error)
}
