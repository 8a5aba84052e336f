package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de solo lectura sobre el inventario completo.
// Ninguna recibe filtros de listado: las estadísticas del reporte siempre
// reflejan todo el inventario del vendedor.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetBasicStats devuelve los agregados escalares del inventario.
// Usa COALESCE para devolver cero si no hay filas (inventario vacío);
// el promedio nunca divide por cero porque AVG sobre cero filas es NULL.
func (r *StatsRepo) GetBasicStats(ctx context.Context, sellerID string) (repository.BasicStatsResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                                    AS total_books,
	    COALESCE(SUM(price), 0)                                     AS total_value,
	    COALESCE(SUM(cost_price), 0)                                AS total_cost,
	    COALESCE(SUM(stock_quantity), 0)                            AS total_stock,
	    COALESCE(AVG(price), 0)                                     AS avg_price,
	    COALESCE(MIN(price), 0)                                     AS min_price,
	    COALESCE(MAX(price), 0)                                     AS max_price,
	    COALESCE(SUM((price - cost_price) * stock_quantity), 0)     AS potential_profit
	FROM books
	WHERE seller_id = $1`

	var res repository.BasicStatsResult
	err := r.pool.QueryRow(ctx, query, sellerID).Scan(
		&res.TotalBooks, &res.TotalValue, &res.TotalCost, &res.TotalStock,
		&res.AvgPrice, &res.MinPrice, &res.MaxPrice, &res.PotentialProfit,
	)
	if err != nil {
		return repository.BasicStatsResult{}, fmt.Errorf("stats.GetBasicStats: %w", err)
	}
	return res, nil
}

// GetGenreBreakdown agrupa por género, ordenado por count descendente.
// Los géneros vacíos o NULL quedan fuera del breakdown.
func (r *StatsRepo) GetGenreBreakdown(ctx context.Context, sellerID string) ([]repository.CategoryCountResult, error) {
	const query = `
	SELECT
	    genre                            AS key,
	    COUNT(*)                         AS count,
	    COALESCE(SUM(price), 0)          AS total_value,
	    COALESCE(AVG(price), 0)          AS avg_price,
	    COALESCE(SUM(stock_quantity), 0) AS total_stock
	FROM books
	WHERE seller_id = $1 AND genre IS NOT NULL AND genre <> ''
	GROUP BY genre
	ORDER BY COUNT(*) DESC, genre ASC`

	return r.queryBreakdown(ctx, query, sellerID, "GetGenreBreakdown")
}

// GetConditionBreakdown agrupa por condición. A diferencia del breakdown de
// géneros, la condición vacía SÍ aparece como fila propia.
func (r *StatsRepo) GetConditionBreakdown(ctx context.Context, sellerID string) ([]repository.CategoryCountResult, error) {
	const query = `
	SELECT
	    COALESCE(condition, '')          AS key,
	    COUNT(*)                         AS count,
	    COALESCE(SUM(price), 0)          AS total_value,
	    COALESCE(AVG(price), 0)          AS avg_price,
	    COALESCE(SUM(stock_quantity), 0) AS total_stock
	FROM books
	WHERE seller_id = $1
	GROUP BY COALESCE(condition, '')
	ORDER BY COUNT(*) DESC, key ASC`

	return r.queryBreakdown(ctx, query, sellerID, "GetConditionBreakdown")
}

func (r *StatsRepo) queryBreakdown(ctx context.Context, query, sellerID, scope string) ([]repository.CategoryCountResult, error) {
	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("stats.%s: %w", scope, err)
	}
	defer rows.Close()

	var results []repository.CategoryCountResult
	for rows.Next() {
		var row repository.CategoryCountResult
		if err := rows.Scan(&row.Key, &row.Count, &row.TotalValue, &row.AvgPrice, &row.TotalStock); err != nil {
			return nil, fmt.Errorf("stats.%s scan: %w", scope, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyTrend agrupa por mes calendario de creación, últimos `months` meses.
// Devuelve en orden DESCENDENTE (más reciente primero); el agregador es quien
// invierte a orden cronológico antes de calcular crecimientos.
func (r *StatsRepo) GetMonthlyTrend(ctx context.Context, sellerID string, months int) ([]repository.MonthlyCountResult, error) {
	const query = `
	SELECT
	    date_trunc('month', created_at)  AS month,
	    COUNT(*)                         AS books_added,
	    COALESCE(AVG(price), 0)          AS avg_price,
	    COALESCE(SUM(price), 0)          AS total_value
	FROM books
	WHERE seller_id = $1
	  AND created_at >= date_trunc('month', now()) - make_interval(months => $2 - 1)
	GROUP BY date_trunc('month', created_at)
	ORDER BY month DESC`

	rows, err := r.pool.Query(ctx, query, sellerID, months)
	if err != nil {
		return nil, fmt.Errorf("stats.GetMonthlyTrend: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyCountResult
	for rows.Next() {
		var row repository.MonthlyCountResult
		if err := rows.Scan(&row.Month, &row.BooksAdded, &row.AvgPrice, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("stats.GetMonthlyTrend scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetPriceBandStats cuenta y promedia los libros con price ∈ [min, max).
// max nil = sin tope (banda abierta superior).
func (r *StatsRepo) GetPriceBandStats(
	ctx context.Context,
	sellerID string,
	min decimal.Decimal,
	max *decimal.Decimal,
) (int, decimal.Decimal, error) {
	const query = `
	SELECT COUNT(*), COALESCE(AVG(price), 0)
	FROM books
	WHERE seller_id = $1
	  AND price >= $2
	  AND ($3::numeric IS NULL OR price < $3)`

	var count int
	var avg decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, sellerID, min, max).Scan(&count, &avg); err != nil {
		return 0, decimal.Zero, fmt.Errorf("stats.GetPriceBandStats: %w", err)
	}
	return count, avg, nil
}
