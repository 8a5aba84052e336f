// Package pdf genera el resumen de inventario en PDF para descarga rápida
// desde el panel del vendedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + Vendedor  │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Libros | Stock | Valor | Precio promedio              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Top géneros (libros, valor, precio promedio)         │
//	│  TABLA: Desglose por condición                               │
//	│  TABLA: Bandas de precio                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tendencia mensual (altas, crecimiento %)             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dvalencia/bookstore-api/internal/application/report"
)

const maxGenresInPDF = 5

var (
	colorPrimary = &props.Color{Red: 31, Green: 78, Blue: 121}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoSummaryGenerator implementa report.SummaryPDFGenerator usando Maroto v2.
type MarotoSummaryGenerator struct{}

// NewMarotoSummaryGenerator construye el generador.
func NewMarotoSummaryGenerator() *MarotoSummaryGenerator { return &MarotoSummaryGenerator{} }

var _ report.SummaryPDFGenerator = (*MarotoSummaryGenerator)(nil)

// Generate genera el PDF de resumen y devuelve sus bytes.
func (g *MarotoSummaryGenerator) Generate(seller, store string, snap *report.Snapshot, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("BookStore Inventory Summary", true).
		WithAuthor(seller, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(seller, store, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(snap.Basic))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Top Genres"))
	m.AddRows(genreRows(snap.Genres)...)

	m.AddRows(sectionTitle("Condition Breakdown"))
	m.AddRows(breakdownRows(snap.Conditions)...)

	m.AddRows(sectionTitle("Price Range Distribution"))
	m.AddRows(bucketRows(snap.Buckets)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionTitle("Monthly Trend"))
	m.AddRows(trendRows(snap.Trend)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: tienda + vendedor (izq) y fecha (der).
func headerRow(seller, store string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(store, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Seller: "+seller, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("INVENTORY SUMMARY", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro indicadores principales en una fila.
func kpiRow(b report.BasicStats) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center, Color: colorPrimary,
			}),
		)
	}
	return row.New(14).Add(
		kpi("Total Books", humanize.Comma(int64(b.TotalBooks))),
		kpi("Total Stock", humanize.Comma(int64(b.TotalStock))),
		kpi("Inventory Value", "RM "+b.TotalValue.StringFixed(2)),
		kpi("Average Price", "RM "+b.AvgPrice.StringFixed(2)),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}),
	))
}

func genreRows(genres []report.BreakdownEntry) []core.Row {
	if len(genres) == 0 {
		return []core.Row{noDataRow()}
	}
	if len(genres) > maxGenresInPDF {
		genres = genres[:maxGenresInPDF]
	}
	rows := []core.Row{tableHeader("Genre", "Books", "Total Value", "Avg Price")}
	for _, g := range genres {
		rows = append(rows, tableRow(
			g.Key,
			humanize.Comma(int64(g.Count)),
			"RM "+g.TotalValue.StringFixed(2),
			"RM "+g.AvgPrice.StringFixed(2),
		))
	}
	return rows
}

func breakdownRows(entries []report.BreakdownEntry) []core.Row {
	if len(entries) == 0 {
		return []core.Row{noDataRow()}
	}
	rows := []core.Row{tableHeader("Condition", "Books", "Share", "Total Stock")}
	for _, e := range entries {
		key := e.Key
		if key == "" {
			key = "Not specified"
		}
		rows = append(rows, tableRow(
			key,
			humanize.Comma(int64(e.Count)),
			e.Pct.StringFixed(1)+"%",
			humanize.Comma(int64(e.TotalStock)),
		))
	}
	return rows
}

func bucketRows(buckets []report.PriceBucket) []core.Row {
	if len(buckets) == 0 {
		return []core.Row{noDataRow()}
	}
	rows := []core.Row{tableHeader("Range", "Books", "Share", "Avg Price")}
	for _, b := range buckets {
		rows = append(rows, tableRow(
			b.Label,
			humanize.Comma(int64(b.Count)),
			b.Pct.StringFixed(1)+"%",
			"RM "+b.AvgPrice.StringFixed(2),
		))
	}
	return rows
}

func trendRows(trend []report.TrendEntry) []core.Row {
	if len(trend) == 0 {
		return []core.Row{noDataRow()}
	}
	rows := []core.Row{tableHeader("Month", "Books Added", "Avg Price", "Growth")}
	for _, t := range trend {
		rows = append(rows, tableRow(
			t.Label,
			humanize.Comma(int64(t.BooksAdded)),
			"RM "+t.AvgPrice.StringFixed(2),
			t.GrowthPct.StringFixed(1)+"%",
		))
	}
	return rows
}

// tableHeader: cabecera de cuatro columnas con el mismo reparto que tableRow.
func tableHeader(labels ...string) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values ...string) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(3).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1,
		})))
	}
	return row.New(5).Add(cols...)
}

func noDataRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("No data available", props.Text{Size: 8, Color: colorGray, Top: 1}),
	))
}
