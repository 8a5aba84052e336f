// Package report implementa el motor de reportes de inventario: agregación de
// estadísticas, composición de hojas y despacho al renderer disponible
// (xlsx enriquecido o fallback XML).
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// CellType tipo lógico del valor de una celda. Los renderers deciden el
// formato concreto (moneda, porcentaje, fecha) a partir de este tipo.
type CellType int

const (
	TypeText CellType = iota
	TypeNumber
	TypeCurrency
	TypePercent
	TypeDate
)

// Style pista de estilo de una celda. El modelo es neutral: el renderer rico
// la traduce a estilos xlsx y el fallback la ignora (salvo el header).
type Style int

const (
	StyleDefault Style = iota
	StyleTitle
	StyleHeader
	StyleHighlightGood // condición new / like_new
	StyleHighlightWarn // condición acceptable
	StyleHighlightBad  // condición poor
	StyleTierGold      // ranking puesto 1
	StyleTierSilver    // ranking puesto 2
	StyleTierBronze    // ranking puesto 3
)

// Cell una celda tipada, opcionalmente estilizada.
// Value debe ser string, int, decimal.Decimal o time.Time según Type.
type Cell struct {
	Value any
	Type  CellType
	Style Style
}

// Sheet una hoja lógica del reporte: título + grilla de celdas.
type Sheet struct {
	Title     string
	HeaderRow int  // fila 1-based del encabezado de tabla; 0 = sin encabezado
	Freeze    bool // congelar filas hasta HeaderRow (hoja de listado)
	Rows      [][]Cell
}

// Report lista ordenada de hojas más metadatos del documento.
// Es transitorio por request: se compone, se renderiza y se descarta.
type Report struct {
	SellerName  string
	StoreName   string
	GeneratedAt time.Time
	Sheets      []Sheet
}

// ── constructores de celdas ───────────────────────────────────────────────────

func textCell(s string) Cell { return Cell{Value: s, Type: TypeText} }
func titleCell(s string) Cell { return Cell{Value: s, Type: TypeText, Style: StyleTitle} }
func headerCell(s string) Cell { return Cell{Value: s, Type: TypeText, Style: StyleHeader} }
func numberCell(n int) Cell { return Cell{Value: n, Type: TypeNumber} }
func decimalCell(d decimal.Decimal) Cell { return Cell{Value: d, Type: TypeNumber} }
func currencyCell(d decimal.Decimal) Cell { return Cell{Value: d, Type: TypeCurrency} }
func percentCell(d decimal.Decimal) Cell { return Cell{Value: d, Type: TypePercent} }
func dateCell(t time.Time) Cell { return Cell{Value: t, Type: TypeDate} }

// noDataRow fila única que reemplaza una tabla sin datos: las hojas siempre
// renderizan algo válido, nunca una tabla rota.
func noDataRow() []Cell {
	return []Cell{textCell("No data available")}
}
