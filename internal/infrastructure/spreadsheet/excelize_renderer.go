// Package spreadsheet contiene los renderers de archivo del motor de reportes:
// el rico (xlsx vía excelize) y el fallback (SpreadsheetML 2003 vía etree).
package spreadsheet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dvalencia/bookstore-api/internal/application/report"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	currencyNumFmt = `"RM" #,##0.00`
	percentNumFmt  = `0.0"%"`
)

// ExcelizeFactory fábrica del renderer rico. Disabled permite apagarlo por
// configuración (REPORT_RICH_DISABLED) para forzar el fallback; además del
// switch, Available ejecuta un sondeo real: crea un libro mínimo en memoria y
// lo serializa. Si la librería no puede producir bytes, la fábrica se reporta
// no disponible y el pipeline cae al siguiente renderer.
type ExcelizeFactory struct {
	Disabled bool
}

func (f *ExcelizeFactory) Name() string { return "xlsx" }

func (f *ExcelizeFactory) Available() bool {
	if f.Disabled {
		return false
	}
	probe := excelize.NewFile()
	defer probe.Close()
	if _, err := probe.WriteToBuffer(); err != nil {
		return false
	}
	return true
}

func (f *ExcelizeFactory) New() report.Renderer { return &ExcelizeRenderer{} }

var _ report.Factory = (*ExcelizeFactory)(nil)

// ExcelizeRenderer serializa el reporte compuesto a un .xlsx con estilos:
// encabezados con relleno, formatos de moneda y porcentaje, resaltado por
// condición, medallas del ranking y panel congelado en el listado.
type ExcelizeRenderer struct{}

var _ report.Renderer = (*ExcelizeRenderer)(nil)

func (r *ExcelizeRenderer) ContentType() string { return xlsxContentType }

func (r *ExcelizeRenderer) Filename(ts time.Time) string {
	return fmt.Sprintf("BookStore_Inventory_Report_%s_%s.xlsx",
		ts.Format("2006-01-02"), ts.Format("150405"))
}

func (r *ExcelizeRenderer) Render(in *report.RenderInput) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("excelize: estilos: %w", err)
	}

	for i, sheet := range in.Report.Sheets {
		if i == 0 {
			// excelize arranca con "Sheet1"; la primera hoja lo renombra.
			if err := f.SetSheetName("Sheet1", sheet.Title); err != nil {
				return nil, fmt.Errorf("excelize: hoja %q: %w", sheet.Title, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Title); err != nil {
				return nil, fmt.Errorf("excelize: hoja %q: %w", sheet.Title, err)
			}
		}
		if err := r.renderSheet(f, styles, sheet); err != nil {
			return nil, fmt.Errorf("excelize: hoja %q: %w", sheet.Title, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:     in.Seller.DisplayName,
		Title:       "BookStore Inventory Report",
		Subject:     in.Seller.StoreName,
		Description: fmt.Sprintf("Inventory report generated %s", in.GeneratedAt.Format("2006-01-02 15:04")),
		Category:    "Inventory",
	}); err != nil {
		return nil, fmt.Errorf("excelize: propiedades: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excelize: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ExcelizeRenderer) renderSheet(f *excelize.File, styles *styleSet, sheet report.Sheet) error {
	widths := map[int]float64{}

	maxCols := 0
	for _, row := range sheet.Rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}

	for ri, row := range sheet.Rows {
		for ci, cell := range row {
			name, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return err
			}
			// Las filas de título de una sola celda se fusionan a lo ancho
			// de la tabla.
			if cell.Style == report.StyleTitle && len(row) == 1 && maxCols > 1 {
				end, err := excelize.CoordinatesToCellName(maxCols, ri+1)
				if err != nil {
					return err
				}
				if err := f.MergeCell(sheet.Title, name, end); err != nil {
					return err
				}
			}
			if err := f.SetCellValue(sheet.Title, name, cellValue(cell)); err != nil {
				return err
			}
			if id := styles.idFor(cell); id != 0 {
				if err := f.SetCellStyle(sheet.Title, name, name, id); err != nil {
					return err
				}
			}
			if w := displayWidth(cell); w > widths[ci] {
				widths[ci] = w
			}
		}
	}

	for ci, w := range widths {
		col, err := excelize.ColumnNumberToName(ci + 1)
		if err != nil {
			return err
		}
		if w < 10 {
			w = 10
		}
		if w > 50 {
			w = 50
		}
		if err := f.SetColWidth(sheet.Title, col, col, w+2); err != nil {
			return err
		}
	}

	if sheet.Freeze && sheet.HeaderRow > 0 {
		topLeft, err := excelize.CoordinatesToCellName(1, sheet.HeaderRow+1)
		if err != nil {
			return err
		}
		if err := f.SetPanes(sheet.Title, &excelize.Panes{
			Freeze:      true,
			YSplit:      sheet.HeaderRow,
			TopLeftCell: topLeft,
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}
	return nil
}

// cellValue convierte el valor neutral a algo que excelize sabe escribir.
// Los decimales van como float para que el formato numérico aplique.
func cellValue(c report.Cell) any {
	switch v := c.Value.(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case time.Time:
		return formatCellTime(v)
	default:
		return v
	}
}

// formatCellTime fechas con hora conservan la hora (el sello de generación del
// dashboard); la medianoche exacta se trata como fecha pura.
func formatCellTime(v time.Time) string {
	if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
		return v.Format("2006-01-02")
	}
	return v.Format("2006-01-02 15:04")
}

func displayWidth(c report.Cell) float64 {
	var s string
	switch v := c.Value.(type) {
	case string:
		s = v
	case decimal.Decimal:
		s = "RM " + v.StringFixed(2)
	case time.Time:
		s = formatCellTime(v)
	default:
		s = fmt.Sprint(v)
	}
	return float64(len([]rune(s)))
}

// styleSet IDs de estilo precalculados por combinación (Style, CellType).
// excelize identifica estilos por ID entero dentro del archivo, así que se
// registran una vez por documento y se reutilizan en todas las celdas.
type styleSet struct {
	f     *excelize.File
	cache map[styleKey]int
}

type styleKey struct {
	style report.Style
	ctype report.CellType
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	return &styleSet{f: f, cache: map[styleKey]int{}}, nil
}

func (s *styleSet) idFor(c report.Cell) int {
	key := styleKey{style: c.Style, ctype: c.Type}
	if id, ok := s.cache[key]; ok {
		return id
	}
	id, err := s.f.NewStyle(buildStyle(c.Style, c.Type))
	if err != nil {
		// Estilo inválido degrada a celda sin formato; el contenido no se pierde.
		id = 0
	}
	s.cache[key] = id
	return id
}

func buildStyle(st report.Style, ct report.CellType) *excelize.Style {
	out := &excelize.Style{}

	// Toda celda poblada lleva borde fino; los títulos fusionados quedan libres.
	if st != report.StyleTitle {
		out.Border = thinBorder()
	}

	switch ct {
	case report.TypeCurrency:
		fmtStr := currencyNumFmt
		out.CustomNumFmt = &fmtStr
	case report.TypePercent:
		fmtStr := percentNumFmt
		out.CustomNumFmt = &fmtStr
	}

	switch st {
	case report.StyleTitle:
		out.Font = &excelize.Font{Bold: true, Size: 16, Color: "1F4E79"}
	case report.StyleHeader:
		out.Font = &excelize.Font{Bold: true, Color: "FFFFFF"}
		out.Fill = excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1}
		out.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	case report.StyleHighlightGood:
		out.Fill = excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1}
		out.Font = &excelize.Font{Color: "006100"}
	case report.StyleHighlightWarn:
		out.Fill = excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1}
		out.Font = &excelize.Font{Color: "9C6500"}
	case report.StyleHighlightBad:
		out.Fill = excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1}
		out.Font = &excelize.Font{Color: "9C0006"}
	case report.StyleTierGold:
		out.Fill = excelize.Fill{Type: "pattern", Color: []string{"FFD700"}, Pattern: 1}
		out.Font = &excelize.Font{Bold: true}
	case report.StyleTierSilver:
		out.Fill = excelize.Fill{Type: "pattern", Color: []string{"C0C0C0"}, Pattern: 1}
		out.Font = &excelize.Font{Bold: true}
	case report.StyleTierBronze:
		out.Fill = excelize.Fill{Type: "pattern", Color: []string{"CD7F32"}, Pattern: 1}
		out.Font = &excelize.Font{Bold: true}
	}

	return out
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		borders = append(borders, excelize.Border{Type: s, Color: "D9D9D9", Style: 1})
	}
	return borders
}
