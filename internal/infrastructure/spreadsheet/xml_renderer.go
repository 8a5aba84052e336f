package spreadsheet

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

const (
	xlsContentType = "application/vnd.ms-excel"

	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"
)

// XMLFactory fábrica del renderer fallback. Siempre disponible: es la red de
// seguridad del pipeline y no depende de nada externo.
type XMLFactory struct{}

func (f *XMLFactory) Name() string { return "xml" }
func (f *XMLFactory) Available() bool { return true }
func (f *XMLFactory) New() report.Renderer { return &XMLRenderer{} }

var _ report.Factory = (*XMLFactory)(nil)

// XMLRenderer serializa el inventario como SpreadsheetML 2003 (.xls), el
// formato XML plano que Excel abre sin soporte xlsx. Ignora el reporte
// compuesto y trabaja directo sobre los registros: dos hojas, el listado
// reducido y un resumen recalculado en una sola pasada. etree se encarga del
// escape de caracteres; los títulos con <, & o comillas salen intactos.
type XMLRenderer struct{}

var _ report.Renderer = (*XMLRenderer)(nil)

func (r *XMLRenderer) ContentType() string { return xlsContentType }

func (r *XMLRenderer) Filename(ts time.Time) string {
	return fmt.Sprintf("BookStore_Inventory_Report_%s.xls", ts.Format("2006-01-02"))
}

func (r *XMLRenderer) Render(in *report.RenderInput) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	wb := doc.CreateElement("Workbook")
	wb.CreateAttr("xmlns", nsSpreadsheet)
	wb.CreateAttr("xmlns:o", nsOffice)
	wb.CreateAttr("xmlns:x", nsExcel)
	wb.CreateAttr("xmlns:ss", nsSpreadsheet)

	r.addStyles(wb)
	r.addInventorySheet(wb, in.Records)
	r.addSummarySheet(wb, in)

	doc.Indent(1)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out, nil
}

func (r *XMLRenderer) addStyles(wb *etree.Element) {
	styles := wb.CreateElement("Styles")

	header := styles.CreateElement("Style")
	header.CreateAttr("ss:ID", "Header")
	font := header.CreateElement("Font")
	font.CreateAttr("ss:Bold", "1")
	font.CreateAttr("ss:Color", "#FFFFFF")
	interior := header.CreateElement("Interior")
	interior.CreateAttr("ss:Color", "#4472C4")
	interior.CreateAttr("ss:Pattern", "Solid")

	title := styles.CreateElement("Style")
	title.CreateAttr("ss:ID", "Title")
	tfont := title.CreateElement("Font")
	tfont.CreateAttr("ss:Bold", "1")
	tfont.CreateAttr("ss:Size", "14")
}

// Columnas reducidas del listado fallback. Sin métricas derivadas: el formato
// plano prioriza compatibilidad sobre riqueza.
var inventoryColumns = []string{
	"Title", "Author", "ISBN", "Genre", "Condition", "Price", "Stock", "Added",
}

func (r *XMLRenderer) addInventorySheet(wb *etree.Element, records []repository.InventoryRecord) {
	table := newWorksheet(wb, "Inventory")

	hdr := table.CreateElement("Row")
	for _, col := range inventoryColumns {
		addCell(hdr, "Header", "String", col)
	}

	for i := range records {
		rec := &records[i]
		row := table.CreateElement("Row")
		addCell(row, "", "String", rec.Title)
		addCell(row, "", "String", rec.Author)
		addCell(row, "", "String", strDeref(rec.ISBN))
		addCell(row, "", "String", strDeref(rec.Genre))
		addCell(row, "", "String", rec.Condition)
		addCell(row, "", "Number", rec.Price.StringFixed(2))
		addCell(row, "", "Number", fmt.Sprintf("%d", rec.StockQuantity))
		addCell(row, "", "String", rec.CreatedAt.Format("2006-01-02"))
	}
}

// addSummarySheet recalcula el resumen en una sola pasada sobre los registros.
// No reutiliza el snapshot estadístico: el fallback debe poder producir un
// archivo coherente aunque reciba solo los registros.
func (r *XMLRenderer) addSummarySheet(wb *etree.Element, in *report.RenderInput) {
	table := newWorksheet(wb, "Summary")

	titleRow := table.CreateElement("Row")
	addCell(titleRow, "Title", "String", "BookStore Inventory Report")

	sellerRow := table.CreateElement("Row")
	addCell(sellerRow, "", "String", "Seller")
	addCell(sellerRow, "", "String", in.Seller.DisplayName)

	genRow := table.CreateElement("Row")
	addCell(genRow, "", "String", "Generated")
	addCell(genRow, "", "String", in.GeneratedAt.Format("2006-01-02 15:04"))

	// El valor total es Σ precio, la misma definición que el KPI "Total
	// Inventory Value" del camino rico: ambos formatos reportan el mismo número.
	var (
		totalStock int
		totalValue decimal.Decimal
		minPrice   decimal.Decimal
		maxPrice   decimal.Decimal
	)
	for i := range in.Records {
		rec := &in.Records[i]
		totalStock += rec.StockQuantity
		totalValue = totalValue.Add(rec.Price)
		if i == 0 || rec.Price.LessThan(minPrice) {
			minPrice = rec.Price
		}
		if rec.Price.GreaterThan(maxPrice) {
			maxPrice = rec.Price
		}
	}
	avgPrice := decimal.Zero
	if n := len(in.Records); n > 0 {
		avgPrice = totalValue.Div(decimal.NewFromInt(int64(n))).Round(2)
	}

	metrics := []struct {
		label string
		mtype string
		value string
	}{
		{"Total Books", "Number", fmt.Sprintf("%d", len(in.Records))},
		{"Total Stock", "Number", fmt.Sprintf("%d", totalStock)},
		{"Total Inventory Value", "Number", totalValue.StringFixed(2)},
		{"Average Price", "Number", avgPrice.StringFixed(2)},
		{"Minimum Price", "Number", minPrice.StringFixed(2)},
		{"Maximum Price", "Number", maxPrice.StringFixed(2)},
	}
	for _, m := range metrics {
		row := table.CreateElement("Row")
		addCell(row, "", "String", m.label)
		addCell(row, "", m.mtype, m.value)
	}
}

func newWorksheet(wb *etree.Element, name string) *etree.Element {
	ws := wb.CreateElement("Worksheet")
	ws.CreateAttr("ss:Name", name)
	return ws.CreateElement("Table")
}

func addCell(row *etree.Element, styleID, dataType, value string) {
	cell := row.CreateElement("Cell")
	if styleID != "" {
		cell.CreateAttr("ss:StyleID", styleID)
	}
	data := cell.CreateElement("Data")
	data.CreateAttr("ss:Type", dataType)
	data.SetText(value)
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
