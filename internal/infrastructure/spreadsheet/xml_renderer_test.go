package spreadsheet_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
	"github.com/dvalencia/bookstore-api/internal/infrastructure/spreadsheet"
)

func TestXMLFactoryAlwaysAvailable(t *testing.T) {
	f := &spreadsheet.XMLFactory{}
	assert.True(t, f.Available())
	assert.Equal(t, "xml", f.Name())
}

func TestXMLRendererEscapesMarkupInTitles(t *testing.T) {
	rec := sampleRecord("b1", `<script>alert("x")</script> & Co.`)
	out := mustRenderXML(t, rec)

	s := string(out)
	assert.NotContains(t, s, "<script>", "el markup del título debe salir escapado")
	assert.Contains(t, s, "&lt;script&gt;")
	assert.Contains(t, s, "&amp; Co.")

	// El documento sigue siendo XML válido y el título se recupera intacto.
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	data := doc.FindElement("//Worksheet/Table/Row[2]/Cell[1]/Data")
	require.NotNil(t, data)
	assert.Equal(t, `<script>alert("x")</script> & Co.`, data.Text())
}

func TestXMLRendererEmptyInventoryStillValid(t *testing.T) {
	out := mustRenderXML(t)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	worksheets := doc.FindElements("//Worksheet")
	require.Len(t, worksheets, 2)
	assert.Equal(t, "Inventory", worksheets[0].SelectAttrValue("ss:Name", ""))
	assert.Equal(t, "Summary", worksheets[1].SelectAttrValue("ss:Name", ""))

	// El resumen reporta cero libros, no celdas rotas.
	s := string(out)
	assert.Contains(t, s, "Total Books")
	assert.Contains(t, s, "mso-application")
}

func TestXMLRendererSummaryRecomputedFromRecords(t *testing.T) {
	r1 := sampleRecord("b1", "Libro uno")
	r1.Price = decimal.NewFromInt(10)
	r1.StockQuantity = 2
	r2 := sampleRecord("b2", "Libro dos")
	r2.Price = decimal.NewFromInt(30)
	r2.StockQuantity = 1

	out := mustRenderXML(t, r1, r2)
	s := string(out)

	// valor total = Σ precio = 10 + 30 = 40; promedio = 20. Misma definición
	// que el KPI del dashboard rico, sin ponderar por stock.
	assert.Contains(t, s, "40.00")
	assert.Contains(t, s, "20.00")
	assert.NotContains(t, s, "50.00", "el valor total no se pondera por stock")
}

func TestXMLRendererMetadata(t *testing.T) {
	r := &spreadsheet.XMLRenderer{}
	assert.Equal(t, "application/vnd.ms-excel", r.ContentType())

	ts := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "BookStore_Inventory_Report_2026-08-28.xls", r.Filename(ts))
}

// ──────────────────────────────────────────────────────────────────────────────
// helpers
// ──────────────────────────────────────────────────────────────────────────────

func mustRenderXML(t *testing.T, records ...repository.InventoryRecord) []byte {
	t.Helper()
	r := &spreadsheet.XMLRenderer{}
	out, err := r.Render(&report.RenderInput{
		Seller:      &entity.Seller{DisplayName: "Daniela Valencia", StoreName: "Valencia Books"},
		Records:     records,
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	return out
}

func sampleRecord(id, title string) repository.InventoryRecord {
	return repository.InventoryRecord{
		ID:            id,
		Title:         title,
		Author:        "Anonymous",
		Condition:     entity.ConditionGood,
		Price:         decimal.NewFromInt(25),
		StockQuantity: 1,
		CreatedAt:     time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
	}
}
