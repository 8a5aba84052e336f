package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dvalencia/bookstore-api/internal/application/report"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
	"github.com/dvalencia/bookstore-api/internal/infrastructure/spreadsheet"
)

func TestExcelizeFactoryProbe(t *testing.T) {
	f := &spreadsheet.ExcelizeFactory{}
	assert.True(t, f.Available())
	assert.Equal(t, "xlsx", f.Name())
}

func TestExcelizeFactoryDisabledByConfig(t *testing.T) {
	f := &spreadsheet.ExcelizeFactory{Disabled: true}
	assert.False(t, f.Available(), "la fábrica apagada por configuración nunca está disponible")
}

func TestExcelizeRendererWritesAllSheets(t *testing.T) {
	out := mustRenderXLSX(t, sampleRecord("b1", "Cien años de soledad"))

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Dashboard", "Inventory", "Analytics", "Genre Ranking", "Monthly Trends"}, f.GetSheetList())
}

func TestExcelizeRendererListingContent(t *testing.T) {
	out := mustRenderXLSX(t,
		sampleRecord("b1", "Cien años de soledad"),
		sampleRecord("b2", "Pedro Páramo"),
	)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	// encabezado + 2 registros
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "b1", rows[1][0])
	assert.Equal(t, "Pedro Páramo", rows[2][1])
}

func TestExcelizeRendererDocProps(t *testing.T) {
	out := mustRenderXLSX(t)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Daniela Valencia", props.Creator)
	assert.Equal(t, "BookStore Inventory Report", props.Title)
}

func TestExcelizeRendererGeneratedCellKeepsTime(t *testing.T) {
	seller := &entity.Seller{DisplayName: "Daniela Valencia", StoreName: "Valencia Books"}
	snap := &report.Snapshot{}
	ts := time.Date(2026, time.August, 28, 15, 4, 0, 0, time.UTC)
	rep := report.NewComposer().Compose(seller, snap, nil, ts)

	r := &spreadsheet.ExcelizeRenderer{}
	out, err := r.Render(&report.RenderInput{
		Seller:      seller,
		Report:      rep,
		Snapshot:    snap,
		GeneratedAt: ts,
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	// Fila "Generated" del dashboard: el sello conserva la hora, no solo la fecha.
	label, err := f.GetCellValue("Dashboard", "A3")
	require.NoError(t, err)
	require.Equal(t, "Generated", label)

	value, err := f.GetCellValue("Dashboard", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28 15:04", value)
}

func TestExcelizeRendererDataCellsHaveBorders(t *testing.T) {
	out := mustRenderXLSX(t, sampleRecord("b1", "Cien años de soledad"))

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	// Una celda de datos común (título del primer registro) lleva borde fino.
	styleID, err := f.GetCellStyle("Inventory", "B2")
	require.NoError(t, err)
	require.NotZero(t, styleID)

	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.Len(t, style.Border, 4)
	for _, b := range style.Border {
		assert.Equal(t, 1, b.Style)
	}
}

func TestExcelizeRendererMetadata(t *testing.T) {
	r := &spreadsheet.ExcelizeRenderer{}
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		r.ContentType())

	ts := time.Date(2026, time.August, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "BookStore_Inventory_Report_2026-08-28_150405.xlsx", r.Filename(ts))
}

func mustRenderXLSX(t *testing.T, records ...repository.InventoryRecord) []byte {
	t.Helper()
	seller := &entity.Seller{DisplayName: "Daniela Valencia", StoreName: "Valencia Books"}
	snap := &report.Snapshot{}
	rep := report.NewComposer().Compose(seller, snap, records, time.Now())

	r := &spreadsheet.ExcelizeRenderer{}
	out, err := r.Render(&report.RenderInput{
		Seller:      seller,
		Report:      rep,
		Snapshot:    snap,
		Records:     records,
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	return out
}
