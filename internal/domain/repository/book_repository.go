package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
)

// SortColumn columna de ordenamiento validada para el listado de inventario.
// Nunca se interpola texto del request en SQL: el repositorio traduce cada
// valor de este enum a una expresión de columna fija.
type SortColumn string

const (
	SortByTitle     SortColumn = "title"
	SortByAuthor    SortColumn = "author"
	SortByPrice     SortColumn = "price"
	SortByStock     SortColumn = "stock_quantity"
	SortByGenre     SortColumn = "genre"
	SortByCondition SortColumn = "condition"
	SortByCreatedAt SortColumn = "created_at"
)

var sortColumns = map[string]SortColumn{
	string(SortByTitle):     SortByTitle,
	string(SortByAuthor):    SortByAuthor,
	string(SortByPrice):     SortByPrice,
	string(SortByStock):     SortByStock,
	string(SortByGenre):     SortByGenre,
	string(SortByCondition): SortByCondition,
	string(SortByCreatedAt): SortByCreatedAt,
}

// ParseSortColumn valida el nombre de columna recibido en el query string.
// Un valor desconocido cae silenciosamente al default (created_at) y ok=false;
// no es un error del request.
func ParseSortColumn(s string) (col SortColumn, ok bool) {
	if c, found := sortColumns[s]; found {
		return c, true
	}
	return SortByCreatedAt, false
}

// ListFilter filtros del listado de inventario. Todos opcionales.
// Aplican SOLO a la hoja de listado detallado del reporte (y al listado CRUD);
// las estadísticas agregadas siempre se calculan sobre el inventario completo.
type ListFilter struct {
	Search    string // substring sobre title/author/isbn
	Genre     string // match exacto
	Condition string // match exacto
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	DateFrom  *time.Time // rango sobre created_at
	DateTo    *time.Time
	SortBy    SortColumn
	SortDesc  bool
}

// InventoryRecord snapshot de solo lectura de un libro con sus métricas
// derivadas (rating, ventas, margen) ya calculadas en la consulta.
// Nunca se persiste; se consulta fresco en cada request.
type InventoryRecord struct {
	ID            string
	Title         string
	Author        string
	ISBN          *string
	Genre         *string
	Condition     string
	Price         decimal.Decimal
	CostPrice     decimal.Decimal
	StockQuantity int
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AvgRating     decimal.Decimal // promedio de reviews (0 si no tiene)
	ReviewCount   int
	TotalSold     int
	ProfitMargin  decimal.Decimal // % margen: (price - cost_price) / price * 100
}

// BookRepository puerto de persistencia de libros.
type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	GetByID(ctx context.Context, sellerID, id string) (*entity.Book, error)
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, sellerID, id string) error
	// ListRecords devuelve los snapshots filtrados/ordenados del vendedor.
	// limit <= 0 significa sin paginación (lo usa el pipeline de exportación).
	ListRecords(ctx context.Context, sellerID string, f ListFilter, limit, offset int) ([]InventoryRecord, int, error)
}
