package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookRequest entrada para crear un libro.
type CreateBookRequest struct {
	Title         string          `json:"title" validate:"required,min=1,max=300"`
	Author        string          `json:"author" validate:"required,min=1,max=200"`
	ISBN          *string         `json:"isbn"`
	Genre         *string         `json:"genre"`
	Condition     string          `json:"condition"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	Description   string          `json:"description"`
}

// UpdateBookRequest entrada para actualizar un libro (campos opcionales).
type UpdateBookRequest struct {
	Title         *string          `json:"title"`
	Author        *string          `json:"author"`
	ISBN          *string          `json:"isbn"`
	Genre         *string          `json:"genre"`
	Condition     *string          `json:"condition"`
	Price         *decimal.Decimal `json:"price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	StockQuantity *int             `json:"stock_quantity"`
	Description   *string          `json:"description"`
}

// BookResponse salida de un libro con sus métricas derivadas.
type BookResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          *string         `json:"isbn"`
	Genre         *string         `json:"genre"`
	Condition     string          `json:"condition"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	Description   string          `json:"description"`
	AvgRating     decimal.Decimal `json:"avg_rating"`
	ReviewCount   int             `json:"review_count"`
	TotalSold     int             `json:"total_sold"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BookListRequest filtros del listado CRUD (mismo surface que el export).
type BookListRequest struct {
	ExportRequest
	PageRequest
}

// BookListResponse lista paginada de libros.
type BookListResponse struct {
	Items []BookResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
