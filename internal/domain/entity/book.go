package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condiciones reconocidas de un libro. Un valor vacío es válido (libros legacy
// cargados antes de que el campo fuera obligatorio en el formulario).
const (
	ConditionNew        = "new"
	ConditionLikeNew    = "like_new"
	ConditionGood       = "good"
	ConditionAcceptable = "acceptable"
	ConditionPoor       = "poor"
)

// Book representa un libro del inventario privado de un vendedor.
// ISBN y Genre son opcionales (nil = el vendedor no los diligenció).
type Book struct {
	ID            string
	SellerID      string
	Title         string
	Author        string
	ISBN          *string
	Genre         *string
	Condition     string
	Price         decimal.Decimal // precio de venta
	CostPrice     decimal.Decimal // costo de adquisición
	StockQuantity int
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
