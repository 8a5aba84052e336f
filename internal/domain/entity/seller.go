package entity

import "time"

// Seller vendedor autenticado dueño de un inventario de libros.
type Seller struct {
	ID          string
	Email       string
	DisplayName string
	StoreName   string
	CreatedAt   time.Time
}
