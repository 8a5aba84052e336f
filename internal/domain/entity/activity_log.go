package entity

import "time"

// Acciones registradas en la bitácora de actividad.
const (
	ActionBookCreated    = "book_created"
	ActionBookUpdated    = "book_updated"
	ActionBookDeleted    = "book_deleted"
	ActionExportSuccess  = "inventory_export"
	ActionExportFailed   = "inventory_export_failed"
)

// ActivityLog una entrada de la bitácora del vendedor. Details es texto libre
// (una línea por intento de exportación, con conteo de filas o mensaje de error).
type ActivityLog struct {
	ID        string
	SellerID  string
	Action    string
	Details   string
	CreatedAt time.Time
}
