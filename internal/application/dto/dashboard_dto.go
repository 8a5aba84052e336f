package dto

import "time"

// DashboardResponse snapshot estadístico del panel del vendedor. Stats es el
// mismo agregado que alimenta los reportes, serializado tal cual; el panel y
// el archivo exportado nunca muestran números distintos.
type DashboardResponse struct {
	SellerID       string    `json:"seller_id"`
	StoreName      string    `json:"store_name"`
	GeneratedAt    time.Time `json:"generated_at"`
	Stats          any       `json:"stats"`
	RecentActivity []ActivityEntryDTO `json:"recent_activity"`
}
