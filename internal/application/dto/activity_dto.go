package dto

import "time"

// ActivityEntryDTO una entrada de la bitácora. Ago es la marca de tiempo
// relativa humanizada ("2 hours ago") para el listado del panel.
type ActivityEntryDTO struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
	Ago       string    `json:"ago"`
}

// ActivityListResponse bitácora paginada del vendedor.
type ActivityListResponse struct {
	Items []ActivityEntryDTO `json:"items"`
	Page  PageResponse       `json:"page"`
}
