package dto

// ExportRequest parámetros del export de inventario. Todos opcionales y
// aplican SOLO a la hoja de listado detallado; las hojas estadísticas siempre
// cubren el inventario completo.
//
// Los numéricos y fechas llegan como string para distinguir "ausente" de "cero";
// el caso de uso los parsea y valida.
type ExportRequest struct {
	Search    string `query:"search"`     // substring sobre title/author/isbn
	Genre     string `query:"genre"`      // match exacto
	Condition string `query:"condition"`  // match exacto
	MinPrice  string `query:"min_price"`
	MaxPrice  string `query:"max_price"`
	SortBy    string `query:"sort_by"`    // validado contra el allow-list; desconocido cae al default
	SortOrder string `query:"sort_order"` // ASC | DESC
	DateFrom  string `query:"date_from"`  // YYYY-MM-DD sobre created_at
	DateTo    string `query:"date_to"`
}
