package dto

// ErrorResponse cuerpo de error HTTP.
// Errores de validación: {message}; fallos internos: {message, error} con la causa original.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ListingResponse página de un listado filtrado/ordenado en memoria.
type ListingResponse[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	Sort       string `json:"sort,omitempty"`
	Order      string `json:"order,omitempty"`
}

// MessageResponse confirmación sin datos.
type MessageResponse struct {
	Message string `json:"message"`
}
