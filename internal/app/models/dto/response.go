package dto

import "time"

// APIResponse is the standard success envelope for API endpoints.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp,omitempty"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo describes the page window of a list response.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}
