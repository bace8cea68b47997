package helpers

import (
	"math"
	"strconv"

	"github.com/examdesk/examdesk/internal/app/models/dto"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams extracts and validates pagination parameters from the request
func ParsePaginationParams(c *gin.Context) (page, size int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	sizeStr := c.DefaultQuery("size", "20")
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return page, size
}

// CalculateSliceIndices calculates the start and end indices for slicing an
// in-memory result list for pagination.
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	start = (page - 1) * size
	end = start + size

	if start >= totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
