package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems, page, size int) dto.PaginationInfo {
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

// ParsePaginationParams extracts and validates pagination parameters from the request.
// size=0 (or "all") returns the whole list on one page.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	sizeStr := c.DefaultQuery("size", strconv.Itoa(DefaultPageSize))
	if sizeStr == "all" || sizeStr == "0" {
		return DefaultPage, 0
	}
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size < 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateSliceIndices calculates the start and end indices for slicing an array for pagination
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	// Compare page counts before multiplying; a huge page would overflow
	if page-1 >= (totalItems+size-1)/size {
		return totalItems, totalItems
	}

	start = (page - 1) * size
	end = min(start+size, totalItems)
	return start, end
}

// Paginate cuts one page out of a derived list. size 0 means everything.
func Paginate[T any](items []T, page, size int) dto.PaginatedList[T] {
	if items == nil {
		items = []T{}
	}
	if size <= 0 {
		return dto.PaginatedList[T]{
			Items:      items,
			Pagination: NewPaginationInfo(len(items), 1, max(len(items), 1)),
		}
	}

	start, end := CalculateSliceIndices(page, size, len(items))
	return dto.PaginatedList[T]{
		Items:      items[start:end],
		Pagination: NewPaginationInfo(len(items), page, size),
	}
}
