package models

// Pagination is the metadata block every paginated endpoint returns.
type Pagination struct {
	TotalItems      int64 `json:"totalItems"`
	ItemCount       int   `json:"itemCount"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

func NewPagination(total int64, itemCount, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		TotalItems:      total,
		ItemCount:       itemCount,
		ItemsPerPage:    limit,
		TotalPages:      totalPages,
		CurrentPage:     page,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
