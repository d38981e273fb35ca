package dto

type PaginationMetadata struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Pages      int    `json:"pages"`
	Limit      int    `json:"limit"`
}

type PaginationResponse struct {
	Metadata PaginationMetadata `json:"_metadata"`
	Records  interface{}        `json:"records"`
}

func CreatePaginationMetadata(totalCount int64, page, limit int) PaginationMetadata {
	pages := 0
	if limit > 0 {
		pages = int((totalCount + int64(limit) - 1) / int64(limit))
	}

	return PaginationMetadata{
		TotalCount: uint64(totalCount),
		Page:       page,
		Pages:      pages,
		Limit:      limit,
	}
}
