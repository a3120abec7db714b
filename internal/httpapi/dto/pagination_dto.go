package dto

// Pagination mirrors the shape the frontend already consumes: simple offset
// paging with page/total bookkeeping.
type Pagination struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

func NewPagination(total int64, page, pageSize int) Pagination {
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return Pagination{
		Total:   total,
		Page:    page,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
