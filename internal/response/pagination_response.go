package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// Paginate computes the window [from, to) for an in-memory slice of length
// total and the metadata to report alongside it. Page is 1-based; an
// out-of-range page yields an empty window, not an error.
func Paginate(page, pageSize, total int) (from, to int, p *Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	from = (page - 1) * pageSize
	if from > total {
		from = total
	}
	to = from + pageSize
	if to > total {
		to = total
	}

	totalPages := int64(total+pageSize-1) / int64(pageSize)
	return from, to, &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: int64(total),
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         to,
	}
}
