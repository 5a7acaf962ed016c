package common

type Pagination struct {
	Total int64 `json:"total"`
}

// SearchResponse wraps a paginated result set. Total is the match
// count before limit/offset, which the planning calendar uses to
// size its pager.
type SearchResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func NewSearchResponse(data interface{}, total int64) *SearchResponse {
	return &SearchResponse{
		Data: data,
		Pagination: Pagination{
			Total: total,
		},
	}
}
