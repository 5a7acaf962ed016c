package common

// SuccessResponse is the envelope every non-paginated endpoint sends:
// the payload always sits under a "data" key so the frontend client
// can unwrap uniformly.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}
