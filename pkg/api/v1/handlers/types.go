package handlers

// PaginationResponse carries the paging metadata of a list response
type PaginationResponse struct {
	Total  int `json:"total"`
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResponse is the generic shape of list endpoints
type ListResponse[T any] struct {
	Rows       []T                `json:"rows"`
	Pagination PaginationResponse `json:"pagination"`
}

// ErrorResponse is the shape of error responses
type ErrorResponse struct {
	Error string `json:"error"`
}
