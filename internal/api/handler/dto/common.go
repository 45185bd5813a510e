package dto

import "time"

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PageResponse wraps one page of a list together with the unpaged total.
type PageResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func NewPageResponse[S any, T any](items []S, total, limit, offset int, convert func(S) T) PageResponse[T] {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}
	return PageResponse[T]{Items: out, Total: total, Limit: limit, Offset: offset}
}

type StatusCountsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}
