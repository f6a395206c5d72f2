package types

import "github.com/SalangsangJohnPatrick/inventory-management/pkg/pagination"

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PagedEnvelope wraps one page of results with its pagination metadata.
type PagedEnvelope struct {
	Data       any             `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
