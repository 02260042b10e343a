package order

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)
