package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code"`
	// Price is NUMERIC in Postgres; decimal avoids rounding errors
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	// items found
	Items []Product `json:"items"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string `json:"name"        example:"Mecanical Keyboard"`
	Description string `json:"description" example:"RGB 60%"`
	Code        string `json:"code"        example:"KB-0042"`
	Price       string `json:"price"       example:"199.90"`
	Stock       int    `json:"stock"       example:"10"`
}

// UpdateProductRequest payload of partial update.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
}
