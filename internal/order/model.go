package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "PENDING"

type Order struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"client_id"`
	Number     string          `json:"number"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"` // NUMERIC, derived from details
	Details    []Detail        `json:"order_details"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Client is request-scoped enrichment from the client directory,
	// never persisted.
	Client *ClientDTO `json:"client,omitempty"`
}

type Detail struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`  // snapshot of the remote unit price
	Amount    decimal.Decimal `json:"amount"` // price * quantity

	// Product is request-scoped enrichment from the catalog, never persisted.
	Product *ProductDTO `json:"product,omitempty"`
}

// Recalculate sets Amount from the current price and quantity.
func (d *Detail) Recalculate() {
	d.Amount = d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
