package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ClientDTO is the client directory's view of a client, attached to orders
// as transient enrichment.
type ClientDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductDTO is the catalog's view of a product.
type ProductDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Code        string          `json:"code"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// ClientGateway looks up clients in the remote client directory.
type ClientGateway interface {
	GetClient(ctx context.Context, id string) (*ClientDTO, error)
}

// ProductGateway looks up products and mutates stock in the remote catalog.
// ReduceStock and IncreaseStock are not idempotent: a retry double-counts.
type ProductGateway interface {
	GetProduct(ctx context.Context, id string) (*ProductDTO, error)
	ReduceStock(ctx context.Context, id string, qty int) error
	IncreaseStock(ctx context.Context, id string, qty int) error
}

type ClientHTTP struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClientHTTP(baseURL string) *ClientHTTP {
	return &ClientHTTP{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
	}
}

func (g *ClientHTTP) GetClient(ctx context.Context, id string) (*ClientDTO, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/clients/%s", g.BaseURL, id), nil)
	res, err := g.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: client directory: %v", ErrRemoteUnavailable, err)
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: id=%s", ErrClientNotFound, id)
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: client directory: %s", ErrRemoteUnavailable, res.Status)
	}
	var c ClientDTO
	if err := json.NewDecoder(res.Body).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: client directory: %v", ErrRemoteUnavailable, err)
	}
	return &c, nil
}

type ProductHTTP struct {
	HTTP    *http.Client
	BaseURL string
}

func NewProductHTTP(baseURL string) *ProductHTTP {
	return &ProductHTTP{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
	}
}

func (g *ProductHTTP) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%s", g.BaseURL, id), nil)
	res, err := g.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog: %v", ErrRemoteUnavailable, err)
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: id=%s", ErrProductNotFound, id)
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: catalog: %s", ErrRemoteUnavailable, res.Status)
	}
	var p ProductDTO
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: catalog: %v", ErrRemoteUnavailable, err)
	}
	return &p, nil
}

func (g *ProductHTTP) ReduceStock(ctx context.Context, id string, qty int) error {
	return g.postStock(ctx, id, "reduce-stock", qty)
}

func (g *ProductHTTP) IncreaseStock(ctx context.Context, id string, qty int) error {
	return g.postStock(ctx, id, "increase-stock", qty)
}

func (g *ProductHTTP) postStock(ctx context.Context, id, op string, qty int) error {
	url := fmt.Sprintf("%s/products/%s/%s?stock=%d", g.BaseURL, id, op, qty)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	res, err := g.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: catalog: %v", ErrRemoteUnavailable, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: id=%s", ErrProductNotFound, id)
	case http.StatusConflict:
		return fmt.Errorf("%w: id=%s", ErrInsufficientStock, id)
	default:
		return fmt.Errorf("%w: catalog %s: %s", ErrRemoteUnavailable, op, res.Status)
	}
}
