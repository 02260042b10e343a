package order

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func gatewayServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestClientGateway_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"error":"not found"}`, ErrClientNotFound},
		{"server error", http.StatusInternalServerError, `{}`, ErrRemoteUnavailable},
		{"bad payload", http.StatusOK, `{`, ErrRemoteUnavailable},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := gatewayServer(tc.status, tc.body)
			defer srv.Close()
			g := NewClientHTTP(srv.URL)
			_, err := g.GetClient(context.Background(), "c1")
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v, esperaba %v", err, tc.want)
			}
		})
	}
}

func TestClientGateway_TransportError(t *testing.T) {
	t.Parallel()

	srv := gatewayServer(http.StatusOK, `{}`)
	srv.Close() // connection refused
	g := NewClientHTTP(srv.URL)
	_, err := g.GetClient(context.Background(), "c1")
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("err=%v, esperaba ErrRemoteUnavailable", err)
	}
}

func TestProductGateway_GetOK(t *testing.T) {
	t.Parallel()

	srv := gatewayServer(http.StatusOK, `{"id":"p1","name":"Teclado","price":"199.90","stock":10}`)
	defer srv.Close()
	g := NewProductHTTP(srv.URL)
	p, err := g.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Stock != 10 || !p.Price.Equal(dec("199.90")) {
		t.Fatalf("product=%+v", p)
	}
}

func TestProductGateway_StockErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"missing product", http.StatusNotFound, ErrProductNotFound},
		{"short stock", http.StatusConflict, ErrInsufficientStock},
		{"server error", http.StatusBadGateway, ErrRemoteUnavailable},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := gatewayServer(tc.status, `{}`)
			defer srv.Close()
			g := NewProductHTTP(srv.URL)
			if err := g.ReduceStock(context.Background(), "p1", 2); !errors.Is(err, tc.want) {
				t.Fatalf("reduce err=%v, esperaba %v", err, tc.want)
			}
		})
	}
}

// A gateway timeout must fail the step the same way a non-success response does.
func TestProductGateway_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	g := &ProductHTTP{HTTP: &http.Client{Timeout: 20 * time.Millisecond}, BaseURL: srv.URL}
	if err := g.IncreaseStock(context.Background(), "p1", 1); !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("err=%v, esperaba ErrRemoteUnavailable", err)
	}
}
