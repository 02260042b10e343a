package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Service is the order workflow engine. It mediates every order lifecycle
// transition, keeping remote stock counters consistent with the local order
// store. The store and the two remote services cannot be updated atomically
// together: when a stock call fails past the point where earlier counters
// already moved, the engine emits reconciliation events instead of attempting
// an in-process rollback.
type Service struct {
	store    Store
	clients  ClientGateway
	products ProductGateway
	audit    Emitter
	log      *slog.Logger
}

func NewService(store Store, clients ClientGateway, products ProductGateway, audit Emitter, log *slog.Logger) *Service {
	return &Service{store: store, clients: clients, products: products, audit: audit, log: log}
}

// List returns every stored order enriched with client and product data.
// Enrichment is best-effort: a failed lookup leaves the field unset, it never
// fails the listing. No stock is touched on this path.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		s.enrich(ctx, &orders[i])
	}
	return orders, nil
}

// FindByID returns one order with the same enrichment as List.
func (s *Service) FindByID(ctx context.Context, id string) (*Order, error) {
	o, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, o)
	return o, nil
}

func (s *Service) enrich(ctx context.Context, o *Order) {
	if c, err := s.clients.GetClient(ctx, o.ClientID); err == nil {
		o.Client = c
	}
	for i := range o.Details {
		d := &o.Details[i]
		if p, err := s.products.GetProduct(ctx, d.ProductID); err == nil {
			d.Product = p
		}
	}
}

// Create validates the client and every line item against the remote
// services, derives prices and totals from the catalog, reserves stock and
// persists the order as PENDING. Validation failures abort before any side
// effect. A failure while reducing stock is not rolled back: the reductions
// already issued are reported as reconciliation events.
func (s *Service) Create(ctx context.Context, o *Order) (*Order, error) {
	c, err := s.clients.GetClient(ctx, o.ClientID)
	if err != nil {
		return nil, err
	}
	o.Client = c

	total := decimal.Zero
	for i := range o.Details {
		d := &o.Details[i]
		p, err := s.products.GetProduct(ctx, d.ProductID)
		if err != nil {
			return nil, err
		}
		if p.Stock < d.Quantity {
			return nil, fmt.Errorf("%w: product id=%s", ErrInsufficientStock, d.ProductID)
		}
		d.Price = p.Price
		d.Product = p
		d.Recalculate()
		total = total.Add(d.Amount)
	}

	// All items validated; from here on remote counters start moving.
	for i := range o.Details {
		d := o.Details[i]
		if err := s.products.ReduceStock(ctx, d.ProductID, d.Quantity); err != nil {
			s.reportOutstanding(ctx, o.ID, o.Details[:i], "increase",
				fmt.Sprintf("order creation aborted before persistence: %v", err))
			return nil, err
		}
		s.log.Info("stock reduced", "product_id", d.ProductID, "quantity", d.Quantity)
	}

	o.Status = StatusPending
	o.TotalPrice = total
	if err := s.store.Save(ctx, o); err != nil {
		s.reportOutstanding(ctx, o.ID, o.Details, "increase",
			fmt.Sprintf("order not persisted after stock reduction: %v", err))
		return nil, err
	}
	return o, nil
}

// Update replaces an order. Stock reserved by the previous version is
// restored first, unconditionally and for every old item, because the
// validation of the new items reads the restored levels. Only then are the
// new items validated, the order persisted and the new reservations applied.
func (s *Service) Update(ctx context.Context, o *Order) (*Order, error) {
	c, err := s.clients.GetClient(ctx, o.ClientID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	for i := range existing.Details {
		d := existing.Details[i]
		if _, err := s.products.GetProduct(ctx, d.ProductID); err != nil {
			s.reportOutstanding(ctx, o.ID, existing.Details[:i], "reduce",
				fmt.Sprintf("order update aborted while restoring stock: %v", err))
			return nil, err
		}
		if err := s.products.IncreaseStock(ctx, d.ProductID, d.Quantity); err != nil {
			s.reportOutstanding(ctx, o.ID, existing.Details[:i], "reduce",
				fmt.Sprintf("order update aborted while restoring stock: %v", err))
			return nil, err
		}
		s.log.Info("stock restored", "product_id", d.ProductID, "quantity", d.Quantity)
	}

	total := decimal.Zero
	for i := range o.Details {
		d := &o.Details[i]
		p, err := s.products.GetProduct(ctx, d.ProductID)
		if err != nil {
			s.reportOutstanding(ctx, o.ID, existing.Details, "reduce",
				fmt.Sprintf("order update aborted after restoring stock: %v", err))
			return nil, err
		}
		if p.Stock < d.Quantity {
			err := fmt.Errorf("%w: product id=%s", ErrInsufficientStock, d.ProductID)
			s.reportOutstanding(ctx, o.ID, existing.Details, "reduce",
				fmt.Sprintf("order update aborted after restoring stock: %v", err))
			return nil, err
		}
		d.Price = p.Price
		d.Product = p
		d.Recalculate()
		total = total.Add(d.Amount)
	}

	existing.ClientID = o.ClientID
	existing.Number = o.Number
	existing.Status = o.Status
	if existing.Status == "" {
		existing.Status = StatusPending
	}
	existing.Client = c
	existing.Details = o.Details
	existing.TotalPrice = total
	if err := s.store.Save(ctx, existing); err != nil {
		s.reportOutstanding(ctx, o.ID, existing.Details, "reduce",
			fmt.Sprintf("order update not persisted after restoring stock: %v", err))
		return nil, err
	}

	for i := range existing.Details {
		d := existing.Details[i]
		if err := s.products.ReduceStock(ctx, d.ProductID, d.Quantity); err != nil {
			s.reportOutstanding(ctx, o.ID, existing.Details[i:], "reduce",
				fmt.Sprintf("stock reduction failed after order update persisted: %v", err))
			return nil, err
		}
		s.log.Info("stock reduced", "product_id", d.ProductID, "quantity", d.Quantity)
	}
	return existing, nil
}

// Delete restores the stock reserved by every line item, then removes the
// order. If any restoration fails, the order is kept so that the record of
// what still needs reconciling is not lost.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	for i := range existing.Details {
		d := existing.Details[i]
		if err := s.products.IncreaseStock(ctx, d.ProductID, d.Quantity); err != nil {
			s.reportOutstanding(ctx, id, existing.Details[:i], "reduce",
				fmt.Sprintf("order deletion aborted while restoring stock: %v", err))
			return fmt.Errorf("restore stock for product %s: %w", d.ProductID, err)
		}
		s.log.Info("stock restored", "product_id", d.ProductID, "quantity", d.Quantity)
	}
	return s.store.DeleteByID(ctx, id)
}

// reportOutstanding emits one reconciliation event per stock adjustment the
// failed call leaves outstanding. Op names the correction to apply.
func (s *Service) reportOutstanding(ctx context.Context, orderID string, details []Detail, op, reason string) {
	for _, d := range details {
		s.audit.Emit(ctx, ReconciliationEvent{
			OrderID:   orderID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			Op:        op,
			Reason:    reason,
			At:        time.Now().UTC(),
		})
	}
}
