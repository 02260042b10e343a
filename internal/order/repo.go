package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists the Order aggregate. Save replaces the detail rows wholly:
// details never outlive their order and are not merged on update.
type Store interface {
	FindAll(ctx context.Context) ([]Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	Save(ctx context.Context, o *Order) error
	DeleteByID(ctx context.Context, id string) error
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (r *PGStore) FindAll(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, client_id, number, status, total_price::text, created_at, updated_at
    FROM orders ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.Number, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		details, err := r.findDetails(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Details = details
	}
	return out, nil
}

func (r *PGStore) FindByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.QueryRow(ctx, `
    SELECT id, client_id, number, status, total_price::text, created_at, updated_at
    FROM orders WHERE id=$1
  `, id).Scan(&o.ID, &o.ClientID, &o.Number, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%s", ErrNotFound, id)
		}
		return nil, err
	}
	o.Details, err = r.findDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGStore) findDetails(ctx context.Context, orderID string) ([]Detail, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, quantity, price::text, amount::text
    FROM order_details WHERE order_id=$1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity, &d.Price, &d.Amount); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PGStore) Save(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if o.ID == "" {
		o.ID = uuid.NewString()
		if _, err := tx.Exec(ctx, `
      INSERT INTO orders (id, client_id, number, status, total_price, created_at, updated_at)
      VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
    `, o.ID, o.ClientID, o.Number, o.Status, o.TotalPrice); err != nil {
			return err
		}
	} else {
		tag, err := tx.Exec(ctx, `
      UPDATE orders
      SET client_id=$2, number=$3, status=$4, total_price=$5, updated_at=NOW()
      WHERE id=$1
    `, o.ID, o.ClientID, o.Number, o.Status, o.TotalPrice)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: id=%s", ErrNotFound, o.ID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_details WHERE order_id=$1`, o.ID); err != nil {
			return err
		}
	}

	for i := range o.Details {
		d := &o.Details[i]
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		d.OrderID = o.ID
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_details (id, order_id, product_id, quantity, price, amount)
      VALUES ($1,$2,$3,$4,$5,$6)
    `, d.ID, d.OrderID, d.ProductID, d.Quantity, d.Price, d.Amount); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGStore) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM order_details WHERE order_id=$1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id=%s", ErrNotFound, id)
	}
	return tx.Commit(ctx)
}
