package supplier

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("supplier not found")
	ErrAlreadyExist = errors.New("supplier already exists")
)

type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id string) (*Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, s *Supplier) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO suppliers (id, name, ruc, address, phone, email, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
	`, s.ID, s.Name, s.RUC, s.Address, s.Phone, s.Email)
	if err != nil {
		// UNIQUE on ruc
		return ErrAlreadyExist
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT id, name, ruc, address, phone, email, created_at, updated_at
		FROM suppliers WHERE id=$1
	`, id)
	var s Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.RUC, &s.Address, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, ruc, address, phone, email, created_at, updated_at
		FROM suppliers ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.RUC, &s.Address, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, s *Supplier) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		UPDATE suppliers
		SET name    = COALESCE(NULLIF($2, ''), name),
		    ruc     = COALESCE(NULLIF($3, ''), ruc),
		    address = COALESCE(NULLIF($4, ''), address),
		    phone   = COALESCE(NULLIF($5, ''), phone),
		    email   = COALESCE(NULLIF($6, ''), email),
		    updated_at = NOW()
		WHERE id = $1
	`, s.ID, s.Name, s.RUC, s.Address, s.Phone, s.Email)
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
