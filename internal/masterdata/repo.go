package masterdata

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed master data lookup.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ActiveVendors lists active vendors. Ordering happens in the service so
// it can be locale-aware.
func (r *Repository) ActiveVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email, phone, payment_terms, currency,
		is_active, created_at, updated_at
		FROM vendors WHERE is_active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.PaymentTerms, &v.Currency,
			&v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// ActiveDestinations lists active destinations.
func (r *Repository) ActiveDestinations(ctx context.Context) ([]Destination, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, address, city, country,
		is_active, created_at, updated_at
		FROM destinations WHERE is_active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []Destination
	for rows.Next() {
		var d Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Address, &d.City, &d.Country,
			&d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

// GetVendor fetches one vendor by id.
func (r *Repository) GetVendor(ctx context.Context, id int64) (Vendor, error) {
	var v Vendor
	err := r.pool.QueryRow(ctx, `SELECT id, name, email, phone, payment_terms, currency,
		is_active, created_at, updated_at FROM vendors WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.PaymentTerms, &v.Currency,
			&v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vendor{}, ErrNotFound
	}
	return v, err
}
