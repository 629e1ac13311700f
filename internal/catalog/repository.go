package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed variant lookup.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const itemColumns = `product_id, variant_id, product_title, variant_title, sku,
	unit_cost, qty_on_hand, qty_on_order`

// Items returns catalog data for the given variant ids. Unknown ids are
// silently absent from the result; the caller decides whether that matters.
func (r *Repository) Items(ctx context.Context, variantIDs []int64) ([]Item, error) {
	if len(variantIDs) == 0 {
		return []Item{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+`
		FROM catalog_variants WHERE variant_id = ANY($1)`, variantIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.VariantID, &it.ProductTitle, &it.VariantTitle,
			&it.SKU, &it.UnitCost, &it.QtyOnHand, &it.QtyOnOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// AllVariantIDs lists every known variant id, used by the cache warmup job.
func (r *Repository) AllVariantIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT variant_id FROM catalog_variants ORDER BY variant_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
