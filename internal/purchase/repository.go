package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes transactional operations.
type TxRepository interface {
	CreateOrder(ctx context.Context, h OrderHeader) (int64, error)
	UpdateOrder(ctx context.Context, h OrderHeader) error
	UpdateOrderStatus(ctx context.Context, id int64, status Status) error
	DeleteOrder(ctx context.Context, id int64) error
	InsertLine(ctx context.Context, l OrderLine) (int64, error)
	UpdateLine(ctx context.Context, l OrderLine) error
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx wraps callback in a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

const headerColumns = `o.id, o.po_number, o.custom_po_number, o.vendor_id, COALESCE(v.name, ''),
	o.destination_id, COALESCE(d.name, ''), o.status, o.order_date, o.due_date, o.ship_date,
	o.void_date, o.shipping_carrier, o.tracking_number, o.reference_number, o.note_to_vendor,
	o.payment_terms, o.currency, o.discount_percent, o.discount_amount, o.freight, o.fee,
	o.tax, o.subtotal, o.total, o.created_at, o.updated_at`

// Get returns the order header and all of its lines, removed ones included.
func (r *Repository) Get(ctx context.Context, id int64) (OrderHeader, []OrderLine, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+headerColumns+`
		FROM purchase_orders o
		LEFT JOIN vendors v ON v.id = o.vendor_id
		LEFT JOIN destinations d ON d.id = o.destination_id
		WHERE o.id = $1`, id)

	var h OrderHeader
	err := row.Scan(&h.ID, &h.PONumber, &h.CustomPONumber, &h.VendorID, &h.VendorName,
		&h.DestinationID, &h.DestinationName, &h.Status, &h.OrderDate, &h.DueDate, &h.ShipDate,
		&h.VoidDate, &h.ShippingCarrier, &h.TrackingNumber, &h.ReferenceNumber, &h.NoteToVendor,
		&h.PaymentTerms, &h.Currency, &h.DiscountPercent, &h.DiscountAmount, &h.Freight, &h.Fee,
		&h.Tax, &h.Subtotal, &h.Total, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return OrderHeader{}, nil, ErrNotFound
		}
		return OrderHeader{}, nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT id, order_id, position, product_id, variant_id,
		product_title, variant_title, sku, purchase_description, qty_ordered, qty_received,
		qty_on_hand, qty_on_order, unit_cost, tax_percent, extended_cost, is_extra, is_removed
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY position, id`, id)
	if err != nil {
		return OrderHeader{}, nil, err
	}
	defer rows.Close()

	var lines []OrderLine
	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.Position, &l.ProductID, &l.VariantID,
			&l.ProductTitle, &l.VariantTitle, &l.SKU, &l.PurchaseDescription, &l.QtyOrdered,
			&l.QtyReceived, &l.QtyOnHand, &l.QtyOnOrder, &l.UnitCost, &l.TaxPercent,
			&l.ExtendedCost, &l.IsExtra, &l.IsRemoved); err != nil {
			return OrderHeader{}, nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return OrderHeader{}, nil, err
	}
	return h, lines, nil
}

// List returns purchase orders with vendor name, filtered and paged.
func (r *Repository) List(ctx context.Context, limit, offset int, filters ListFilters) ([]ListItem, int, error) {
	countSQL := `SELECT COUNT(*) FROM purchase_orders o WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Status != "" {
		countSQL += ` AND o.status = $` + itoa(argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Vendor > 0 {
		countSQL += ` AND o.vendor_id = $` + itoa(argNum)
		args = append(args, filters.Vendor)
		argNum++
	}
	if filters.Search != "" {
		countSQL += ` AND o.po_number ILIKE $` + itoa(argNum)
		args = append(args, "%"+filters.Search+"%")
		argNum++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT o.id, o.po_number, o.vendor_id, COALESCE(v.name, '') AS vendor_name,
		o.status, o.order_date, o.total, o.created_at
	FROM purchase_orders o
	LEFT JOIN vendors v ON v.id = o.vendor_id
	WHERE 1=1`

	args2 := []any{}
	argNum2 := 1
	if filters.Status != "" {
		dataSQL += ` AND o.status = $` + itoa(argNum2)
		args2 = append(args2, filters.Status)
		argNum2++
	}
	if filters.Vendor > 0 {
		dataSQL += ` AND o.vendor_id = $` + itoa(argNum2)
		args2 = append(args2, filters.Vendor)
		argNum2++
	}
	if filters.Search != "" {
		dataSQL += ` AND o.po_number ILIKE $` + itoa(argNum2)
		args2 = append(args2, "%"+filters.Search+"%")
		argNum2++
	}

	dataSQL += ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir) +
		` LIMIT $` + itoa(argNum2) + ` OFFSET $` + itoa(argNum2+1)
	args2 = append(args2, limit, offset)

	rows, err := r.pool.Query(ctx, dataSQL, args2...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []ListItem
	for rows.Next() {
		var item ListItem
		if err := rows.Scan(&item.ID, &item.PONumber, &item.VendorID, &item.VendorName,
			&item.Status, &item.OrderDate, &item.Total, &item.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (tx *txRepo) CreateOrder(ctx context.Context, h OrderHeader) (int64, error) {
	var id int64
	err := tx.tx.QueryRow(ctx, `INSERT INTO purchase_orders (
		po_number, custom_po_number, vendor_id, destination_id, status, order_date,
		due_date, ship_date, void_date, shipping_carrier, tracking_number, reference_number,
		note_to_vendor, payment_terms, currency, discount_percent, discount_amount,
		freight, fee, tax, subtotal, total, created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,now(),now())
	RETURNING id`,
		h.PONumber, h.CustomPONumber, nullID(h.VendorID), nullID(h.DestinationID),
		string(h.Status), h.OrderDate, h.DueDate, h.ShipDate, h.VoidDate,
		h.ShippingCarrier, h.TrackingNumber, h.ReferenceNumber, h.NoteToVendor,
		h.PaymentTerms, h.Currency, h.DiscountPercent, h.DiscountAmount,
		h.Freight, h.Fee, h.Tax, h.Subtotal, h.Total).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

func (tx *txRepo) UpdateOrder(ctx context.Context, h OrderHeader) error {
	_, err := tx.tx.Exec(ctx, `UPDATE purchase_orders SET
		vendor_id = $1, destination_id = $2, due_date = $3, ship_date = $4, void_date = $5,
		shipping_carrier = $6, tracking_number = $7, reference_number = $8, note_to_vendor = $9,
		payment_terms = $10, currency = $11, discount_percent = $12, discount_amount = $13,
		freight = $14, fee = $15, tax = $16, subtotal = $17, total = $18, updated_at = now()
	WHERE id = $19`,
		nullID(h.VendorID), nullID(h.DestinationID), h.DueDate, h.ShipDate, h.VoidDate,
		h.ShippingCarrier, h.TrackingNumber, h.ReferenceNumber, h.NoteToVendor,
		h.PaymentTerms, h.Currency, h.DiscountPercent, h.DiscountAmount,
		h.Freight, h.Fee, h.Tax, h.Subtotal, h.Total, h.ID)
	return mapPgError(err)
}

func (tx *txRepo) UpdateOrderStatus(ctx context.Context, id int64, status Status) error {
	tag, err := tx.tx.Exec(ctx, `UPDATE purchase_orders SET status = $1, updated_at = now()
		WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (tx *txRepo) DeleteOrder(ctx context.Context, id int64) error {
	if _, err := tx.tx.Exec(ctx, `DELETE FROM purchase_order_lines WHERE order_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.tx.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (tx *txRepo) InsertLine(ctx context.Context, l OrderLine) (int64, error) {
	var id int64
	err := tx.tx.QueryRow(ctx, `INSERT INTO purchase_order_lines (
		order_id, position, product_id, variant_id, product_title, variant_title, sku,
		purchase_description, qty_ordered, qty_received, qty_on_hand, qty_on_order,
		unit_cost, tax_percent, extended_cost, is_extra, is_removed
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	RETURNING id`,
		l.OrderID, l.Position, l.ProductID, l.VariantID, l.ProductTitle, l.VariantTitle,
		l.SKU, l.PurchaseDescription, l.QtyOrdered, l.QtyReceived, l.QtyOnHand,
		l.QtyOnOrder, l.UnitCost, l.TaxPercent, l.ExtendedCost, l.IsExtra, l.IsRemoved).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (tx *txRepo) UpdateLine(ctx context.Context, l OrderLine) error {
	tag, err := tx.tx.Exec(ctx, `UPDATE purchase_order_lines SET
		position = $1, product_id = $2, variant_id = $3, product_title = $4,
		variant_title = $5, sku = $6, purchase_description = $7, qty_ordered = $8,
		qty_received = $9, qty_on_hand = $10, qty_on_order = $11, unit_cost = $12,
		tax_percent = $13, extended_cost = $14, is_extra = $15, is_removed = $16
	WHERE id = $17`,
		l.Position, l.ProductID, l.VariantID, l.ProductTitle, l.VariantTitle, l.SKU,
		l.PurchaseDescription, l.QtyOrdered, l.QtyReceived, l.QtyOnHand, l.QtyOnOrder,
		l.UnitCost, l.TaxPercent, l.ExtendedCost, l.IsExtra, l.IsRemoved, l.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// mapPgError translates unique violations on the PO number into ErrDuplicate.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// itoa converts int to string for dynamic query building.
func itoa(i int) string {
	return fmt.Sprintf("%d", i)
}

// sortOrder returns a safe ORDER BY clause for the list query.
func sortOrder(sortBy, sortDir string) string {
	dir := "DESC"
	if sortDir == "asc" {
		dir = "ASC"
	}
	switch sortBy {
	case "po_number":
		return "o.po_number " + dir
	case "vendor":
		return "vendor_name " + dir
	case "order_date":
		return "o.order_date " + dir
	case "total":
		return "o.total " + dir
	case "status":
		return "o.status " + dir
	default:
		return "o.created_at DESC"
	}
}

var _ RepositoryPort = (*Repository)(nil)

// nullID turns the zero vendor/destination reference into SQL NULL so the
// foreign keys stay clean for unassigned drafts.
func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
