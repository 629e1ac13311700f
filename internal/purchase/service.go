package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RepositoryPort describes repository operations used by Service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (OrderHeader, []OrderLine, error)
	List(ctx context.Context, limit, offset int, filters ListFilters) ([]ListItem, int, error)
}

// ListFilters narrows and orders the purchase order list.
type ListFilters struct {
	Status  string
	Vendor  int64
	Search  string
	SortBy  string
	SortDir string
}

// ListItem is one row of the purchase order list.
type ListItem struct {
	ID         int64     `json:"id"`
	PONumber   string    `json:"po_number"`
	VendorID   int64     `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Status     Status    `json:"status"`
	OrderDate  time.Time `json:"order_date"`
	Total      float64   `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecomputeObserver is notified every time a summary is recomputed.
type RecomputeObserver interface {
	ObserveRecompute()
}

// Service orchestrates the purchase order workflow on top of the pricing
// and validation primitives.
type Service struct {
	repo     RepositoryPort
	now      func() time.Time
	observer RecomputeObserver
}

// NewService constructs the purchase order service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetRecomputeObserver attaches a metrics hook. Safe to leave unset.
func (s *Service) SetRecomputeObserver(obs RecomputeObserver) {
	s.observer = obs
}

func (s *Service) recompute(lines []OrderLine, header OrderHeader) Summary {
	if s.observer != nil {
		s.observer.ObserveRecompute()
	}
	return Recompute(lines, header)
}

// SaveInput carries the editable order state from the transport layer.
// Values are already typed; the service re-normalizes them before use.
type SaveInput struct {
	Header OrderHeader
	Lines  []OrderLine
}

// Order is the full read model of one purchase order. Lines holds the
// visible set; Removed lists soft-removed lines without receipts so the
// caller can acknowledge them.
type Order struct {
	Header     OrderHeader      `json:"header"`
	Lines      []OrderLine      `json:"lines"`
	Removed    []OrderLine      `json:"removed_lines"`
	Summary    Summary          `json:"summary"`
	Validation ValidationResult `json:"validation"`
}

// CreateDraft persists a new order in Draft with normalized values and a
// recomputed summary. A caller-supplied PO number is kept as a custom
// number with the marker prefix; otherwise one is generated.
func (s *Service) CreateDraft(ctx context.Context, input SaveInput) (Order, error) {
	header := NormalizeHeader(input.Header)
	header.ID = 0
	header.Status = StatusDraft
	if header.OrderDate.IsZero() {
		header.OrderDate = s.now()
	}
	if header.PONumber != "" {
		header.CustomPONumber = true
		if !strings.HasPrefix(header.PONumber, CustomNumberPrefix) {
			header.PONumber = CustomNumberPrefix + header.PONumber
		}
	} else {
		header.CustomPONumber = false
		header.PONumber = generateNumber("PO")
	}

	lines := NormalizeLines(Renumber(input.Lines))
	summary := s.recompute(lines, header)
	header = ApplySummary(header, summary)

	res := ValidateDraft(header, lines)
	if !res.OK {
		return Order{Validation: res}, ErrValidation
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.CreateOrder(ctx, header)
		if err != nil {
			return err
		}
		header.ID = id
		for i := range lines {
			lines[i].OrderID = id
			lineID, err := tx.InsertLine(ctx, lines[i])
			if err != nil {
				return err
			}
			lines[i].ID = lineID
		}
		return nil
	})
	if err != nil {
		return Order{}, fmt.Errorf("create draft: %w", err)
	}
	return Order{Header: header, Lines: lines, Removed: []OrderLine{}, Summary: summary, Validation: res}, nil
}

// Get loads an order, partitions its lines and recomputes the summary.
func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	header, stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	visible, removed := Partition(stored)
	summary := s.recompute(stored, header)
	header = ApplySummary(header, summary)
	return Order{Header: header, Lines: visible, Removed: removed, Summary: summary}, nil
}

// List returns a page of the purchase order list.
func (s *Service) List(ctx context.Context, limit, offset int, filters ListFilters) ([]ListItem, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset, filters)
}

// Update replaces the editable state of a Draft or Open order. Lines with
// receipts keep their stored values regardless of the input; lines missing
// from the input are soft-removed. Open orders must stay valid under the
// strict rules (historical dates allowed).
func (s *Service) Update(ctx context.Context, id int64, input SaveInput) (Order, error) {
	current, stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if current.ReadOnly() {
		return Order{}, ErrLocked
	}

	header := input.Header
	header.ID = current.ID
	header.PONumber = current.PONumber
	header.CustomPONumber = current.CustomPONumber
	header.Status = current.Status
	header.OrderDate = current.OrderDate
	header.CreatedAt = current.CreatedAt
	header = NormalizeHeader(header)

	lines, err := mergeLines(id, stored, input.Lines)
	if err != nil {
		return Order{}, err
	}
	lines = NormalizeLines(lines)
	summary := s.recompute(lines, header)
	header = ApplySummary(header, summary)

	res := ValidateDraft(header, lines)
	if current.Status != StatusDraft {
		res = ValidateFinalize(header, lines, s.now(), FinalizeOptions{})
	}
	if !res.OK {
		return Order{Validation: res}, ErrValidation
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.UpdateOrder(ctx, header); err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = id
			if lines[i].ID == 0 {
				lineID, err := tx.InsertLine(ctx, lines[i])
				if err != nil {
					return err
				}
				lines[i].ID = lineID
				continue
			}
			if err := tx.UpdateLine(ctx, lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Order{}, fmt.Errorf("update order %d: %w", id, err)
	}

	visible, removed := Partition(lines)
	return Order{Header: header, Lines: visible, Removed: removed, Summary: summary, Validation: res}, nil
}

// Finalize runs the strict validation pass and moves a Draft to Open. The
// ValidationResult is returned either way so callers can render issues.
func (s *Service) Finalize(ctx context.Context, id int64) (ValidationResult, error) {
	header, stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return ValidationResult{}, err
	}
	if header.Status != StatusDraft {
		return ValidationResult{}, ErrInvalidState
	}

	visible, _ := Partition(stored)
	res := ValidateFinalize(header, visible, s.now(), FinalizeOptions{RequireFutureDates: true})
	if !res.OK {
		return res, ErrValidation
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.UpdateOrderStatus(ctx, id, StatusOpen)
	})
	if err != nil {
		return ValidationResult{}, fmt.Errorf("finalize order %d: %w", id, err)
	}
	return res, nil
}

// ReceiptInput records stock received against one line.
type ReceiptInput struct {
	LineID int64
	Qty    int64
}

// Receive adds received quantities to an Open or On Hold order. Receiving
// beyond the ordered quantity flags the line as extra rather than failing;
// warehouses regularly over-deliver.
func (s *Service) Receive(ctx context.Context, id int64, receipts []ReceiptInput) (Order, error) {
	header, stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if header.Status != StatusOpen && header.Status != StatusOnHold {
		return Order{}, ErrInvalidState
	}
	if len(receipts) == 0 {
		return Order{}, ErrValidation
	}

	byID := make(map[int64]int, len(stored))
	for i, l := range stored {
		byID[l.ID] = i
	}
	changed := make(map[int64]struct{}, len(receipts))
	for _, r := range receipts {
		idx, ok := byID[r.LineID]
		if !ok {
			return Order{}, fmt.Errorf("receive line %d: %w", r.LineID, ErrNotFound)
		}
		if r.Qty <= 0 {
			return Order{}, ErrValidation
		}
		line := &stored[idx]
		line.QtyReceived += r.Qty
		if line.QtyReceived > line.QtyOrdered {
			line.IsExtra = true
		}
		changed[r.LineID] = struct{}{}
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		for _, l := range stored {
			if _, ok := changed[l.ID]; !ok {
				continue
			}
			if err := tx.UpdateLine(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Order{}, fmt.Errorf("receive order %d: %w", id, err)
	}

	visible, removed := Partition(stored)
	summary := s.recompute(stored, header)
	header = ApplySummary(header, summary)
	return Order{Header: header, Lines: visible, Removed: removed, Summary: summary}, nil
}

// allowed status moves outside Finalize. Draft leaves only through
// Finalize; Closed and Complete are terminal.
var transitions = map[Status][]Status{
	StatusOpen:   {StatusOnHold, StatusClosed, StatusComplete},
	StatusOnHold: {StatusOpen},
}

// SetStatus applies a workflow transition.
func (s *Service) SetStatus(ctx context.Context, id int64, next Status) error {
	if !next.Valid() {
		return ErrValidation
	}
	header, _, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	ok := false
	for _, allowed := range transitions[header.Status] {
		if allowed == next {
			ok = true
			break
		}
	}
	if !ok {
		return ErrInvalidState
	}
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.UpdateOrderStatus(ctx, id, next)
	})
	if err != nil {
		return fmt.Errorf("set status of order %d: %w", id, err)
	}
	return nil
}

// DeleteDraft removes an unfinalized order entirely.
func (s *Service) DeleteDraft(ctx context.Context, id int64) error {
	header, _, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if header.Status != StatusDraft {
		return ErrInvalidState
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.DeleteOrder(ctx, id)
	})
}

// mergeLines reconciles incoming lines with storage. Locked lines pass
// through unchanged apart from the removal flag; unknown line IDs are
// rejected; stored lines absent from the input are soft-removed.
func mergeLines(orderID int64, stored, input []OrderLine) ([]OrderLine, error) {
	byID := make(map[int64]OrderLine, len(stored))
	for _, l := range stored {
		byID[l.ID] = l
	}

	merged := make([]OrderLine, 0, len(input))
	seen := make(map[int64]struct{}, len(input))
	for _, in := range input {
		if in.ID == 0 {
			in.OrderID = orderID
			in.QtyReceived = 0
			merged = append(merged, in)
			continue
		}
		prev, ok := byID[in.ID]
		if !ok {
			return nil, fmt.Errorf("line %d: %w", in.ID, ErrNotFound)
		}
		seen[in.ID] = struct{}{}
		if prev.Locked() {
			prev.IsRemoved = in.IsRemoved
			merged = append(merged, prev)
			continue
		}
		in.OrderID = orderID
		in.QtyReceived = prev.QtyReceived
		in.IsExtra = prev.IsExtra
		merged = append(merged, in)
	}

	for _, l := range stored {
		if _, ok := seen[l.ID]; ok {
			continue
		}
		l.IsRemoved = true
		merged = append(merged, l)
	}
	return Renumber(merged), nil
}

func generateNumber(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
