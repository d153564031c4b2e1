package purchase

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/pos-gateway/internal/catalog"
	"github.com/retailcore/pos-gateway/internal/models"
)

var (
	ErrLastLine             = errors.New("a purchase order keeps at least one line")
	ErrLineOutOfRange       = errors.New("line index out of range")
	ErrUnknownField         = errors.New("unknown line field")
	ErrSubmissionInProgress = errors.New("submission already in progress")
)

// Line is one purchase-order row under construction. Zero ProductID and
// Quantity mean "not chosen yet"; UnitPrice is a pointer because zero is a
// legitimate negotiated price.
type Line struct {
	ProductID int64    `json:"product_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

func (l Line) complete() bool {
	return l.ProductID > 0 && l.Quantity > 0 && l.UnitPrice != nil && *l.UnitPrice >= 0
}

// Draft is the purchase-order line builder: an ordered list of lines that
// never shrinks below one, bound to at most one supplier at a time.
type Draft struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	mu         sync.Mutex
	supplierID int64
	lines      []Line
	inFlight   atomic.Bool
}

func NewDraft() *Draft {
	now := time.Now()

	return &Draft{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		lines:     []Line{{}},
	}
}

func (d *Draft) SupplierID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.supplierID
}

// AddLine appends one blank line.
func (d *Draft) AddLine() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lines = append(d.lines, Line{})
	d.UpdatedAt = time.Now()
}

// RemoveLine removes the line at index; removing the only remaining line is
// refused so the builder never reaches zero lines.
func (d *Draft) RemoveLine(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.lines) {
		return ErrLineOutOfRange
	}

	if len(d.lines) == 1 {
		return ErrLastLine
	}

	d.lines = append(d.lines[:index], d.lines[index+1:]...)
	d.UpdatedAt = time.Now()

	return nil
}

// UpdateLine sets a single field of one line from its string form, exactly as
// the order form edits one input at a time. No cross-field validation happens
// here; Build performs it at submission.
func (d *Draft) UpdateLine(index int, field, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.lines) {
		return ErrLineOutOfRange
	}

	switch field {
	case "product_id":
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid product id %q", value)
		}

		d.lines[index].ProductID = id
	case "quantity":
		qty, err := strconv.Atoi(value)
		if err != nil || qty <= 0 {
			return fmt.Errorf("invalid quantity %q", value)
		}

		d.lines[index].Quantity = qty
	case "unit_price":
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price < 0 {
			return fmt.Errorf("invalid unit price %q", value)
		}

		d.lines[index].UnitPrice = &price
	default:
		return ErrUnknownField
	}

	d.UpdatedAt = time.Now()

	return nil
}

// ChangeSupplier binds the draft to a supplier and resets the line list to a
// single blank line. Switching suppliers changes the eligible category, so
// every previously chosen product is invalidated wholesale rather than
// filtered line by line.
func (d *Draft) ChangeSupplier(supplierID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.supplierID = supplierID
	d.lines = []Line{{}}
	d.UpdatedAt = time.Now()
}

// Lines returns a copy of the current lines in order.
func (d *Draft) Lines() []Line {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Line, len(d.lines))
	copy(out, d.lines)

	return out
}

// Build validates the draft against the eligible product set and converts it
// to the upstream request shape. Every line must be fully populated, name an
// eligible product, and no product may appear twice.
func (d *Draft) Build(eligible []models.Product) (*models.CreatePurchaseOrderRequest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.supplierID == 0 {
		return nil, errors.New("supplier is required")
	}

	seen := make(map[int64]struct{}, len(d.lines))
	items := make([]models.PurchaseOrderItem, 0, len(d.lines))

	for i, line := range d.lines {
		if !line.complete() {
			return nil, fmt.Errorf("line %d is incomplete", i+1)
		}

		if catalog.RetainSelection(eligible, line.ProductID) == 0 {
			return nil, fmt.Errorf("line %d: product %d is not in the supplier's category", i+1, line.ProductID)
		}

		if _, dup := seen[line.ProductID]; dup {
			return nil, fmt.Errorf("line %d: product %d appears more than once", i+1, line.ProductID)
		}

		seen[line.ProductID] = struct{}{}
		items = append(items, models.PurchaseOrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: *line.UnitPrice,
		})
	}

	return &models.CreatePurchaseOrderRequest{
		SupplierID: d.supplierID,
		Items:      items,
	}, nil
}

// BeginSubmit claims the single submission slot for this draft.
func (d *Draft) BeginSubmit() error {
	if !d.inFlight.CompareAndSwap(false, true) {
		return ErrSubmissionInProgress
	}

	return nil
}

func (d *Draft) EndSubmit() {
	d.inFlight.Store(false)
}
