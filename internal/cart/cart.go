package cart

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock         = errors.New("product out of stock")
	ErrExceedsStock       = errors.New("cannot add more than available stock")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// Line is one selected product within an in-progress sale. Name and unit price
// are snapshotted when the product is first added and stay fixed for the life
// of the cart, regardless of later catalog changes.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart is the mutable aggregate for one in-progress checkout. Lines keep
// insertion order and stay unique per product. The aggregate is discarded on
// successful submission or cancellation; it is never persisted.
type Cart struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	mu       sync.Mutex
	lines    []Line
	index    map[int64]int
	inFlight atomic.Bool
}

func New() *Cart {
	now := time.Now()

	return &Cart{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		index:     make(map[int64]int),
	}
}

// AddItem adds one unit of the product. A repeated add increments the existing
// line instead of duplicating it. The quantity is capped at the stock level the
// product had when offered to the aggregate.
func (c *Cart) AddItem(product models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if product.StockQuantity == 0 {
		return ErrOutOfStock
	}

	if i, ok := c.index[product.ProductID]; ok {
		if c.lines[i].Quantity >= product.StockQuantity {
			return ErrExceedsStock
		}

		c.lines[i].Quantity++
		c.UpdatedAt = time.Now()

		return nil
	}

	c.index[product.ProductID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ProductID: product.ProductID,
		Name:      product.Name,
		UnitPrice: decimal.NewFromFloat(product.Price),
		Quantity:  1,
	})
	c.UpdatedAt = time.Now()

	return nil
}

// SetQuantity sets a line's quantity directly, mirroring the +/- stepper.
// A quantity of zero or less removes the line; removing an absent line is a
// no-op, not an error. Stock is not re-checked here; checkout re-validates
// every line against the live catalog before submission.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[productID]
	if !ok {
		return
	}

	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		delete(c.index, productID)

		for j := i; j < len(c.lines); j++ {
			c.index[c.lines[j].ProductID] = j
		}
	} else {
		c.lines[i].Quantity = quantity
	}

	c.UpdatedAt = time.Now()
}

// Clear empties the cart; used on cancel and after a successful submission.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.index = make(map[int64]int)
	c.UpdatedAt = time.Now()
}

// Lines returns the current lines in insertion order. The slice is a copy; the
// caller cannot mutate the aggregate through it.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)

	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lines)
}

func (c *Cart) Empty() bool {
	return c.Len() == 0
}

// BeginCheckout claims the single submission slot, guarding against double
// submission from rapid repeated clicks. Callers must release it with
// EndCheckout when the submission settles.
func (c *Cart) BeginCheckout() error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrCheckoutInProgress
	}

	return nil
}

func (c *Cart) EndCheckout() {
	c.inFlight.Store(false)
}
