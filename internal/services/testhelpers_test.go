package service_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/retailcore/pos-gateway/internal/catalog"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/pkg/martapi/mocks"
	"github.com/stretchr/testify/mock"
)

// loader contexts are derived, so ctx is matched loosely everywhere
var mockAnything = mock.Anything

// memCache is a map-backed stand-in for the Redis cache. Values take the same
// JSON round trip they would through Redis.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string, value interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.data[key] = data

	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)

	return nil
}

func (c *memCache) Close() error { return nil }

func (c *memCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.data)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedLimiter fakes the sliding-window login limiter.
type fixedLimiter struct {
	allowed    bool
	remaining  int
	retryAfter int
	err        error
}

func (l *fixedLimiter) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	return l.allowed, l.remaining, l.retryAfter, l.err
}

func testProducts() []models.Product {
	return []models.Product{
		{ProductID: 1, Name: "Basmati Rice 5kg", Price: 12.50, StockQuantity: 10, CategoryID: 1, SupplierID: 1},
		{ProductID: 2, Name: "Sunflower Oil 1L", Price: 3.20, StockQuantity: 0, CategoryID: 1, SupplierID: 1},
		{ProductID: 3, Name: "Dish Soap", Price: 1.80, StockQuantity: 25, CategoryID: 2, SupplierID: 2},
	}
}

func testSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot(
		testProducts(),
		[]models.Category{
			{CategoryID: 1, Name: "Groceries"},
			{CategoryID: 2, Name: "Household"},
		},
		[]models.Supplier{
			{SupplierID: 1, Name: "Gupta Wholesale", CategoryID: 1},
			{SupplierID: 2, Name: "CleanCo", CategoryID: 2},
			{SupplierID: 3, Name: "Omni Traders"},
		},
		[]models.Customer{
			{CustomerID: 5, Name: "Ravi Kumar"},
		},
	)
}

var (
	testSnapshotCategories = models.CategoryListResponse{Categories: []models.Category{
		{CategoryID: 1, Name: "Groceries"},
		{CategoryID: 2, Name: "Household"},
	}}
	testSnapshotSuppliers = models.SupplierListResponse{Suppliers: []models.Supplier{
		{SupplierID: 1, Name: "Gupta Wholesale", CategoryID: 1},
		{SupplierID: 2, Name: "CleanCo", CategoryID: 2},
		{SupplierID: 3, Name: "Omni Traders"},
	}}
	testSnapshotCustomers = models.CustomerListResponse{Customers: []models.Customer{
		{CustomerID: 5, Name: "Ravi Kumar"},
	}}
)

// expectSnapshotLoad wires the four catalog list calls on the mock client.
func expectSnapshotLoad(api *mocks.Client) {
	api.On("ListProducts", mockAnything, 1, 500).
		Return(&models.ProductListResponse{Products: testProducts()}, nil)
	api.On("ListCategories", mockAnything, 1, 500).Return(&testSnapshotCategories, nil)
	api.On("ListSuppliers", mockAnything, 1, 500).Return(&testSnapshotSuppliers, nil)
	api.On("ListCustomers", mockAnything, 1, 500).Return(&testSnapshotCustomers, nil)
}
