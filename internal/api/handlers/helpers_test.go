package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/retailcore/pos-gateway/internal/api/handlers"
	"github.com/retailcore/pos-gateway/internal/catalog"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/internal/repositories"
	service "github.com/retailcore/pos-gateway/internal/services"
	"github.com/retailcore/pos-gateway/pkg/martapi/mocks"
	"github.com/stretchr/testify/mock"
)

var mockAnything = mock.Anything

// memCache stands in for Redis; values take the same JSON round trip.
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// allowAllLimiter never throttles, for login tests not about rate limiting.
type allowAllLimiter struct{}

func (allowAllLimiter) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	return true, 5, 0, nil
}

type blockedLimiter struct{ retryAfter int }

func (l blockedLimiter) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	return false, 0, l.retryAfter, nil
}

func testProducts() []models.Product {
	return []models.Product{
		{ProductID: 1, Name: "Basmati Rice 5kg", Price: 12.50, StockQuantity: 10, CategoryID: 1, SupplierID: 1},
		{ProductID: 2, Name: "Sunflower Oil 1L", Price: 3.20, StockQuantity: 0, CategoryID: 1, SupplierID: 1},
		{ProductID: 3, Name: "Dish Soap", Price: 1.80, StockQuantity: 25, CategoryID: 2, SupplierID: 2},
	}
}

// expectSnapshotLoad wires the four catalog list calls on the mock client.
func expectSnapshotLoad(api *mocks.Client) {
	api.On("ListProducts", mockAnything, 1, 500).
		Return(&models.ProductListResponse{Products: testProducts()}, nil)
	api.On("ListCategories", mockAnything, 1, 500).
		Return(&models.CategoryListResponse{Categories: []models.Category{
			{CategoryID: 1, Name: "Groceries"},
			{CategoryID: 2, Name: "Household"},
		}}, nil)
	api.On("ListSuppliers", mockAnything, 1, 500).
		Return(&models.SupplierListResponse{Suppliers: []models.Supplier{
			{SupplierID: 1, Name: "Gupta Wholesale", CategoryID: 1},
			{SupplierID: 2, Name: "CleanCo", CategoryID: 2},
		}}, nil)
	api.On("ListCustomers", mockAnything, 1, 500).
		Return(&models.CustomerListResponse{Customers: []models.Customer{
			{CustomerID: 5, Name: "Ravi Kumar"},
		}}, nil)
}

func newCatalogService(api *mocks.Client) *service.CatalogService {
	return service.NewCatalogService(catalog.NewLoader(api), newMemCache(), time.Minute, discardLogger())
}

func setupCartTest() (*mocks.Client, *repositories.CartStore, *handlers.CartHandler) {
	api := new(mocks.Client)
	store := repositories.NewCartStore()
	saleService := service.NewSaleService(store, newCatalogService(api), api, discardLogger())

	return api, store, handlers.NewCartHandler(saleService)
}

func setupPurchaseTest() (*mocks.Client, *repositories.DraftStore, *handlers.PurchaseHandler) {
	api := new(mocks.Client)
	store := repositories.NewDraftStore()
	purchaseService := service.NewPurchaseService(store, newCatalogService(api), api, discardLogger())

	return api, store, handlers.NewPurchaseHandler(purchaseService)
}

func setupCatalogTest() (*mocks.Client, *handlers.CatalogHandler) {
	api := new(mocks.Client)
	catalogService := newCatalogService(api)
	productService := service.NewProductService(api, catalogService)

	return api, handlers.NewCatalogHandler(catalogService, productService)
}
