package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/retailcore/pos-gateway/internal/catalog"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeSnapshot() *catalog.Snapshot {
	products := []models.Product{
		{ProductID: 1, Name: "Basmati Rice 5kg", Price: 12.50, StockQuantity: 10, CategoryID: 1},
		{ProductID: 2, Name: "Sunflower Oil 1L", Price: 3.20, StockQuantity: 0, CategoryID: 1},
		{ProductID: 3, Name: "Dish Soap", Price: 1.80, StockQuantity: 25, CategoryID: 2},
	}
	categories := []models.Category{
		{CategoryID: 1, Name: "Groceries"},
		{CategoryID: 2, Name: "Household"},
	}
	suppliers := []models.Supplier{
		{SupplierID: 1, Name: "Grain Traders", CategoryID: 1},
		{SupplierID: 2, Name: "CleanCo", CategoryID: 2},
		{SupplierID: 3, Name: "General Wholesale"},
	}
	customers := []models.Customer{
		{CustomerID: 5, Name: "Walk-in"},
	}

	return catalog.NewSnapshot(products, categories, suppliers, customers)
}

func TestSnapshot_Lookups(t *testing.T) {
	t.Run("Finds products, suppliers and customers by id", func(t *testing.T) {
		// Arrange
		snap := storeSnapshot()

		// Act & Assert
		p, ok := snap.Product(3)
		require.True(t, ok)
		assert.Equal(t, "Dish Soap", p.Name)

		sup, ok := snap.Supplier(2)
		require.True(t, ok)
		assert.Equal(t, "CleanCo", sup.Name)

		c, ok := snap.Customer(5)
		require.True(t, ok)
		assert.Equal(t, "Walk-in", c.Name)
	})

	t.Run("Unknown ids report absence", func(t *testing.T) {
		// Arrange
		snap := storeSnapshot()

		// Act & Assert
		_, ok := snap.Product(99)
		assert.False(t, ok)

		_, ok = snap.Supplier(99)
		assert.False(t, ok)
	})

	t.Run("Snapshot rebuilt from JSON indexes itself on first lookup", func(t *testing.T) {
		// Arrange: the cache stores snapshots as plain JSON, losing the index
		raw, err := json.Marshal(storeSnapshot())
		require.NoError(t, err)

		var revived catalog.Snapshot
		require.NoError(t, json.Unmarshal(raw, &revived))

		// Act
		p, ok := revived.Product(1)

		// Assert
		require.True(t, ok)
		assert.Equal(t, "Basmati Rice 5kg", p.Name)
	})
}

func TestSnapshot_EligibleByCategory(t *testing.T) {
	t.Run("Filters to one category in catalog order", func(t *testing.T) {
		// Arrange
		snap := storeSnapshot()

		// Act
		eligible := snap.EligibleByCategory(1)

		// Assert
		require.Len(t, eligible, 2)
		assert.Equal(t, int64(1), eligible[0].ProductID)
		assert.Equal(t, int64(2), eligible[1].ProductID)
	})

	t.Run("AllCategories returns the full catalog as a copy", func(t *testing.T) {
		// Arrange
		snap := storeSnapshot()

		// Act
		eligible := snap.EligibleByCategory(catalog.AllCategories)
		eligible[0].Name = "mutated"

		// Assert
		assert.Len(t, eligible, 3)
		p, _ := snap.Product(1)
		assert.Equal(t, "Basmati Rice 5kg", p.Name, "caller mutations do not reach the snapshot")
	})

	t.Run("Category without products yields empty", func(t *testing.T) {
		// Arrange
		snap := storeSnapshot()

		// Act & Assert
		assert.Empty(t, snap.EligibleByCategory(42))
	})
}

func TestSnapshot_EligibleForSupplier(t *testing.T) {
	// Arrange
	snap := storeSnapshot()

	t.Run("Constrained supplier sees only its category", func(t *testing.T) {
		eligible := snap.EligibleForSupplier(2)

		require.Len(t, eligible, 1)
		assert.Equal(t, "Dish Soap", eligible[0].Name)
	})

	t.Run("Unconstrained supplier sees the whole catalog", func(t *testing.T) {
		assert.Len(t, snap.EligibleForSupplier(3), 3)
	})

	t.Run("Unknown supplier sees nothing", func(t *testing.T) {
		assert.Nil(t, snap.EligibleForSupplier(99))
	})
}

func TestRetainSelection(t *testing.T) {
	// Arrange
	snap := storeSnapshot()
	groceries := snap.EligibleByCategory(1)

	t.Run("Keeps a still-eligible selection", func(t *testing.T) {
		assert.Equal(t, int64(1), catalog.RetainSelection(groceries, 1))
	})

	t.Run("Clears a selection the narrowed set no longer holds", func(t *testing.T) {
		assert.Equal(t, int64(0), catalog.RetainSelection(groceries, 3))
	})

	t.Run("Empty set clears everything", func(t *testing.T) {
		assert.Equal(t, int64(0), catalog.RetainSelection(nil, 1))
	})
}

type stubAPI struct {
	productsErr   error
	categoriesErr error
}

func (s *stubAPI) ListProducts(_ context.Context, _, _ int) (*models.ProductListResponse, error) {
	if s.productsErr != nil {
		return nil, s.productsErr
	}

	return &models.ProductListResponse{Products: []models.Product{{ProductID: 1, Name: "Basmati Rice 5kg"}}}, nil
}

func (s *stubAPI) ListCategories(_ context.Context, _, _ int) (*models.CategoryListResponse, error) {
	if s.categoriesErr != nil {
		return nil, s.categoriesErr
	}

	return &models.CategoryListResponse{Categories: []models.Category{{CategoryID: 1, Name: "Groceries"}}}, nil
}

func (s *stubAPI) ListSuppliers(_ context.Context, _, _ int) (*models.SupplierListResponse, error) {
	return &models.SupplierListResponse{Suppliers: []models.Supplier{{SupplierID: 1, Name: "Grain Traders"}}}, nil
}

func (s *stubAPI) ListCustomers(_ context.Context, _, _ int) (*models.CustomerListResponse, error) {
	return &models.CustomerListResponse{Customers: []models.Customer{{CustomerID: 5, Name: "Walk-in"}}}, nil
}

func TestLoader_Load(t *testing.T) {
	t.Run("Assembles all four collections", func(t *testing.T) {
		// Arrange
		loader := catalog.NewLoader(&stubAPI{})

		// Act
		snap, err := loader.Load(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Len(t, snap.Products, 1)
		assert.Len(t, snap.Categories, 1)
		assert.Len(t, snap.Suppliers, 1)
		assert.Len(t, snap.Customers, 1)
		assert.False(t, snap.LoadedAt.IsZero())
	})

	t.Run("One failed fetch fails the whole load", func(t *testing.T) {
		// Arrange
		boom := errors.New("connection refused")
		loader := catalog.NewLoader(&stubAPI{categoriesErr: boom})

		// Act
		snap, err := loader.Load(context.Background())

		// Assert
		require.ErrorIs(t, err, boom)
		assert.Nil(t, snap, "no partially populated snapshot")
	})
}
