package martapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, 2*time.Second)
}

func TestClient_ListProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/products", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "500", r.URL.Query().Get("page_size"))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.ProductListResponse{
				Products: []models.Product{
					{ProductID: 7, Name: "Basmati Rice 5kg", Price: 12.50, StockQuantity: 40, CategoryID: 2},
				},
			})
		})

		// Act
		resp, err := client.ListProducts(context.Background(), 1, 500)

		// Assert
		require.NoError(t, err)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, int64(7), resp.Products[0].ProductID)
		assert.Equal(t, "Basmati Rice 5kg", resp.Products[0].Name)
	})

	t.Run("Upstream error carries detail message", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "database connection lost"})
		})

		// Act
		resp, err := client.ListProducts(context.Background(), 1, 500)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeUpstreamRejected, appErr.Code)
		assert.Equal(t, "database connection lost", appErr.Message)
	})

	t.Run("Upstream error without detail degrades to generic message", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("not json"))
		})

		// Act
		_, err := client.ListProducts(context.Background(), 1, 500)

		// Assert
		require.Error(t, err)

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "The inventory service rejected the request", appErr.Message)
	})
}

func TestClient_CreateSale(t *testing.T) {
	t.Run("Success posts the sale payload", func(t *testing.T) {
		// Arrange
		var received models.CreateSaleRequest

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/sales", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.CreateSaleResponse{SaleID: 101, Message: "Sale recorded"})
		})

		req := &models.CreateSaleRequest{
			Items: []models.SaleItem{
				{ProductID: 7, Quantity: 2},
				{ProductID: 9, Quantity: 1},
			},
			PaymentMethod:      "CASH",
			EmployeeID:         3,
			DiscountPercentage: 10,
		}

		// Act
		resp, err := client.CreateSale(context.Background(), req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(101), resp.SaleID)
		assert.Equal(t, req.Items, received.Items)
		assert.Equal(t, "CASH", received.PaymentMethod)
		assert.Equal(t, float64(10), received.DiscountPercentage)
	})

	t.Run("Insufficient stock rejection", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Insufficient stock for product Basmati Rice 5kg"})
		})

		// Act
		resp, err := client.CreateSale(context.Background(), &models.CreateSaleRequest{
			Items:         []models.SaleItem{{ProductID: 7, Quantity: 999}},
			PaymentMethod: "CARD",
			EmployeeID:    3,
		})

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeUpstreamRejected, appErr.Code)
		assert.Contains(t, appErr.Message, "Insufficient stock")
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)

			var req models.LoginRequest

			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "asha", req.Username)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.UpstreamLoginResponse{
				EmployeeID: 3,
				Name:       "Asha Verma",
				Role:       models.RoleManager,
			})
		})

		// Act
		resp, err := client.Login(context.Background(), &models.LoginRequest{Username: "asha", Password: "secret"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.EmployeeID)
		assert.Equal(t, models.RoleManager, resp.Role)
	})

	t.Run("Bad credentials map to unauthorized", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid username or password"})
		})

		// Act
		_, err := client.Login(context.Background(), &models.LoginRequest{Username: "asha", Password: "wrong"})

		// Assert
		require.Error(t, err)

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "Invalid username or password", appErr.Message)
	})
}

func TestClient_Unreachable(t *testing.T) {
	// Arrange: a server that is already gone
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewClient(baseURL, 500*time.Millisecond)

	// Act
	err := client.Ping(context.Background())

	// Assert
	require.Error(t, err)

	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamUnavailable, appErr.Code)
}

func TestClient_ReceivePurchaseOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/purchase-orders/42/receive", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: "Purchase order received"})
		})

		// Act
		resp, err := client.ReceivePurchaseOrder(context.Background(), 42)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Purchase order received", resp.Message)
	})

	t.Run("Unknown order maps to not found", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Purchase order not found"})
		})

		// Act
		_, err := client.ReceivePurchaseOrder(context.Background(), 42)

		// Assert
		require.Error(t, err)

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	})
}
