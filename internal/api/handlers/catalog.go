package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/retailcore/pos-gateway/internal/api/middleware"
	"github.com/retailcore/pos-gateway/internal/models"
	service "github.com/retailcore/pos-gateway/internal/services"
	"github.com/retailcore/pos-gateway/internal/utils"
	"github.com/retailcore/pos-gateway/internal/utils/response"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	productService *service.ProductService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService *service.CatalogService, productService *service.ProductService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		productService: productService,
		validator:      validator.New(),
	}
}

func (h *CatalogHandler) GetSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		snapshot, err := h.catalogService.Snapshot(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}

func (h *CatalogHandler) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		snapshot, err := h.catalogService.Refresh(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Catalog snapshot refreshed",
			slog.Int("products", len(snapshot.Products)))
		response.Success(w, http.StatusOK, snapshot)
	}
}

// BrowseProducts lists snapshot products, optionally filtered by category_id.
func (h *CatalogHandler) BrowseProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categoryID := utils.QueryInt64(r, "category_id")

		products, err := h.productService.Browse(r.Context(), categoryID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.ProductListResponse{Products: products})
	}
}

func (h *CatalogHandler) UpdateStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, err := utils.PathInt64(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.StockUpdateRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.productService.UpdateStock(r.Context(), productID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Stock updated",
			slog.Int64("productId", productID),
			slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *CatalogHandler) DashboardStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stats, err := h.productService.DashboardStats(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
