package service

import (
	"context"

	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/pkg/martapi"
)

// ProductService covers the product-screen operations that do not touch a
// cart: category-filtered browsing, stock adjustment, and dashboard stats.
type ProductService struct {
	api     martapi.Client
	catalog *CatalogService
}

func NewProductService(api martapi.Client, catalog *CatalogService) *ProductService {
	return &ProductService{api: api, catalog: catalog}
}

// Browse lists snapshot products filtered by category. Category 0 means all.
func (s *ProductService) Browse(ctx context.Context, categoryID int64) ([]models.Product, error) {

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snapshot.EligibleByCategory(categoryID), nil
}

// UpdateStock adjusts a product's stock upstream and drops the cached
// snapshot so the change is visible immediately.
func (s *ProductService) UpdateStock(ctx context.Context, productID int64, req *models.StockUpdateRequest) (*models.MessageResponse, error) {

	resp, err := s.api.UpdateStock(ctx, productID, req)
	if err != nil {
		return nil, err
	}

	s.catalog.Invalidate(ctx)

	return resp, nil
}

func (s *ProductService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return s.api.DashboardStats(ctx)
}
