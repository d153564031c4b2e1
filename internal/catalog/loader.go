package catalog

import (
	"context"

	"github.com/retailcore/pos-gateway/internal/models"
	"golang.org/x/sync/errgroup"
)

// one page large enough for the whole catalog of a single store
const snapshotPageSize = 500

// API is the slice of the inventory client the loader needs.
type API interface {
	ListProducts(ctx context.Context, page, pageSize int) (*models.ProductListResponse, error)
	ListCategories(ctx context.Context, page, pageSize int) (*models.CategoryListResponse, error)
	ListSuppliers(ctx context.Context, page, pageSize int) (*models.SupplierListResponse, error)
	ListCustomers(ctx context.Context, page, pageSize int) (*models.CustomerListResponse, error)
}

type Loader struct {
	api API
}

func NewLoader(api API) *Loader {
	return &Loader{api: api}
}

// Load fetches the four catalog collections concurrently and assembles a
// snapshot only when every fetch succeeded. One failure fails the whole load;
// a partially populated snapshot is never produced.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var (
		products   *models.ProductListResponse
		categories *models.CategoryListResponse
		suppliers  *models.SupplierListResponse
		customers  *models.CustomerListResponse
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		products, err = l.api.ListProducts(ctx, 1, snapshotPageSize)

		return err
	})
	g.Go(func() error {
		var err error
		categories, err = l.api.ListCategories(ctx, 1, snapshotPageSize)

		return err
	})
	g.Go(func() error {
		var err error
		suppliers, err = l.api.ListSuppliers(ctx, 1, snapshotPageSize)

		return err
	})
	g.Go(func() error {
		var err error
		customers, err = l.api.ListCustomers(ctx, 1, snapshotPageSize)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewSnapshot(products.Products, categories.Categories, suppliers.Suppliers, customers.Customers), nil
}
