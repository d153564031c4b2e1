package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/retailcore/pos-gateway/internal/cart"
	"github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/metrics"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/internal/pricing"
	"github.com/retailcore/pos-gateway/internal/repositories"
	"github.com/retailcore/pos-gateway/internal/session"
	"github.com/retailcore/pos-gateway/pkg/martapi"
)

// SaleService drives a sale from an empty cart through checkout. The cart is
// working state owned by the gateway; the sale record itself is created by the
// inventory API at submission.
type SaleService struct {
	store     *repositories.CartStore
	catalog   *CatalogService
	api       martapi.Client
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

func NewSaleService(store *repositories.CartStore, catalog *CatalogService, api martapi.Client, logger *slog.Logger) *SaleService {
	return &SaleService{
		store:     store,
		catalog:   catalog,
		api:       api,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

func (s *SaleService) OpenCart(ctx context.Context) *cart.Cart {
	return s.store.Create(ctx)
}

func (s *SaleService) Cart(ctx context.Context, cartID uuid.UUID) (*cart.Cart, error) {
	return s.store.Get(ctx, cartID)
}

// AddItem adds one unit of the product to the cart, resolving it against the
// current catalog snapshot.
func (s *SaleService) AddItem(ctx context.Context, cartID uuid.UUID, productID int64) ([]cart.Line, error) {

	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	product, ok := snapshot.Product(productID)
	if !ok {
		return nil, errors.NotFoundError("Product not found in catalog")
	}

	if err := c.AddItem(product); err != nil {
		switch err {
		case cart.ErrOutOfStock:
			return nil, errors.ConflictError(fmt.Sprintf("%s is out of stock", product.Name))
		case cart.ErrExceedsStock:
			return nil, errors.ConflictError(fmt.Sprintf("Only %d units of %s are available", product.StockQuantity, product.Name))
		default:
			return nil, errors.InternalError("Failed to add item to cart").WithError(err)
		}
	}

	return c.Lines(), nil
}

// SetQuantity applies the quantity stepper. Zero removes the line. Stock is
// deliberately not re-checked here; checkout validates against live stock.
func (s *SaleService) SetQuantity(ctx context.Context, cartID uuid.UUID, req *models.SetQuantityRequest) ([]cart.Line, error) {

	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.SetQuantity(req.ProductID, req.Quantity)

	return c.Lines(), nil
}

// Quote prices the cart at the given discount without submitting anything.
func (s *SaleService) Quote(ctx context.Context, cartID uuid.UUID, discountPercent float64) (*models.CartQuote, error) {

	if discountPercent < 0 || discountPercent > 100 {
		return nil, errors.ValidationError("Discount percentage must be between 0 and 100")
	}

	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	quote := pricing.NewQuote(c.Lines(), discountPercent)

	return &models.CartQuote{
		Subtotal:       quote.Subtotal.StringFixed(2),
		DiscountAmount: quote.DiscountAmount.StringFixed(2),
		Total:          quote.Total.StringFixed(2),
	}, nil
}

// Cancel discards the cart entirely.
func (s *SaleService) Cancel(ctx context.Context, cartID uuid.UUID) error {

	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return err
	}

	c.Clear()
	s.store.Delete(ctx, cartID)

	return nil
}

// Checkout submits the cart as a sale. The cart survives any failure untouched
// so the cashier can correct and retry; it is discarded only on success.
func (s *SaleService) Checkout(ctx context.Context, cartID uuid.UUID, sess session.Session, req *models.CheckoutRequest) (*models.CreateSaleResponse, error) {

	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c.Empty() {
		return nil, errors.BadRequestError("Cannot checkout an empty cart")
	}

	if err := c.BeginCheckout(); err != nil {
		return nil, errors.ConflictError("A checkout for this cart is already in progress")
	}
	defer c.EndCheckout()

	lines := c.Lines()

	// re-validate against live stock, not the possibly stale session snapshot
	snapshot, err := s.catalog.Refresh(ctx)
	if err != nil {
		metrics.RecordCheckout("failure")

		return nil, err
	}

	items := make([]models.SaleItem, 0, len(lines))

	for _, line := range lines {
		product, ok := snapshot.Product(line.ProductID)
		if !ok {
			metrics.RecordCheckout("failure")

			return nil, errors.ConflictError(fmt.Sprintf("%s is no longer in the catalog", line.Name))
		}

		if product.StockQuantity < line.Quantity {
			metrics.RecordCheckout("failure")

			return nil, errors.ConflictError(fmt.Sprintf("Only %d units of %s are available", product.StockQuantity, product.Name))
		}

		items = append(items, models.SaleItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	saleReq := &models.CreateSaleRequest{
		Items:              items,
		PaymentMethod:      req.PaymentMethod,
		CustomerID:         req.CustomerID,
		EmployeeID:         sess.EmployeeID,
		DiscountPercentage: req.DiscountPercentage,
		CustomerRating:     req.CustomerRating,
	}

	if req.Feedback != "" {
		clean := s.sanitizer.Sanitize(req.Feedback)
		saleReq.Feedback = &clean
	}

	resp, err := s.api.CreateSale(ctx, saleReq)
	if err != nil {
		metrics.RecordCheckout("failure")

		return nil, err
	}

	c.Clear()
	s.store.Delete(ctx, cartID)
	s.catalog.Invalidate(ctx)

	metrics.RecordCheckout("success")
	s.logger.Info("sale recorded",
		slog.Int64("saleId", resp.SaleID),
		slog.Int64("employeeId", sess.EmployeeID),
		slog.Int("items", len(items)))

	return resp, nil
}

func (s *SaleService) ListSales(ctx context.Context, page, pageSize int) (*models.SaleListResponse, error) {
	return s.api.ListSales(ctx, page, pageSize)
}

func (s *SaleService) SaleDetails(ctx context.Context, saleID int64) (*models.SaleDetailResponse, error) {
	return s.api.SaleDetails(ctx, saleID)
}
