package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	apperrors "github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/metrics"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/internal/purchase"
	"github.com/retailcore/pos-gateway/internal/repositories"
	"github.com/retailcore/pos-gateway/pkg/martapi"
)

// PurchaseService manages supplier-order drafts and their submission. Product
// eligibility follows the bound supplier's category.
type PurchaseService struct {
	store   *repositories.DraftStore
	catalog *CatalogService
	api     martapi.Client
	logger  *slog.Logger
}

func NewPurchaseService(store *repositories.DraftStore, catalog *CatalogService, api martapi.Client, logger *slog.Logger) *PurchaseService {
	return &PurchaseService{
		store:   store,
		catalog: catalog,
		api:     api,
		logger:  logger,
	}
}

func (s *PurchaseService) OpenDraft(ctx context.Context) *purchase.Draft {
	return s.store.Create(ctx)
}

func (s *PurchaseService) Draft(ctx context.Context, draftID uuid.UUID) (*purchase.Draft, error) {
	return s.store.Get(ctx, draftID)
}

func (s *PurchaseService) DiscardDraft(ctx context.Context, draftID uuid.UUID) {
	s.store.Delete(ctx, draftID)
}

func (s *PurchaseService) AddLine(ctx context.Context, draftID uuid.UUID) ([]purchase.Line, error) {

	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	d.AddLine()

	return d.Lines(), nil
}

func (s *PurchaseService) UpdateLine(ctx context.Context, draftID uuid.UUID, index int, req *models.UpdateDraftLineRequest) ([]purchase.Line, error) {

	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if err := d.UpdateLine(index, req.Field, req.Value); err != nil {
		switch {
		case errors.Is(err, purchase.ErrLineOutOfRange):
			return nil, apperrors.NotFoundError("Draft line not found")
		default:
			return nil, apperrors.ValidationError(err.Error())
		}
	}

	return d.Lines(), nil
}

func (s *PurchaseService) RemoveLine(ctx context.Context, draftID uuid.UUID, index int) ([]purchase.Line, error) {

	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if err := d.RemoveLine(index); err != nil {
		switch {
		case errors.Is(err, purchase.ErrLineOutOfRange):
			return nil, apperrors.NotFoundError("Draft line not found")
		case errors.Is(err, purchase.ErrLastLine):
			return nil, apperrors.ConflictError("A purchase order needs at least one line")
		default:
			return nil, apperrors.InternalError("Failed to remove draft line").WithError(err)
		}
	}

	return d.Lines(), nil
}

// ChangeSupplier binds the draft to a supplier. Lines reset to a single blank
// line because the eligible product set changes with the supplier.
func (s *PurchaseService) ChangeSupplier(ctx context.Context, draftID uuid.UUID, supplierID int64) ([]purchase.Line, error) {

	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := snapshot.Supplier(supplierID); !ok {
		return nil, apperrors.NotFoundError("Supplier not found")
	}

	d.ChangeSupplier(supplierID)

	return d.Lines(), nil
}

// EligibleProducts lists the products the draft's supplier can source. An
// unbound draft has no eligible products; a supplier with no category
// constraint can source the whole catalog.
func (s *PurchaseService) EligibleProducts(ctx context.Context, draftID uuid.UUID) ([]models.Product, error) {

	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if d.SupplierID() == 0 {
		return []models.Product{}, nil
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snapshot.EligibleForSupplier(d.SupplierID()), nil
}

// Submit validates the draft against current eligibility and sends it
// upstream. The draft survives failures for correction; success discards it.
func (s *PurchaseService) Submit(ctx context.Context, draftID uuid.UUID) (*models.CreatePurchaseOrderResponse, error) {

	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if err := d.BeginSubmit(); err != nil {
		return nil, apperrors.ConflictError("A submission for this draft is already in progress")
	}
	defer d.EndSubmit()

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		metrics.RecordPurchaseOrder("failure")

		return nil, err
	}

	req, err := d.Build(snapshot.EligibleForSupplier(d.SupplierID()))
	if err != nil {
		metrics.RecordPurchaseOrder("failure")

		return nil, apperrors.ValidationError(err.Error())
	}

	resp, err := s.api.CreatePurchaseOrder(ctx, req)
	if err != nil {
		metrics.RecordPurchaseOrder("failure")

		return nil, err
	}

	s.store.Delete(ctx, draftID)
	s.catalog.Invalidate(ctx)

	metrics.RecordPurchaseOrder("success")
	s.logger.Info("purchase order submitted",
		slog.Int64("orderId", resp.OrderID),
		slog.Int64("supplierId", req.SupplierID),
		slog.Int("lines", len(req.Items)))

	return resp, nil
}

// Receive marks an order received upstream, which restocks its products, so
// the cached catalog snapshot is dropped.
func (s *PurchaseService) Receive(ctx context.Context, orderID int64) (*models.MessageResponse, error) {

	resp, err := s.api.ReceivePurchaseOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.catalog.Invalidate(ctx)

	return resp, nil
}

func (s *PurchaseService) ListOrders(ctx context.Context, page, pageSize int) (*models.PurchaseOrderListResponse, error) {
	return s.api.ListPurchaseOrders(ctx, page, pageSize)
}

func (s *PurchaseService) OrderDetails(ctx context.Context, orderID int64) (*models.PurchaseOrderDetailResponse, error) {
	return s.api.PurchaseOrderDetails(ctx, orderID)
}
