package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/retailcore/pos-gateway/internal/api/middleware"
	apperrors "github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/internal/purchase"
	service "github.com/retailcore/pos-gateway/internal/services"
	"github.com/retailcore/pos-gateway/internal/utils"
	"github.com/retailcore/pos-gateway/internal/utils/response"
)

type PurchaseHandler struct {
	purchaseService *service.PurchaseService
	validator       *validator.Validate
}

func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService, validator: validator.New()}
}

type draftView struct {
	DraftID    string          `json:"draft_id"`
	SupplierID int64           `json:"supplier_id"`
	Lines      []purchase.Line `json:"lines"`
}

// lineIndex parses the {index} path segment as a zero-based line index.
func lineIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		return 0, apperrors.BadRequestError("Invalid line index")
	}

	return index, nil
}

func (h *PurchaseHandler) CreateDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		d := h.purchaseService.OpenDraft(r.Context())

		middleware.LoggerFromContext(r.Context()).Info("Purchase order draft opened",
			slog.String("draftId", d.ID.String()))
		response.Success(w, http.StatusCreated, draftView{DraftID: d.ID.String(), Lines: d.Lines()})
	}
}

func (h *PurchaseHandler) GetDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		draftID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		d, err := h.purchaseService.Draft(r.Context(), draftID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, draftView{
			DraftID:    d.ID.String(),
			SupplierID: d.SupplierID(),
			Lines:      d.Lines(),
		})
	}
}

func (h *PurchaseHandler) DiscardDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		draftID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		if _, err := h.purchaseService.Draft(r.Context(), draftID); err != nil {
			response.Error(w, err)

			return
		}

		h.purchaseService.DiscardDraft(r.Context(), draftID)
		response.Success(w, http.StatusOK, models.MessageResponse{Message: "Draft discarded"})
	}
}

func (h *PurchaseHandler) AddLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		draftID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		lines, err := h.purchaseService.AddLine(r.Context(), draftID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, draftView{DraftID: draftID.String(), Lines: lines})
	}
}

func (h *PurchaseHandler) UpdateLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		draftID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		index, err := lineIndex(r)
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.UpdateDraftLineRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		lines, err := h.purchaseService.UpdateLine(r.Context(), draftID, index, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, draftView{DraftID: draftID.String(), Lines: lines})
	}
}

func (h *PurchaseHandler) RemoveLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		draftID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		index, err := lineIndex(r)
		if err != nil {
			response.Error(w, err)

			return
		}

		lines, err := h.purchaseService.RemoveLine(r.Context(), draftID, index)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, draftView{DraftID: draftID.String(), Lines: lines})
	}
}

func (h *PurchaseHandler) ChangeSupplier() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		draftID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.ChangeSupplierRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		lines, err := h.purchaseService.ChangeSupplier(r.Context(), draftID, req.SupplierID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, draftView{
			DraftID:    draftID.String(),
			SupplierID: req.SupplierID,
			Lines:      lines,
		})
	}
}

func (h *PurchaseHandler) EligibleProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		draftID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		products, err := h.purchaseService.EligibleProducts(r.Context(), draftID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.ProductListResponse{Products: products})
	}
}

func (h *PurchaseHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		draftID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		resp, err := h.purchaseService.Submit(r.Context(), draftID)
		if err != nil {
			logger.Warn("Purchase order submission failed",
				slog.String("draftId", draftID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *PurchaseHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page := utils.QueryInt(r, "page", 1)
		pageSize := utils.QueryInt(r, "page_size", 20)

		resp, err := h.purchaseService.ListOrders(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *PurchaseHandler) OrderDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orderID, err := utils.PathInt64(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		resp, err := h.purchaseService.OrderDetails(r.Context(), orderID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *PurchaseHandler) Receive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orderID, err := utils.PathInt64(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		resp, err := h.purchaseService.Receive(r.Context(), orderID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
