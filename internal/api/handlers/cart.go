package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/retailcore/pos-gateway/internal/api/middleware"
	"github.com/retailcore/pos-gateway/internal/cart"
	apperrors "github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/models"
	service "github.com/retailcore/pos-gateway/internal/services"
	"github.com/retailcore/pos-gateway/internal/utils"
	"github.com/retailcore/pos-gateway/internal/utils/response"
)

type CartHandler struct {
	saleService *service.SaleService
	validator   *validator.Validate
}

func NewCartHandler(saleService *service.SaleService) *CartHandler {
	return &CartHandler{saleService: saleService, validator: validator.New()}
}

// cartView is the wire shape of a cart: its id plus ordered lines.
type cartView struct {
	CartID string      `json:"cart_id"`
	Lines  []cart.Line `json:"lines"`
}

func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		c := h.saleService.OpenCart(r.Context())

		middleware.LoggerFromContext(r.Context()).Info("Cart opened", slog.String("cartId", c.ID.String()))
		response.Success(w, http.StatusCreated, cartView{CartID: c.ID.String(), Lines: c.Lines()})
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		c, err := h.saleService.Cart(r.Context(), cartID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cartView{CartID: c.ID.String(), Lines: c.Lines()})
	}
}

func (h *CartHandler) CancelCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		if err := h.saleService.Cancel(r.Context(), cartID); err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Cart cancelled", slog.String("cartId", cartID.String()))
		response.Success(w, http.StatusOK, models.MessageResponse{Message: "Cart cancelled"})
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.AddCartItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		lines, err := h.saleService.AddItem(r.Context(), cartID, req.ProductID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cartView{CartID: cartID.String(), Lines: lines})
	}
}

func (h *CartHandler) SetQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.SetQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		lines, err := h.saleService.SetQuantity(r.Context(), cartID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cartView{CartID: cartID.String(), Lines: lines})
	}
}

// Quote prices the cart at the discount given in the query string.
func (h *CartHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		discount := 0.0

		if raw := r.URL.Query().Get("discount"); raw != "" {
			discount, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				response.Error(w, apperrors.BadRequestError("Invalid discount"))

				return
			}
		}

		quote, err := h.saleService.Quote(r.Context(), cartID, discount)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

func (h *CartHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CheckoutRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.saleService.Checkout(r.Context(), cartID, sess, &req)
		if err != nil {
			logger.Warn("Checkout failed",
				slog.String("cartId", cartID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *CartHandler) ListSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page := utils.QueryInt(r, "page", 1)
		pageSize := utils.QueryInt(r, "page_size", 20)

		resp, err := h.saleService.ListSales(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *CartHandler) SaleDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		saleID, err := utils.PathInt64(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		resp, err := h.saleService.SaleDetails(r.Context(), saleID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
