package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/retailcore/pos-gateway/internal/models"
	service "github.com/retailcore/pos-gateway/internal/services"
	"github.com/retailcore/pos-gateway/internal/utils"
	"github.com/retailcore/pos-gateway/internal/utils/response"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, validator: validator.New()}
}

func (h *NotificationHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page := utils.QueryInt(r, "page", 1)
		pageSize := utils.QueryInt(r, "page_size", 20)

		resp, err := h.notificationService.List(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *NotificationHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		notificationID, err := utils.PathInt64(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.NotificationUpdateRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.notificationService.Update(r.Context(), notificationID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
