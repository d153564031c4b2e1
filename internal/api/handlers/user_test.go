package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/retailcore/pos-gateway/internal/api/handlers"
	apperrors "github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/models"
	service "github.com/retailcore/pos-gateway/internal/services"
	"github.com/retailcore/pos-gateway/internal/testutils"
	"github.com/retailcore/pos-gateway/pkg/martapi/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupUserTest(limiter service.LoginLimiter) (*mocks.Client, *handlers.UserHandler) {
	api := new(mocks.Client)
	userService := service.NewUserService(api, limiter, []byte("test-signing-key"), time.Hour)

	return api, handlers.NewUserHandler(userService)
}

func TestLogin(t *testing.T) {
	loginBody := []byte(`{"username": "asha", "password": "secret1"}`)

	t.Run("Success - Token Issued", func(t *testing.T) {
		// Arrange
		api, userHandler := setupUserTest(allowAllLimiter{})
		api.On("Login", mockAnything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.UpstreamLoginResponse{EmployeeID: 3, Name: "Asha Verma", Role: models.RoleCashier}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login",
			bytes.NewReader(loginBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Login()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Success bool                 `json:"success"`
			Data    models.LoginResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.True(t, envelope.Data.Success)
		assert.NotEmpty(t, envelope.Data.Token)
		assert.Equal(t, models.RoleCashier, envelope.Data.Role)
		api.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Credentials", func(t *testing.T) {
		// Arrange
		api, userHandler := setupUserTest(allowAllLimiter{})
		api.On("Login", mockAnything, mock.AnythingOfType("*models.LoginRequest")).
			Return(nil, apperrors.UnauthorizedError("Invalid credentials")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login",
			bytes.NewReader(loginBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Login()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid username or password")
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest(blockedLimiter{retryAfter: 30})

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login",
			bytes.NewReader(loginBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Login()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"retry_after":30`)
	})

	t.Run("Failure - Validation", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest(allowAllLimiter{})

		body := []byte(`{"username": "a"}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login",
			bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Login()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Validation failed")
	})
}
