package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/retailcore/pos-gateway/internal/api/middleware"
	"github.com/retailcore/pos-gateway/internal/models"
)

// CreateTestRequestWithContext builds a request carrying authenticated claims
// for the given role, as the auth middleware would have left them.
func CreateTestRequestWithContext(method, target string, body io.Reader, role string, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	claims := &models.Claims{EmployeeID: 3, Name: "Asha Verma", Role: role}

	return req.WithContext(middleware.ContextWithClaims(req.Context(), claims))
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	return req
}
