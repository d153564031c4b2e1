package models

import "github.com/golang-jwt/jwt/v5"

// Roles as issued by the inventory API's employee records.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=4"`
}

// UpstreamLoginResponse is what the inventory API returns on a successful
// credential check. Consumed as-is; the gateway adds nothing to it upstream.
type UpstreamLoginResponse struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Message    string `json:"message"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	EmployeeID     int64  `json:"employee_id,omitempty"`
	Name           string `json:"name,omitempty"`
	Role           string `json:"role,omitempty"`
	Message        string `json:"message,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
}

type Claims struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}
