package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/pkg/martapi"
)

// LoginLimiter is the sliding window guard on credential checks.
type LoginLimiter interface {
	CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error)
}

// UserService authenticates employees against the inventory API and issues
// gateway session tokens. Credentials are never verified locally.
type UserService struct {
	api         martapi.Client
	limiter     LoginLimiter
	jwtKey      []byte
	tokenExpiry time.Duration
}

func NewUserService(api martapi.Client, limiter LoginLimiter, jwtKey []byte, tokenExpiry time.Duration) *UserService {
	return &UserService{
		api:         api,
		limiter:     limiter,
		jwtKey:      jwtKey,
		tokenExpiry: tokenExpiry,
	}
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.limiter.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, errors.InternalError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	employee, err := s.api.Login(ctx, req)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeUnauthorized {
			return &models.LoginResponse{
				Success:        false,
				Message:        "Invalid username or password",
				RemainingTries: remaining,
			}, nil
		}

		return nil, err
	}

	claims := &models.Claims{
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Role:       employee.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:    true,
		Token:      tokenString,
		ExpiresIn:  int(time.Until(claims.ExpiresAt.Time).Seconds()),
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Role:       employee.Role,
	}, nil
}
