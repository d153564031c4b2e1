package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/internal/session"
	"github.com/retailcore/pos-gateway/internal/utils/response"
)

type claimsContextKey struct{}

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))

			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))

			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))

				return nil, errors.BadRequestError("unexpected signing method")
			}

			return m.jwtKey, nil
		})

		if err != nil || !token.Valid {
			logger.Warn("JWT validation failed")
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// ContextWithClaims injects claims directly, for handler tests that bypass
// the Authenticate middleware.
func ContextWithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the authenticated claims, or nil outside the
// Authenticate middleware.
func ClaimsFromContext(ctx context.Context) *models.Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*models.Claims)

	return claims
}

// SessionFromContext converts the claims into a session for role checks.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return session.Session{}, false
	}

	return session.FromClaims(claims), true
}

// RequireRole wraps a handler with a session predicate like CanRecordSale.
func RequireRole(check func(session.Session) bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		if !check(sess) {
			LoggerFromContext(r.Context()).Warn("Role check failed",
				slog.String("role", sess.Role),
				slog.String("path", r.URL.Path))
			response.Error(w, errors.ForbiddenError("Your role does not permit this action"))

			return
		}

		next.ServeHTTP(w, r)
	}
}
