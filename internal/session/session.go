package session

import "github.com/retailcore/pos-gateway/internal/models"

// Session is the read-only identity context passed explicitly to anything
// that gates on role. Role checks are plain predicates over it, never reads
// of ambient global state.
type Session struct {
	EmployeeID int64
	Name       string
	Role       string
}

func FromClaims(claims *models.Claims) Session {
	return Session{
		EmployeeID: claims.EmployeeID,
		Name:       claims.Name,
		Role:       claims.Role,
	}
}

// CanRecordSale gates the new-sale flow: every counter role may ring up sales.
func (s Session) CanRecordSale() bool {
	switch s.Role {
	case models.RoleAdmin, models.RoleManager, models.RoleCashier:
		return true
	}

	return false
}

// CanManagePurchasing gates purchase-order creation and receiving.
func (s Session) CanManagePurchasing() bool {
	return s.Role == models.RoleAdmin || s.Role == models.RoleManager
}

// CanAdjustStock gates direct stock-level edits on the products screen.
func (s Session) CanAdjustStock() bool {
	return s.Role == models.RoleAdmin || s.Role == models.RoleManager
}
