package services

import "github.com/ihrp/tally/internal/models"

// Identity is the authenticated caller as decoded from the session token.
type Identity struct {
	ID    uint   `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (identity Identity) IsAdmin() bool {
	return identity.Role == models.RoleAdmin
}

// CanAccess is the one admin-or-owner predicate every handler shares instead
// of re-deriving the check inline.
func CanAccess(identity Identity, resourceOwnerID uint) bool {
	return identity.IsAdmin() || identity.ID == resourceOwnerID
}

// RoleAllowed reports whether the identity's role is in the permitted set.
func RoleAllowed(identity Identity, permittedRoles ...string) bool {
	for _, role := range permittedRoles {
		if identity.Role == role {
			return true
		}
	}
	return false
}
