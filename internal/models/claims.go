package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Roles
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Application permissions
const (
	PermissionSettingsRead  = "settings:read"
	PermissionSettingsWrite = "settings:write"
	PermissionCheckout      = "checkout:create"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	TenantID    string   `json:"tenant_id,omitempty"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Profile returns the authenticated profile carried by the claims.
func (c *UserClaims) Profile() *Profile {
	p := &Profile{UserID: c.UserID, Role: c.Role}
	if id, err := uuid.Parse(c.TenantID); err == nil {
		p.TenantID = &id
	}
	return p
}

// Profile is the authenticated user as seen by tenant resolution.
type Profile struct {
	UserID   string
	TenantID *uuid.UUID
	Role     string
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionSettingsRead,
			PermissionSettingsWrite,
			PermissionCheckout,
		}
	case RoleCustomer:
		return []string{
			PermissionCheckout,
		}
	default:
		return []string{}
	}
}
