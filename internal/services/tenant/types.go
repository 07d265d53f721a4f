package tenant

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// Request carries the tenant signals found on an incoming request.
type Request struct {
	TenantParam string
	Host        string
}

// Context is the resolved tenant for one request. Tenant is nil when the
// request carried no tenant signal at all.
type Context struct {
	Tenant      *models.Tenant
	Config      models.JSON
	AccessError error
}

// Resolved reports whether a tenant was found.
func (c *Context) Resolved() bool {
	return c != nil && c.Tenant != nil
}

// Usable reports whether downstream catalog, cart and checkout work may proceed.
func (c *Context) Usable() bool {
	return c.Resolved() && c.AccessError == nil
}

// ThemeApplier receives the merged configuration of every resolved tenant.
type ThemeApplier interface {
	ApplyTheme(ctx context.Context, tenantID uuid.UUID, config models.JSON)
}

// NoopTheme discards theme updates.
type NoopTheme struct{}

func (NoopTheme) ApplyTheme(context.Context, uuid.UUID, models.JSON) {}
