package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/services/tenant"
	"storefront/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, req tenant.Request, profile *models.Profile) (*tenant.Context, error) {
	args := m.Called(ctx, req, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Context), args.Error(1)
}

func token(t *testing.T, role string, tenantID uuid.UUID) string {
	tok, err := utils.GenerateToken(testSecret, &models.UserClaims{
		UserID:   "user-1",
		TenantID: tenantID.String(),
		Role:     role,
	}, time.Hour)
	require.NoError(t, err)
	return tok
}

func newApp(resolver TenantResolver, extra ...fiber.Handler) *fiber.App {
	auth := NewAuthMiddleware(testSecret, zap.NewNop())
	app := fiber.New()
	handlers := append([]fiber.Handler{auth.Optional, ResolveTenant(resolver, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		tc := GetTenantContext(c)
		name := ""
		if tc.Resolved() {
			name = tc.Tenant.Subdomain
		}
		return c.JSON(fiber.Map{"tenant": name})
	})
	app.Get("/", handlers...)
	return app
}

func body(t *testing.T, resp *http.Response) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestResolveTenant_PassesSignals(t *testing.T) {
	resolver := new(MockResolver)
	tenantID := uuid.New()
	acme := &tenant.Context{Tenant: &models.Tenant{ID: tenantID, Subdomain: "acme"}}
	resolver.On("Resolve", mock.Anything,
		tenant.Request{TenantParam: "acme", Host: "shop.example.com"},
		mock.MatchedBy(func(p *models.Profile) bool { return p != nil && *p.TenantID == tenantID }),
	).Return(acme, nil)

	req := httptest.NewRequest(http.MethodGet, "/?tenant=acme", nil)
	req.Host = "shop.example.com"
	req.Header.Set("Authorization", "Bearer "+token(t, models.RoleCustomer, tenantID))

	resp, err := newApp(resolver).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "acme", body(t, resp)["tenant"])
}

func TestResolveTenant_Errors(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything, (*models.Profile)(nil)).
		Return(nil, apperrors.Wrap(apperrors.ErrTenantNotFound, nil, ""))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "ghost.example.com"
	resp, err := newApp(resolver).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "TENANT_NOT_FOUND", body(t, resp)["code"])
}

func TestOptionalAuth_RejectsBadToken(t *testing.T) {
	resolver := new(MockResolver)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	resp, err := newApp(resolver).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequireActivePlan(t *testing.T) {
	tests := []struct {
		name   string
		tc     *tenant.Context
		status int
		code   string
	}{
		{name: "active", tc: &tenant.Context{Tenant: &models.Tenant{Subdomain: "acme"}}, status: http.StatusOK},
		{name: "expired", tc: &tenant.Context{Tenant: &models.Tenant{}, AccessError: apperrors.ErrPlanExpired}, status: http.StatusPaymentRequired, code: "PLAN_EXPIRED"},
		{name: "no tenant", tc: &tenant.Context{}, status: http.StatusBadRequest, code: "TENANT_REQUIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockResolver)
			resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(tt.tc, nil)

			resp, err := newApp(resolver, RequireActivePlan).Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.code != "" {
				assert.Equal(t, tt.code, body(t, resp)["code"])
			}
		})
	}
}

func TestRequireTenantMember(t *testing.T) {
	tenantID := uuid.New()
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(&tenant.Context{Tenant: &models.Tenant{ID: tenantID, Subdomain: "acme"}}, nil)
	app := newApp(resolver, RequireTenantMember, AdminAuthMiddleware)

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{name: "anonymous", status: http.StatusUnauthorized},
		{name: "admin of this tenant", auth: token(t, models.RoleAdmin, tenantID), status: http.StatusOK},
		{name: "admin of another tenant", auth: token(t, models.RoleAdmin, uuid.New()), status: http.StatusForbidden},
		{name: "customer of this tenant", auth: token(t, models.RoleCustomer, tenantID), status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", "Bearer "+tt.auth)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
