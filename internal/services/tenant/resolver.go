package tenant

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.uber.org/zap"
)

type Resolver struct {
	tenants     repositories.TenantRepository
	siteConfigs repositories.SiteConfigRepository
	theme       ThemeApplier
	reserved    map[string]struct{}
	now         func() time.Time
	logger      *zap.Logger
}

func NewResolver(
	tenants repositories.TenantRepository,
	siteConfigs repositories.SiteConfigRepository,
	theme ThemeApplier,
	reserved []string,
	logger *zap.Logger,
) *Resolver {
	if theme == nil {
		theme = NoopTheme{}
	}
	return &Resolver{
		tenants:     tenants,
		siteConfigs: siteConfigs,
		theme:       theme,
		reserved:    ReservedSet(reserved),
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock replaces the clock used for plan gating.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve finds the tenant for a request. An explicit tenant parameter wins,
// then the host subdomain, then the profile's tenant. A subdomain signal that
// matches no tenant is a hard failure and never falls back to the profile.
// An expired plan is reported on the returned context, not as an error.
func (r *Resolver) Resolve(ctx context.Context, req Request, profile *models.Profile) (*Context, error) {
	subdomain := strings.ToLower(strings.TrimSpace(req.TenantParam))
	if subdomain == "" {
		subdomain = SubdomainFromHost(req.Host, r.reserved)
	}

	var (
		tenant *models.Tenant
		err    error
	)
	switch {
	case subdomain != "":
		tenant, err = r.tenants.GetBySubdomain(ctx, subdomain)
	case profile != nil && profile.TenantID != nil:
		tenant, err = r.tenants.GetByID(ctx, *profile.TenantID)
	default:
		return &Context{Config: models.JSON{}}, nil
	}
	if err != nil {
		if !errors.Is(err, repositories.ErrTenantNotFound) {
			r.logger.Error("tenant lookup failed",
				zap.String("subdomain", subdomain),
				zap.Error(err),
			)
		}
		return nil, apperrors.Wrap(ErrTenantNotFound, err, "")
	}

	config := Merge(tenant.Config, r.loadSiteConfig(ctx, tenant))
	r.theme.ApplyTheme(ctx, tenant.ID, config)

	return &Context{
		Tenant:      tenant,
		Config:      config,
		AccessError: PlanAccess(tenant, r.now()),
	}, nil
}

func (r *Resolver) loadSiteConfig(ctx context.Context, tenant *models.Tenant) models.JSON {
	site, err := r.siteConfigs.GetByTenantID(ctx, tenant.ID)
	if err != nil {
		if !errors.Is(err, repositories.ErrSiteConfigNotFound) {
			r.logger.Warn("site config unavailable, using tenant config only",
				zap.Stringer("tenant_id", tenant.ID),
				zap.Error(err),
			)
		}
		return nil
	}
	return site.Settings
}

// Merge layers site over base. Keys present in site win.
func Merge(base, site models.JSON) models.JSON {
	merged := make(models.JSON, len(base)+len(site))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range site {
		merged[k] = v
	}
	return merged
}

// PlanAccess returns ErrPlanExpired when the tenant may not serve the storefront at now.
// A trial without an end date counts as ended.
func PlanAccess(tenant *models.Tenant, now time.Time) error {
	switch tenant.PlanStatus {
	case models.PlanStatusExpired:
		return ErrPlanExpired
	case models.PlanStatusTrial:
		if tenant.TrialEndsAt == nil || !now.Before(*tenant.TrialEndsAt) {
			return ErrPlanExpired
		}
	}
	return nil
}
