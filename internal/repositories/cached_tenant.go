package repositories

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CachedTenantRepository serves tenant lookups from redis and falls back to the
// wrapped repository. Cache failures never fail a lookup.
type CachedTenantRepository struct {
	TenantRepository
	cache  *cache.CacheService
	logger *zap.Logger
}

func NewCachedTenantRepository(repo TenantRepository, cacheSvc *cache.CacheService, logger *zap.Logger) *CachedTenantRepository {
	return &CachedTenantRepository{
		TenantRepository: repo,
		cache:            cacheSvc,
		logger:           logger,
	}
}

func (r *CachedTenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	tenant, err := r.cache.GetTenantBySubdomain(ctx, subdomain)
	if err == nil {
		return tenant, nil
	}
	r.logMiss(err, zap.String("subdomain", subdomain))

	tenant, err = r.TenantRepository.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	r.store(ctx, tenant)
	return tenant, nil
}

func (r *CachedTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := r.cache.GetTenantByID(ctx, id)
	if err == nil {
		return tenant, nil
	}
	r.logMiss(err, zap.Stringer("tenant_id", id))

	tenant, err = r.TenantRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, tenant)
	return tenant, nil
}

func (r *CachedTenantRepository) UpdatePlan(ctx context.Context, id uuid.UUID, status string, trialEndsAt *time.Time) error {
	tenant, err := r.TenantRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.TenantRepository.UpdatePlan(ctx, id, status, trialEndsAt); err != nil {
		return err
	}
	if err := r.cache.InvalidateTenant(ctx, id, tenant.Subdomain); err != nil {
		r.logger.Warn("failed to invalidate tenant cache", zap.Stringer("tenant_id", id), zap.Error(err))
	}
	return nil
}

func (r *CachedTenantRepository) store(ctx context.Context, tenant *models.Tenant) {
	if err := r.cache.CacheTenant(ctx, tenant); err != nil {
		r.logger.Warn("failed to cache tenant", zap.Stringer("tenant_id", tenant.ID), zap.Error(err))
	}
}

func (r *CachedTenantRepository) logMiss(err error, field zap.Field) {
	if err != cache.ErrCacheMiss {
		r.logger.Warn("tenant cache lookup failed", field, zap.Error(err))
	}
}
