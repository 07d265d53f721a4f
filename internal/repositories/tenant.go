package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTenantNotFound = errors.New("tenant not found")

type TenantRepository interface {
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Create(ctx context.Context, tenant *models.Tenant) error
	UpdatePlan(ctx context.Context, id uuid.UUID, status string, trialEndsAt *time.Time) error
}

type tenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subdomain %q", ErrTenantNotFound, subdomain)
		}
		return nil, fmt.Errorf("failed to get tenant by subdomain: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrTenantNotFound, id)
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(tenant).Error
}

func (r *tenantRepository) UpdatePlan(ctx context.Context, id uuid.UUID, status string, trialEndsAt *time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"plan_status":   status,
			"trial_ends_at": trialEndsAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", ErrTenantNotFound, id)
	}
	return nil
}
