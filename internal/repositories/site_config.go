package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSiteConfigNotFound means the tenant has no site configuration row. Callers treat it as
// "nothing to merge", not as a failure.
var ErrSiteConfigNotFound = errors.New("site config not found")

type SiteConfigRepository interface {
	GetByTenantID(ctx context.Context, tenantID uuid.UUID) (*models.SiteConfig, error)
	Upsert(ctx context.Context, cfg *models.SiteConfig) error
}

type siteConfigRepository struct {
	db *gorm.DB
}

func NewSiteConfigRepository(db *gorm.DB) SiteConfigRepository {
	return &siteConfigRepository{db: db}
}

func (r *siteConfigRepository) GetByTenantID(ctx context.Context, tenantID uuid.UUID) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteConfigNotFound
		}
		return nil, fmt.Errorf("failed to get site config: %w", err)
	}
	return &cfg, nil
}

func (r *siteConfigRepository) Upsert(ctx context.Context, cfg *models.SiteConfig) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
	}).Create(cfg).Error
}
