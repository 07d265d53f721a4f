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

var ErrPaymentConfigNotFound = errors.New("mercadopago config not found")

type PaymentConfigRepository interface {
	GetMercadoPago(ctx context.Context, tenantID uuid.UUID) (*models.MercadoPagoConfig, error)
	SaveMercadoPago(ctx context.Context, cfg *models.MercadoPagoConfig) error
	ListMethods(ctx context.Context, tenantID uuid.UUID) ([]models.PaymentMethodConfig, error)
	ReplaceMethods(ctx context.Context, tenantID uuid.UUID, methods []models.PaymentMethodConfig) error
}

type paymentConfigRepository struct {
	db *gorm.DB
}

func NewPaymentConfigRepository(db *gorm.DB) PaymentConfigRepository {
	return &paymentConfigRepository{db: db}
}

func (r *paymentConfigRepository) GetMercadoPago(ctx context.Context, tenantID uuid.UUID) (*models.MercadoPagoConfig, error) {
	var cfg models.MercadoPagoConfig
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentConfigNotFound
		}
		return nil, fmt.Errorf("failed to get mercadopago config: %w", err)
	}
	return &cfg, nil
}

// SaveMercadoPago upserts the single provider row of the tenant.
func (r *paymentConfigRepository) SaveMercadoPago(ctx context.Context, cfg *models.MercadoPagoConfig) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "public_key", "sandbox", "enabled", "updated_at"}),
	}).Create(cfg).Error
}

func (r *paymentConfigRepository) ListMethods(ctx context.Context, tenantID uuid.UUID) ([]models.PaymentMethodConfig, error) {
	var methods []models.PaymentMethodConfig
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("method_type").Find(&methods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

// ReplaceMethods swaps the whole method set of the tenant in one transaction.
func (r *paymentConfigRepository) ReplaceMethods(ctx context.Context, tenantID uuid.UUID, methods []models.PaymentMethodConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", tenantID).Delete(&models.PaymentMethodConfig{}).Error; err != nil {
			return err
		}
		if len(methods) == 0 {
			return nil
		}
		for i := range methods {
			methods[i].ID = 0
			methods[i].TenantID = tenantID
		}
		return tx.Create(&methods).Error
	})
}
