// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var (
	_ repositories.TenantRepository        = (*TenantRepository)(nil)
	_ repositories.SiteConfigRepository    = (*SiteConfigRepository)(nil)
	_ repositories.ProductRepository       = (*ProductRepository)(nil)
	_ repositories.OrderRepository         = (*OrderRepository)(nil)
	_ repositories.PaymentConfigRepository = (*PaymentConfigRepository)(nil)
)

type TenantRepository struct {
	mock.Mock
}

func (m *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return m.Called(ctx, tenant).Error(0)
}

func (m *TenantRepository) UpdatePlan(ctx context.Context, id uuid.UUID, status string, trialEndsAt *time.Time) error {
	return m.Called(ctx, id, status, trialEndsAt).Error(0)
}

type SiteConfigRepository struct {
	mock.Mock
}

func (m *SiteConfigRepository) GetByTenantID(ctx context.Context, tenantID uuid.UUID) (*models.SiteConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteConfig), args.Error(1)
}

func (m *SiteConfigRepository) Upsert(ctx context.Context, cfg *models.SiteConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*models.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) RegisterSale(ctx context.Context, tenantID uuid.UUID, items []models.SaleItem) error {
	return m.Called(ctx, tenantID, items).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil && order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type PaymentConfigRepository struct {
	mock.Mock
}

func (m *PaymentConfigRepository) GetMercadoPago(ctx context.Context, tenantID uuid.UUID) (*models.MercadoPagoConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MercadoPagoConfig), args.Error(1)
}

func (m *PaymentConfigRepository) SaveMercadoPago(ctx context.Context, cfg *models.MercadoPagoConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *PaymentConfigRepository) ListMethods(ctx context.Context, tenantID uuid.UUID) ([]models.PaymentMethodConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentMethodConfig), args.Error(1)
}

func (m *PaymentConfigRepository) ReplaceMethods(ctx context.Context, tenantID uuid.UUID, methods []models.PaymentMethodConfig) error {
	return m.Called(ctx, tenantID, methods).Error(0)
}
