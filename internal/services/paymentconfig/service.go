package paymentconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo   repositories.PaymentConfigRepository
	sealer *Sealer
	logger *zap.Logger
}

func NewService(repo repositories.PaymentConfigRepository, sealer *Sealer, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		sealer: sealer,
		logger: logger,
	}
}

func (s *Service) GetConfig(ctx context.Context, tenantID uuid.UUID) (*ConfigView, error) {
	cfg, err := s.repo.GetMercadoPago(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentConfigNotFound) {
			return &ConfigView{Sandbox: true}, nil
		}
		return nil, err
	}
	return &ConfigView{
		Configured:     true,
		PublicKey:      cfg.PublicKey,
		Sandbox:        cfg.Sandbox,
		Enabled:        cfg.Enabled,
		HasAccessToken: cfg.AccessToken != "",
	}, nil
}

// SaveConfig validates the patch against the stored row and writes it.
// Nothing is written when validation fails.
func (s *Service) SaveConfig(ctx context.Context, tenantID uuid.UUID, patch ConfigPatch) (*ConfigView, error) {
	existing, err := s.repo.GetMercadoPago(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, repositories.ErrPaymentConfigNotFound) {
			return nil, err
		}
		existing = &models.MercadoPagoConfig{TenantID: tenantID}
	}

	newToken, replace := patch.AccessToken.Replacement()
	newToken = strings.TrimSpace(newToken)
	publicKey := strings.TrimSpace(patch.PublicKey)

	v := validation.New()
	if replace {
		v.Required("access_token", newToken)
	}
	if patch.Enabled {
		v.Required("public_key", publicKey)
		v.Check(replace || existing.AccessToken != "", "access_token", "is required to enable mercadopago")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing.PublicKey = publicKey
	existing.Sandbox = patch.Sandbox
	existing.Enabled = patch.Enabled
	if replace {
		sealed, err := s.sealer.Seal(newToken)
		if err != nil {
			return nil, err
		}
		existing.AccessToken = sealed
	}

	if err := s.repo.SaveMercadoPago(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to save mercadopago config: %w", err)
	}
	s.logger.Info("mercadopago config saved",
		zap.Stringer("tenant_id", tenantID),
		zap.Bool("enabled", existing.Enabled),
		zap.Bool("sandbox", existing.Sandbox),
		zap.Bool("token_replaced", replace),
	)

	return &ConfigView{
		Configured:     true,
		PublicKey:      existing.PublicKey,
		Sandbox:        existing.Sandbox,
		Enabled:        existing.Enabled,
		HasAccessToken: existing.AccessToken != "",
	}, nil
}

// Credentials opens the stored token of an enabled provider configuration.
func (s *Service) Credentials(ctx context.Context, tenantID uuid.UUID) (*Credentials, error) {
	cfg, err := s.repo.GetMercadoPago(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentConfigNotFound) {
			return nil, ErrProviderNotConfigured
		}
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrProviderDisabled
	}
	if cfg.AccessToken == "" {
		return nil, ErrProviderNotConfigured
	}

	token, err := s.sealer.Open(cfg.AccessToken)
	if err != nil {
		s.logger.Error("failed to open access token", zap.Stringer("tenant_id", tenantID), zap.Error(err))
		return nil, err
	}
	return &Credentials{
		AccessToken: token,
		PublicKey:   cfg.PublicKey,
		Sandbox:     cfg.Sandbox,
	}, nil
}

// ProviderReady reports whether online payments can be started for the tenant:
// the provider is enabled and its stored token opens.
func (s *Service) ProviderReady(ctx context.Context, tenantID uuid.UUID) error {
	_, err := s.Credentials(ctx, tenantID)
	return err
}

// GetPaymentMethods returns the tenant's method rows, or DefaultMethods when none exist.
func (s *Service) GetPaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]models.PaymentMethodConfig, error) {
	methods, err := s.repo.ListMethods(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		return DefaultMethods(), nil
	}
	return methods, nil
}

// UpdatePaymentMethods replaces the tenant's whole method set.
func (s *Service) UpdatePaymentMethods(ctx context.Context, tenantID uuid.UUID, methods []models.PaymentMethodConfig) ([]models.PaymentMethodConfig, error) {
	if err := ValidateMethods(methods); err != nil {
		return nil, err
	}

	rows := make([]models.PaymentMethodConfig, len(methods))
	for i, m := range methods {
		rows[i] = models.PaymentMethodConfig{
			TenantID:          tenantID,
			MethodType:        m.MethodType,
			Enabled:           m.Enabled,
			DepositPercentage: m.DepositPercentage,
		}
		if m.MethodType != models.PaymentMethodMercadoPagoDeposit {
			rows[i].DepositPercentage = 0
		}
	}

	if err := s.repo.ReplaceMethods(ctx, tenantID, rows); err != nil {
		return nil, fmt.Errorf("failed to update payment methods: %w", err)
	}
	s.logger.Info("payment methods updated", zap.Stringer("tenant_id", tenantID), zap.Int("count", len(rows)))
	return rows, nil
}

// ValidateMethods checks a method set before it is stored. The deposit
// percentage is only checked when the deposit method is enabled.
func ValidateMethods(methods []models.PaymentMethodConfig) error {
	v := validation.New()
	seen := make(map[string]bool, len(methods))
	for i, m := range methods {
		field := fmt.Sprintf("methods[%d]", i)
		v.In(field+".method_type", m.MethodType, MethodTypes...)
		v.Check(!seen[m.MethodType], field+".method_type", "is listed more than once")
		seen[m.MethodType] = true

		if m.MethodType == models.PaymentMethodMercadoPagoDeposit && m.Enabled {
			v.IntRange(field+".deposit_percentage", m.DepositPercentage,
				validation.MinDepositPercentage, validation.MaxDepositPercentage)
		}
	}
	return v.Err()
}
