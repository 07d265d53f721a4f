package checkout

import (
	apperrors "storefront/internal/errors"
	"storefront/internal/models"
)

// PaymentMethod is one of Cash, MercadoPagoFull or MercadoPagoDeposit.
type PaymentMethod interface {
	Type() string
	isPaymentMethod()
}

type Cash struct{}

type MercadoPagoFull struct{}

// MercadoPagoDeposit charges Percentage of the total online.
type MercadoPagoDeposit struct {
	Percentage int
}

func (Cash) Type() string               { return models.PaymentMethodCash }
func (MercadoPagoFull) Type() string    { return models.PaymentMethodMercadoPagoFull }
func (MercadoPagoDeposit) Type() string { return models.PaymentMethodMercadoPagoDeposit }

func (Cash) isPaymentMethod()               {}
func (MercadoPagoFull) isPaymentMethod()    {}
func (MercadoPagoDeposit) isPaymentMethod() {}

// ResolveMethod picks the requested method out of the tenant's enabled methods.
func ResolveMethod(methodType string, configured []models.PaymentMethodConfig) (PaymentMethod, error) {
	for _, cfg := range configured {
		if cfg.MethodType != methodType || !cfg.Enabled {
			continue
		}
		switch methodType {
		case models.PaymentMethodCash:
			return Cash{}, nil
		case models.PaymentMethodMercadoPagoFull:
			return MercadoPagoFull{}, nil
		case models.PaymentMethodMercadoPagoDeposit:
			if cfg.DepositPercentage <= 0 || cfg.DepositPercentage > 100 {
				break
			}
			return MercadoPagoDeposit{Percentage: cfg.DepositPercentage}, nil
		}
	}
	return nil, apperrors.Wrap(apperrors.ErrPaymentMethodUnavailable, nil,
		"payment method "+methodType+" is not available for this store")
}
