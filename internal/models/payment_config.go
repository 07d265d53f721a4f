package models

import (
	"time"

	"github.com/google/uuid"
)

// MercadoPagoConfig holds the provider credentials of a tenant. AccessToken is sealed at rest.
type MercadoPagoConfig struct {
	ID          uint      `gorm:"primarykey"`
	TenantID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	AccessToken string    `gorm:"column:access_token"`
	PublicKey   string
	// No default tags: gorm would insert the tag default in place of false.
	Sandbox     bool `gorm:"not null"`
	Enabled     bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MercadoPagoConfig) TableName() string {
	return "mercadopago_config"
}

// PaymentMethodConfig enables one payment method for a tenant.
type PaymentMethodConfig struct {
	ID                uint      `gorm:"primarykey" json:"-"`
	TenantID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payment_methods_tenant_type" json:"-"`
	MethodType        string    `gorm:"not null;uniqueIndex:idx_payment_methods_tenant_type" json:"method_type"`
	Enabled           bool      `gorm:"not null;default:false" json:"enabled"`
	DepositPercentage int       `gorm:"not null;default:0" json:"deposit_percentage"`
}

func (PaymentMethodConfig) TableName() string {
	return "payment_methods"
}
