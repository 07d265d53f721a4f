package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan statuses
const (
	PlanStatusActive  = "active"
	PlanStatusTrial   = "trial"
	PlanStatusExpired = "expired"
)

// Tenant is a merchant served by the shared deployment.
type Tenant struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Subdomain   string     `gorm:"uniqueIndex;not null" json:"subdomain"`
	Name        string     `gorm:"not null" json:"name"`
	Config      JSON       `gorm:"type:jsonb" json:"config"`
	PlanStatus  string     `gorm:"not null;default:'trial'" json:"plan_status"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// SiteConfig holds the branding settings of a tenant. At most one row per tenant.
type SiteConfig struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"tenant_id"`
	Settings  JSON      `gorm:"type:jsonb" json:"settings"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SiteConfig) TableName() string {
	return "site_config"
}

// Branding keys understood in tenant and site configuration.
const (
	ConfigPrimaryColor   = "primary_color"
	ConfigSecondaryColor = "secondary_color"
	ConfigLogoURL        = "logo_url"
	ConfigStoreName      = "store_name"
	ConfigWhatsAppNumber = "whatsapp_number"
)
