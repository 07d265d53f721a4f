package paymentconfig

import "storefront/internal/models"

// TokenUpdate says what a save does with the stored access token.
// The zero value keeps it.
type TokenUpdate struct {
	replace bool
	value   string
}

func KeepToken() TokenUpdate {
	return TokenUpdate{}
}

func ReplaceToken(value string) TokenUpdate {
	return TokenUpdate{replace: true, value: value}
}

// Replacement returns the new token and true when the update replaces it.
func (u TokenUpdate) Replacement() (string, bool) {
	return u.value, u.replace
}

// ConfigPatch is the full provider form. Only the token supports "leave as is".
type ConfigPatch struct {
	PublicKey   string
	Sandbox     bool
	Enabled     bool
	AccessToken TokenUpdate
}

// ConfigView is what the settings surface may see. The token itself never leaves the store.
type ConfigView struct {
	Configured     bool   `json:"configured"`
	PublicKey      string `json:"public_key"`
	Sandbox        bool   `json:"sandbox"`
	Enabled        bool   `json:"enabled"`
	HasAccessToken bool   `json:"has_access_token"`
}

// Credentials are the opened provider credentials used to call the provider.
type Credentials struct {
	AccessToken string
	PublicKey   string
	Sandbox     bool
}

// MethodTypes lists every payment method the storefront can take.
var MethodTypes = []string{
	models.PaymentMethodCash,
	models.PaymentMethodMercadoPagoFull,
	models.PaymentMethodMercadoPagoDeposit,
}

// DefaultMethods is the method set of a tenant that never configured one.
func DefaultMethods() []models.PaymentMethodConfig {
	return []models.PaymentMethodConfig{
		{MethodType: models.PaymentMethodCash, Enabled: true},
	}
}
