package paymentconfig

import "errors"

var (
	ErrProviderNotConfigured = errors.New("mercadopago is not configured for this store")
	ErrProviderDisabled      = errors.New("mercadopago is disabled for this store")
	ErrInvalidSealingKey     = errors.New("token sealing key must be 32 bytes hex encoded")
	ErrTokenUnreadable       = errors.New("stored access token cannot be opened")
)
