package mercadopago

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"storefront/internal/services/paymentconfig"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoCheckoutURL = errors.New("preference has no checkout url")

type Mode string

const (
	ModeFull    Mode = "full"
	ModeDeposit Mode = "deposit"
)

// CredentialSource opens a tenant's provider credentials.
type CredentialSource interface {
	Credentials(ctx context.Context, tenantID uuid.UUID) (*paymentconfig.Credentials, error)
}

// OrderDescriptor is what the provider is asked to charge for.
type OrderDescriptor struct {
	OrderID           uuid.UUID
	Amount            float64
	DepositPercentage int
	TenantSubdomain   string
	StoreName         string
}

// Preference holds both entry points of a created preference and the mode
// the tenant was configured for when it was created.
type Preference struct {
	ID               string
	InitPoint        string
	SandboxInitPoint string
	Sandbox          bool
}

// CheckoutURL prefers the sandbox entry point in sandbox mode and the live one
// otherwise, falling back to whichever is present.
func (p *Preference) CheckoutURL() (string, error) {
	first, second := p.InitPoint, p.SandboxInitPoint
	if p.Sandbox {
		first, second = second, first
	}
	if first != "" {
		return first, nil
	}
	if second != "" {
		return second, nil
	}
	return "", ErrNoCheckoutURL
}

type Builder struct {
	credentials   CredentialSource
	client        *Client
	publicBaseURL string
	currency      string
	logger        *zap.Logger
}

func NewBuilder(credentials CredentialSource, client *Client, publicBaseURL, currency string, logger *zap.Logger) *Builder {
	if currency == "" {
		currency = "ARS"
	}
	return &Builder{
		credentials:   credentials,
		client:        client,
		publicBaseURL: publicBaseURL,
		currency:      currency,
		logger:        logger,
	}
}

func (b *Builder) CreatePreference(ctx context.Context, tenantID uuid.UUID, order OrderDescriptor, mode Mode) (*Preference, error) {
	creds, err := b.credentials.Credentials(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	req := PreferenceRequest{
		Items: []Item{{
			ID:          order.OrderID.String(),
			Title:       Description(order, mode),
			Description: order.StoreName,
			Quantity:    1,
			UnitPrice:   roundCents(order.Amount),
			CurrencyID:  b.currency,
		}},
		ExternalReference: order.OrderID.String(),
		BackURLs: BackURLs{
			Success: b.returnURL("success", order),
			Pending: b.returnURL("pending", order),
			Failure: b.returnURL("failure", order),
		},
		AutoReturn: "approved",
		Metadata: map[string]string{
			"tenant_id":  tenantID.String(),
			"order_id":   order.OrderID.String(),
			"mode":       string(mode),
			"store_name": order.StoreName,
		},
	}

	resp, err := b.client.CreatePreference(ctx, creds.AccessToken, req)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("preference ready",
		zap.Stringer("tenant_id", tenantID),
		zap.Stringer("order_id", order.OrderID),
		zap.String("mode", string(mode)),
		zap.Float64("amount", req.Items[0].UnitPrice),
	)
	return &Preference{
		ID:               resp.ID,
		InitPoint:        resp.InitPoint,
		SandboxInitPoint: resp.SandboxInitPoint,
		Sandbox:          creds.Sandbox,
	}, nil
}

// Description is the item title shown on the provider checkout page.
func Description(order OrderDescriptor, mode Mode) string {
	if mode == ModeDeposit {
		return fmt.Sprintf("Deposit (%d%%) for order #%s", order.DepositPercentage, order.OrderID)
	}
	return fmt.Sprintf("Order #%s", order.OrderID)
}

func (b *Builder) returnURL(result string, order OrderDescriptor) string {
	q := url.Values{}
	q.Set("order_id", order.OrderID.String())
	if order.TenantSubdomain != "" {
		q.Set("tenant", order.TenantSubdomain)
	}
	return b.publicBaseURL + "/checkout/" + result + "?" + q.Encode()
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
