package mercadopago

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrAPI = errors.New("mercadopago api error")

type Item struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	CurrencyID  string  `json:"currency_id"`
}

type BackURLs struct {
	Success string `json:"success"`
	Pending string `json:"pending"`
	Failure string `json:"failure"`
}

type PreferenceRequest struct {
	Items             []Item            `json:"items"`
	ExternalReference string            `json:"external_reference"`
	BackURLs          BackURLs          `json:"back_urls"`
	AutoReturn        string            `json:"auto_return,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// APIError is the error body the provider returns.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"error"`
	Status  int    `json:"status"`
}

// Client calls the MercadoPago REST API. Requests are never retried.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

func (c *Client) CreatePreference(ctx context.Context, accessToken string, req PreferenceRequest) (*PreferenceResponse, error) {
	var (
		result PreferenceResponse
		apiErr APIError
	)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("X-Idempotency-Key", req.ExternalReference).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post("/checkout/preferences")

	if err != nil {
		c.logger.Error("MercadoPago API call failed",
			zap.String("external_reference", req.ExternalReference),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to call mercadopago: %w", err)
	}

	if resp.IsError() {
		c.logger.Error("MercadoPago API returned error",
			zap.String("external_reference", req.ExternalReference),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("code", apiErr.Code),
			zap.String("msg", apiErr.Message),
		)
		return nil, fmt.Errorf("%w: %s (status: %d)", ErrAPI, apiErr.Message, resp.StatusCode())
	}

	c.logger.Info("MercadoPago preference created",
		zap.String("external_reference", req.ExternalReference),
		zap.String("preference_id", result.ID),
	)
	return &result, nil
}
