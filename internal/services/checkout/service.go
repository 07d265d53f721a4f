package checkout

import (
	"context"
	"errors"
	"fmt"

	apperrors "storefront/internal/errors"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services/mercadopago"
	"storefront/internal/services/paymentconfig"
	"storefront/internal/services/tenant"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MethodSource lists the payment methods a tenant accepts and whether its
// online provider is usable.
type MethodSource interface {
	GetPaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]models.PaymentMethodConfig, error)
	ProviderReady(ctx context.Context, tenantID uuid.UUID) error
}

type PreferenceCreator interface {
	CreatePreference(ctx context.Context, tenantID uuid.UUID, order mercadopago.OrderDescriptor, mode mercadopago.Mode) (*mercadopago.Preference, error)
}

type Service struct {
	products    repositories.ProductRepository
	orders      repositories.OrderRepository
	methods     MethodSource
	preferences PreferenceCreator
	events      events.Publisher
	logger      *zap.Logger
}

func NewService(
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	methods MethodSource,
	preferences PreferenceCreator,
	publisher events.Publisher,
	logger *zap.Logger,
) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		products:    products,
		orders:      orders,
		methods:     methods,
		preferences: preferences,
		events:      publisher,
		logger:      logger,
	}
}

// Checkout registers the sale, records a pending order and dispatches on the
// payment method. It is not idempotent: every call reserves stock and creates
// an order. A failure after the sale is registered leaves the stock reserved.
func (s *Service) Checkout(ctx context.Context, tc *tenant.Context, cart Cart, methodType string) (Outcome, error) {
	if !tc.Resolved() {
		return nil, apperrors.ErrTenantRequired
	}
	if tc.AccessError != nil {
		return nil, tc.AccessError
	}
	t := tc.Tenant

	cart = cart.Normalized()
	if err := validateCart(cart); err != nil {
		return nil, err
	}

	configured, err := s.methods.GetPaymentMethods(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}
	method, err := ResolveMethod(methodType, configured)
	if err != nil {
		return nil, err
	}
	if err := s.checkProvider(ctx, t.ID, method); err != nil {
		return nil, err
	}

	log := s.logger.With(
		zap.Stringer("tenant_id", t.ID),
		zap.String("payment_method", method.Type()),
	)

	if err := s.products.RegisterSale(ctx, t.ID, cart.saleItems()); err != nil {
		log.Warn("sale registration failed", zap.Error(err))
		return nil, saleError(err)
	}

	total := cart.Total()
	order := &models.Order{
		TenantID:         t.ID,
		Total:            total,
		PaymentMethod:    method.Type(),
		PaymentStatus:    models.PaymentStatusPending,
		ItemsDescription: ItemsDescription(cart),
		Items:            cart.orderLines(),
		PaidAmount:       0,
		RemainingAmount:  total,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		log.Error("order creation failed after stock was reserved", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrOrderCreation, err, "")
	}
	log = log.With(zap.Stringer("order_id", order.ID))
	log.Info("order created", zap.Float64("total", total))

	if err := s.events.PublishOrderCreated(ctx, order); err != nil {
		log.Warn("order event not published", zap.Error(err))
	}

	name := storeName(tc)
	switch m := method.(type) {
	case Cash:
		whatsapp, _ := tc.Config.String(models.ConfigWhatsAppNumber)
		summary := OrderSummary(name, order.ID, cart, total)
		return MessagingHandoff{
			URL:       WhatsAppLink(whatsapp, summary),
			OrderID:   order.ID,
			Summary:   summary,
			ClearCart: true,
		}, nil
	case MercadoPagoFull:
		return s.redirect(ctx, log, mercadopago.OrderDescriptor{
			OrderID:         order.ID,
			Amount:          total,
			TenantSubdomain: t.Subdomain,
			StoreName:       name,
		}, t.ID, mercadopago.ModeFull)
	case MercadoPagoDeposit:
		return s.redirect(ctx, log, mercadopago.OrderDescriptor{
			OrderID:           order.ID,
			Amount:            DepositAmount(total, m.Percentage),
			DepositPercentage: m.Percentage,
			TenantSubdomain:   t.Subdomain,
			StoreName:         name,
		}, t.ID, mercadopago.ModeDeposit)
	default:
		return nil, fmt.Errorf("unhandled payment method %T", method)
	}
}

func (s *Service) redirect(ctx context.Context, log *zap.Logger, order mercadopago.OrderDescriptor, tenantID uuid.UUID, mode mercadopago.Mode) (Outcome, error) {
	pref, err := s.preferences.CreatePreference(ctx, tenantID, order, mode)
	if err == nil {
		var checkoutURL string
		if checkoutURL, err = pref.CheckoutURL(); err == nil {
			return Redirect{URL: checkoutURL, OrderID: order.OrderID}, nil
		}
	}
	log.Error("payment preference failed, order left pending", zap.Error(err))
	return nil, apperrors.Wrap(apperrors.ErrPaymentProvider, err, fmt.Sprintf(
		"could not start the online payment; order #%s is pending and stock may already be reserved", order.OrderID))
}

// checkProvider rejects online methods whose provider config cannot be used,
// before any stock is reserved.
func (s *Service) checkProvider(ctx context.Context, tenantID uuid.UUID, method PaymentMethod) error {
	if _, ok := method.(Cash); ok {
		return nil
	}
	err := s.methods.ProviderReady(ctx, tenantID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, paymentconfig.ErrProviderNotConfigured),
		errors.Is(err, paymentconfig.ErrProviderDisabled),
		errors.Is(err, paymentconfig.ErrTokenUnreadable):
		return apperrors.Wrap(apperrors.ErrPaymentMethodUnavailable, err,
			"online payments are not set up for this store")
	default:
		return fmt.Errorf("failed to check payment provider: %w", err)
	}
}

// DepositAmount is the share of total paid online, rounded to cents.
func DepositAmount(total float64, percentage int) float64 {
	return roundCents(total * float64(percentage) / 100)
}

func validateCart(cart Cart) error {
	v := validation.New()
	v.Check(len(cart) > 0, "items", "cart is empty")
	for i, item := range cart {
		field := fmt.Sprintf("items[%d]", i)
		v.Check(item.ProductID > 0, field+".id", "must be a product id")
		v.Check(item.Quantity >= 1, field+".quantity", "must be at least 1")
		v.Check(item.Price >= 0, field+".price", "must not be negative")
	}
	return v.Err()
}

func saleError(err error) error {
	var stock *repositories.InsufficientStockError
	switch {
	case errors.As(err, &stock):
		return apperrors.Wrap(apperrors.ErrInsufficientStock, err, stock.Error())
	case errors.Is(err, repositories.ErrProductNotFound):
		return apperrors.Wrap(apperrors.ErrInsufficientStock, err, err.Error())
	default:
		return apperrors.Wrap(apperrors.ErrSaleRegistration, err, "")
	}
}

func storeName(tc *tenant.Context) string {
	if name, ok := tc.Config.String(models.ConfigStoreName); ok {
		return name
	}
	return tc.Tenant.Name
}
