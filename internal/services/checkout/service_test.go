package checkout

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/repositories/mocks"
	"storefront/internal/services/mercadopago"
	"storefront/internal/services/paymentconfig"
	"storefront/internal/services/tenant"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMethodSource struct {
	mock.Mock
}

func (m *MockMethodSource) GetPaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]models.PaymentMethodConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentMethodConfig), args.Error(1)
}

func (m *MockMethodSource) ProviderReady(ctx context.Context, tenantID uuid.UUID) error {
	return m.Called(ctx, tenantID).Error(0)
}

type MockPreferenceCreator struct {
	mock.Mock
}

func (m *MockPreferenceCreator) CreatePreference(ctx context.Context, tenantID uuid.UUID, order mercadopago.OrderDescriptor, mode mercadopago.Mode) (*mercadopago.Preference, error) {
	args := m.Called(ctx, tenantID, order, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.Preference), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockPublisher) Close() error { return nil }

type deps struct {
	products    *mocks.ProductRepository
	orders      *mocks.OrderRepository
	methods     *MockMethodSource
	preferences *MockPreferenceCreator
	publisher   *MockPublisher
}

func newTestService() (*Service, *deps) {
	return newTestServiceWithProvider(nil)
}

// newTestServiceWithProvider answers every provider check with providerErr.
func newTestServiceWithProvider(providerErr error) (*Service, *deps) {
	d := &deps{
		products:    new(mocks.ProductRepository),
		orders:      new(mocks.OrderRepository),
		methods:     new(MockMethodSource),
		preferences: new(MockPreferenceCreator),
		publisher:   new(MockPublisher),
	}
	d.publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil).Maybe()
	d.methods.On("ProviderReady", mock.Anything, mock.Anything).Return(providerErr).Maybe()
	return NewService(d.products, d.orders, d.methods, d.preferences, d.publisher, zap.NewNop()), d
}

func tenantContext() *tenant.Context {
	return &tenant.Context{
		Tenant: &models.Tenant{
			ID:         uuid.New(),
			Subdomain:  "acme",
			Name:       "Acme",
			PlanStatus: models.PlanStatusActive,
		},
		Config: models.JSON{
			models.ConfigWhatsAppNumber: "+54 9 11 5555-0000",
			models.ConfigStoreName:      "Acme Mates",
		},
	}
}

var allMethods = []models.PaymentMethodConfig{
	{MethodType: models.PaymentMethodCash, Enabled: true},
	{MethodType: models.PaymentMethodMercadoPagoFull, Enabled: true},
	{MethodType: models.PaymentMethodMercadoPagoDeposit, Enabled: true, DepositPercentage: 30},
}

func TestCheckout_Cash(t *testing.T) {
	svc, d := newTestService()
	tc := tenantContext()
	var created *models.Order

	d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)
	d.products.On("RegisterSale", mock.Anything, tc.Tenant.ID, []models.SaleItem{{ID: 1, Quantity: 2, Name: "Mate"}}).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.Order) }).
		Return(nil)

	outcome, err := svc.Checkout(context.Background(), tc, Cart{{ProductID: 1, Quantity: 2, Price: 100, Name: "Mate"}}, models.PaymentMethodCash)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, 200.0, created.Total)
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)
	assert.Equal(t, 0.0, created.PaidAmount)
	assert.Equal(t, 200.0, created.RemainingAmount)
	assert.Equal(t, models.PaymentMethodCash, created.PaymentMethod)
	assert.Equal(t, tc.Tenant.ID, created.TenantID)
	assert.Equal(t, "2x Mate", created.ItemsDescription)

	handoff, ok := outcome.(MessagingHandoff)
	require.True(t, ok)
	assert.True(t, handoff.ClearCart)
	assert.Equal(t, created.ID, handoff.OrderID)
	assert.Contains(t, handoff.Summary, "Total: $200.00")
	assert.Contains(t, handoff.Summary, created.ID.String())

	link, err := url.Parse(handoff.URL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", link.Host)
	assert.Equal(t, "/5491155550000", link.Path)
	assert.Equal(t, handoff.Summary, link.Query().Get("text"))

	d.preferences.AssertNotCalled(t, "CreatePreference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	d.publisher.AssertCalled(t, "PublishOrderCreated", mock.Anything, created)
}

func TestCheckout_Deposit(t *testing.T) {
	svc, d := newTestService()
	tc := tenantContext()

	d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)
	d.products.On("RegisterSale", mock.Anything, tc.Tenant.ID, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.preferences.On("CreatePreference", mock.Anything, tc.Tenant.ID,
		mock.MatchedBy(func(o mercadopago.OrderDescriptor) bool {
			return o.Amount == 300 && o.DepositPercentage == 30 && o.TenantSubdomain == "acme"
		}), mercadopago.ModeDeposit).
		Return(&mercadopago.Preference{InitPoint: "https://mp/live", SandboxInitPoint: "https://mp/sandbox", Sandbox: true}, nil)

	cart := Cart{
		{ProductID: 1, Quantity: 2, Price: 250, Name: "Mate"},
		{ProductID: 2, Quantity: 1, Price: 500, Name: "Termo"},
	}
	outcome, err := svc.Checkout(context.Background(), tc, cart, models.PaymentMethodMercadoPagoDeposit)
	require.NoError(t, err)

	redirect, ok := outcome.(Redirect)
	require.True(t, ok)
	assert.Equal(t, "https://mp/sandbox", redirect.URL)
	d.preferences.AssertExpectations(t)
}

func TestCheckout_FullPaymentUsesTotal(t *testing.T) {
	svc, d := newTestService()
	tc := tenantContext()

	d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)
	d.products.On("RegisterSale", mock.Anything, tc.Tenant.ID, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.preferences.On("CreatePreference", mock.Anything, tc.Tenant.ID,
		mock.MatchedBy(func(o mercadopago.OrderDescriptor) bool { return o.Amount == 150 }), mercadopago.ModeFull).
		Return(&mercadopago.Preference{InitPoint: "https://mp/live"}, nil)

	outcome, err := svc.Checkout(context.Background(), tc, Cart{{ProductID: 7, Price: 150, Name: "Yerba"}}, models.PaymentMethodMercadoPagoFull)
	require.NoError(t, err)
	assert.Equal(t, Redirect{URL: "https://mp/live", OrderID: outcome.Order()}, outcome)
	d.products.AssertCalled(t, "RegisterSale", mock.Anything, tc.Tenant.ID, []models.SaleItem{{ID: 7, Quantity: 1, Name: "Yerba"}})
}

func TestCheckout_StockFailureCreatesNoOrder(t *testing.T) {
	svc, d := newTestService()
	tc := tenantContext()
	stockErr := &repositories.InsufficientStockError{ProductID: 2, Name: "Termo", Requested: 1, Available: 0}

	d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)
	d.products.On("RegisterSale", mock.Anything, tc.Tenant.ID, mock.Anything).Return(stockErr)

	cart := Cart{
		{ProductID: 1, Quantity: 1, Price: 100, Name: "Mate"},
		{ProductID: 2, Quantity: 1, Price: 500, Name: "Termo"},
	}
	outcome, err := svc.Checkout(context.Background(), tc, cart, models.PaymentMethodCash)

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Contains(t, err.Error(), `insufficient stock for "Termo"`)
	d.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.publisher.AssertNotCalled(t, "PublishOrderCreated", mock.Anything, mock.Anything)
}

func TestCheckout_PreconditionsHaveNoSideEffects(t *testing.T) {
	expired := tenantContext()
	expired.AccessError = apperrors.ErrPlanExpired

	tests := []struct {
		name   string
		tc     *tenant.Context
		cart   Cart
		method string
		want   error
	}{
		{name: "nil context", tc: nil, cart: Cart{{ProductID: 1, Price: 1}}, method: "cash", want: apperrors.ErrTenantRequired},
		{name: "no tenant", tc: &tenant.Context{}, cart: Cart{{ProductID: 1, Price: 1}}, method: "cash", want: apperrors.ErrTenantRequired},
		{name: "expired plan", tc: expired, cart: Cart{{ProductID: 1, Price: 1}}, method: "cash", want: apperrors.ErrPlanExpired},
		{name: "disabled method", tc: tenantContext(), cart: Cart{{ProductID: 1, Price: 1}}, method: "mercadopago_full", want: apperrors.ErrPaymentMethodUnavailable},
		{name: "unknown method", tc: tenantContext(), cart: Cart{{ProductID: 1, Price: 1}}, method: "crypto", want: apperrors.ErrPaymentMethodUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService()
			d.methods.On("GetPaymentMethods", mock.Anything, mock.Anything).
				Return([]models.PaymentMethodConfig{{MethodType: models.PaymentMethodCash, Enabled: true}}, nil)

			_, err := svc.Checkout(context.Background(), tt.tc, tt.cart, tt.method)

			assert.ErrorIs(t, err, tt.want)
			d.products.AssertNotCalled(t, "RegisterSale", mock.Anything, mock.Anything, mock.Anything)
			d.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckout_UnusableProviderReservesNothing(t *testing.T) {
	tests := []struct {
		name        string
		providerErr error
		want        error
	}{
		{name: "provider disabled", providerErr: paymentconfig.ErrProviderDisabled, want: apperrors.ErrPaymentMethodUnavailable},
		{name: "provider not configured", providerErr: paymentconfig.ErrProviderNotConfigured, want: apperrors.ErrPaymentMethodUnavailable},
		{name: "token unreadable", providerErr: paymentconfig.ErrTokenUnreadable, want: paymentconfig.ErrTokenUnreadable},
		{name: "lookup failure", providerErr: errors.New("connection reset"), want: nil},
	}

	for _, tt := range tests {
		for _, method := range []string{models.PaymentMethodMercadoPagoFull, models.PaymentMethodMercadoPagoDeposit} {
			t.Run(tt.name+"/"+method, func(t *testing.T) {
				svc, d := newTestServiceWithProvider(tt.providerErr)
				tc := tenantContext()
				d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)

				outcome, err := svc.Checkout(context.Background(), tc, Cart{{ProductID: 1, Price: 10, Name: "Mate"}}, method)

				assert.Nil(t, outcome)
				require.Error(t, err)
				if tt.want != nil {
					assert.ErrorIs(t, err, tt.want)
				} else {
					assert.NotErrorIs(t, err, apperrors.ErrPaymentMethodUnavailable)
				}
				d.products.AssertNotCalled(t, "RegisterSale", mock.Anything, mock.Anything, mock.Anything)
				d.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				d.preferences.AssertNotCalled(t, "CreatePreference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	}
}

func TestCheckout_CashSkipsProviderCheck(t *testing.T) {
	svc, d := newTestServiceWithProvider(paymentconfig.ErrProviderDisabled)
	tc := tenantContext()
	d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)
	d.products.On("RegisterSale", mock.Anything, tc.Tenant.ID, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	outcome, err := svc.Checkout(context.Background(), tc, Cart{{ProductID: 1, Price: 10, Name: "Mate"}}, models.PaymentMethodCash)

	require.NoError(t, err)
	assert.IsType(t, MessagingHandoff{}, outcome)
	d.methods.AssertNotCalled(t, "ProviderReady", mock.Anything, mock.Anything)
}

func TestCheckout_InvalidCart(t *testing.T) {
	svc, d := newTestService()

	_, err := svc.Checkout(context.Background(), tenantContext(), Cart{}, models.PaymentMethodCash)
	var verrs *validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.Fields, "items")

	_, err = svc.Checkout(context.Background(), tenantContext(), Cart{{ProductID: 1, Quantity: -2, Price: 10}}, models.PaymentMethodCash)
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.Fields, "items[0].quantity")
	d.products.AssertNotCalled(t, "RegisterSale", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_OrderCreationFailure(t *testing.T) {
	svc, d := newTestService()
	tc := tenantContext()

	d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)
	d.products.On("RegisterSale", mock.Anything, tc.Tenant.ID, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := svc.Checkout(context.Background(), tc, Cart{{ProductID: 1, Price: 10, Name: "Mate"}}, models.PaymentMethodMercadoPagoFull)

	assert.ErrorIs(t, err, apperrors.ErrOrderCreation)
	de, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, de.Message, "stock may already be reserved")
	d.preferences.AssertNotCalled(t, "CreatePreference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_ProviderFailureLeavesPendingOrder(t *testing.T) {
	svc, d := newTestService()
	tc := tenantContext()

	d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)
	d.products.On("RegisterSale", mock.Anything, tc.Tenant.ID, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	d.preferences.On("CreatePreference", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("401 invalid access token"))

	outcome, err := svc.Checkout(context.Background(), tc, Cart{{ProductID: 1, Price: 10, Name: "Mate"}}, models.PaymentMethodMercadoPagoFull)

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, apperrors.ErrPaymentProvider)
	de, _ := apperrors.As(err)
	assert.True(t, strings.Contains(de.Message, "is pending"))
	d.orders.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckout_PublishFailureIsNotFatal(t *testing.T) {
	d := &deps{
		products:    new(mocks.ProductRepository),
		orders:      new(mocks.OrderRepository),
		methods:     new(MockMethodSource),
		preferences: new(MockPreferenceCreator),
		publisher:   new(MockPublisher),
	}
	svc := NewService(d.products, d.orders, d.methods, d.preferences, d.publisher, zap.NewNop())
	tc := tenantContext()

	d.methods.On("GetPaymentMethods", mock.Anything, tc.Tenant.ID).Return(allMethods, nil)
	d.products.On("RegisterSale", mock.Anything, tc.Tenant.ID, mock.Anything).Return(nil)
	d.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(errors.New("no brokers"))

	outcome, err := svc.Checkout(context.Background(), tc, Cart{{ProductID: 1, Price: 10, Name: "Mate"}}, models.PaymentMethodCash)
	require.NoError(t, err)
	assert.IsType(t, MessagingHandoff{}, outcome)
}

func TestResolveMethod(t *testing.T) {
	tests := []struct {
		name       string
		methodType string
		configured []models.PaymentMethodConfig
		want       PaymentMethod
	}{
		{name: "cash", methodType: "cash", configured: allMethods, want: Cash{}},
		{name: "full", methodType: "mercadopago_full", configured: allMethods, want: MercadoPagoFull{}},
		{name: "deposit carries percentage", methodType: "mercadopago_deposit", configured: allMethods, want: MercadoPagoDeposit{Percentage: 30}},
		{name: "disabled", methodType: "cash", configured: []models.PaymentMethodConfig{{MethodType: "cash"}}},
		{name: "deposit without percentage", methodType: "mercadopago_deposit",
			configured: []models.PaymentMethodConfig{{MethodType: "mercadopago_deposit", Enabled: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveMethod(tt.methodType, tt.configured)
			if tt.want == nil {
				assert.ErrorIs(t, err, apperrors.ErrPaymentMethodUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDepositAmount(t *testing.T) {
	assert.Equal(t, 300.0, DepositAmount(1000, 30))
	assert.Equal(t, 1000.0, DepositAmount(1000, 100))
	assert.Equal(t, 3.33, DepositAmount(33.3, 10))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/5491100?text=hola+%231", WhatsAppLink("+54 9 11-00", "hola #1"))
	assert.Equal(t, "https://wa.me/?text=hi", WhatsAppLink("", "hi"))
}
