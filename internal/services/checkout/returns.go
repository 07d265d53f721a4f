package checkout

import (
	"context"
	"errors"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services/tenant"

	"github.com/google/uuid"
)

// Provider return results.
const (
	ReturnSuccess = "success"
	ReturnPending = "pending"
	ReturnFailure = "failure"
)

type ReturnParams struct {
	Result    string
	OrderID   string
	PaymentID string
	Status    string
}

// ReturnView is shown on the landing page the provider sends the customer back to.
// The order itself is only updated by payment confirmation, not here.
type ReturnView struct {
	Result    string        `json:"result"`
	Order     *models.Order `json:"order"`
	PaymentID string        `json:"payment_id,omitempty"`
	Status    string        `json:"status,omitempty"`
	ClearCart bool          `json:"clear_cart"`
}

func (s *Service) Return(ctx context.Context, tc *tenant.Context, params ReturnParams) (*ReturnView, error) {
	if !tc.Resolved() {
		return nil, apperrors.ErrTenantRequired
	}
	switch params.Result {
	case ReturnSuccess, ReturnPending, ReturnFailure:
	default:
		return nil, apperrors.ErrInvalidReturn
	}

	orderID, err := uuid.Parse(params.OrderID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOrderNotFound, err, "")
	}
	order, err := s.orders.GetByID(ctx, tc.Tenant.ID, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrOrderNotFound, err, "")
		}
		return nil, err
	}

	return &ReturnView{
		Result:    params.Result,
		Order:     order,
		PaymentID: params.PaymentID,
		Status:    params.Status,
		ClearCart: params.Result == ReturnSuccess,
	}, nil
}
