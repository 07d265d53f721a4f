package tenant

import apperrors "storefront/internal/errors"

// Resolution failures surfaced to callers. Both carry a stable code.
var (
	ErrTenantNotFound = apperrors.ErrTenantNotFound
	ErrPlanExpired    = apperrors.ErrPlanExpired
)
