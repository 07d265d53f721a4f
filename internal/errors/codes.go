package errors

var (
	ErrTenantNotFound = &DomainError{
		Code:    "TENANT_NOT_FOUND",
		Message: "tenant not found",
	}
	ErrPlanExpired = &DomainError{
		Code:    "PLAN_EXPIRED",
		Message: "the store plan has expired",
	}
	ErrTenantRequired = &DomainError{
		Code:    "TENANT_REQUIRED",
		Message: "no tenant resolved for this request",
	}
	ErrInsufficientStock = &DomainError{
		Code:    "INSUFFICIENT_STOCK",
		Message: "insufficient stock",
	}
	ErrSaleRegistration = &DomainError{
		Code:    "SALE_REGISTRATION_FAILED",
		Message: "could not register the sale",
	}
	ErrOrderCreation = &DomainError{
		Code:    "ORDER_CREATION_FAILED",
		Message: "could not create the order; stock may already be reserved",
	}
	ErrPaymentProvider = &DomainError{
		Code:    "PAYMENT_PROVIDER_FAILED",
		Message: "could not start the online payment; the order is pending and stock may already be reserved",
	}
	ErrPaymentMethodUnavailable = &DomainError{
		Code:    "PAYMENT_METHOD_UNAVAILABLE",
		Message: "payment method is not available for this store",
	}
	ErrValidation = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
	}
	ErrInvalidReturn = &DomainError{
		Code:    "INVALID_RETURN",
		Message: "unknown payment return",
	}
	ErrOrderNotFound = &DomainError{
		Code:    "ORDER_NOT_FOUND",
		Message: "order not found",
	}
)
