package validation

const (
	// Deposit percentage bounds, inclusive
	MinDepositPercentage = 10
	MaxDepositPercentage = 100
)
