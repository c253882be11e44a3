package i18n

// Error message keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyServiceUnavailable = "error.service_unavailable"

	// Reconciliation request validation.
	ErrKeyMissingTargetAmount = "error.validation.target_amount"
	ErrKeyMissingInvoices     = "error.validation.invoices"
	ErrKeyAmountOutOfRange    = "error.validation.amount_range"
	ErrKeyInvalidQuery        = "error.validation.query"
)

// Success message keys.
const (
	SuccessKeyReconciled = "success.reconciled"
)
