package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4000
	CodeInvalidAmount       = 4001
	CodeInvalidPhone        = 4002
	CodePaymentNotConfirmed = 4003
	CodeAlreadyDelivered    = 4004
	CodeUnauthorized        = 4010
	CodeInsufficientFunds   = 4020
	CodeAgentNotActive      = 4030
	CodeNotFound            = 4040
	CodeTransactionNotFound = 4041
	CodeAgentNotFound       = 4042
	CodePlanNotFound        = 4043
	CodeProductNotFound     = 4044
	CodeAmountMismatch      = 4090
	CodeDuplicateTx         = 4091
	CodeDuplicateAgent      = 4092

	// 5xxx - Server and upstream errors
	CodeInternalServer     = 5000
	CodeProvider           = 5020
	CodeDelivery           = 5021
	CodeDatabaseConnection = 5030
)

// Base error types
var (
	// ErrValidation is the root of every input validation failure
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when an amount is missing or not positive
	ErrInvalidAmount = errors.New("amount must be a positive number of kobo")

	// ErrInvalidPhone is returned when a phone number is missing or malformed
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidPin is returned when an agent PIN is not 4-6 digits
	ErrInvalidPin = errors.New("pin must be 4 to 6 digits")

	// ErrPaymentNotConfirmed is returned when an operation needs a paid transaction
	ErrPaymentNotConfirmed = errors.New("payment not yet confirmed")

	// ErrAlreadyDelivered is returned when retrying a delivered transaction
	ErrAlreadyDelivered = errors.New("transaction already delivered")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAgentNotFound is returned when the requested agent doesn't exist
	ErrAgentNotFound = errors.New("agent not found")

	// ErrPlanNotFound is returned when a data plan doesn't exist
	ErrPlanNotFound = errors.New("data plan not found")

	// ErrProductNotFound is returned when a product doesn't exist
	ErrProductNotFound = errors.New("product not found")

	// ErrUnauthorized is the root of every authentication failure
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned for a bad admin password or agent PIN
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)

	// ErrInvalidSignature is returned when a webhook signature does not match
	ErrInvalidSignature = fmt.Errorf("%w: invalid signature", ErrUnauthorized)

	// ErrInvalidToken is returned for an expired, revoked or malformed session token
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)

	// ErrAgentNotActive is returned when an agent has not been approved
	ErrAgentNotActive = errors.New("agent account pending admin approval")

	// ErrInsufficientFunds is returned when an agent wallet cannot cover a purchase
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAmountMismatch is returned when the paid amount is below the amount due
	ErrAmountMismatch = errors.New("amount paid is less than amount due")

	// ErrDuplicateTransaction is returned when a reference already exists
	ErrDuplicateTransaction = errors.New("transaction with this reference already exists")

	// ErrDuplicateAgent is returned when a phone number is already registered
	ErrDuplicateAgent = errors.New("phone already registered")

	// ErrProvider is the root of payment gateway failures
	ErrProvider = errors.New("payment provider error")

	// ErrDelivery is the root of data delivery failures
	ErrDelivery = errors.New("data delivery failed")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")
)

// ErrorCode returns standardized error codes for known errors.
// Specific sentinels are checked before their families.
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidPhone):
		return CodeInvalidPhone
	case errors.Is(err, ErrPaymentNotConfirmed):
		return CodePaymentNotConfirmed
	case errors.Is(err, ErrAlreadyDelivered):
		return CodeAlreadyDelivered
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidPin):
		return CodeValidation
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrAgentNotActive):
		return CodeAgentNotActive
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrAgentNotFound):
		return CodeAgentNotFound
	case errors.Is(err, ErrPlanNotFound):
		return CodePlanNotFound
	case errors.Is(err, ErrProductNotFound):
		return CodeProductNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAmountMismatch):
		return CodeAmountMismatch
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTx
	case errors.Is(err, ErrDuplicateAgent):
		return CodeDuplicateAgent
	case errors.Is(err, ErrProvider):
		return CodeProvider
	case errors.Is(err, ErrDelivery):
		return CodeDelivery
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps an error to the status code returned to API callers
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidationError(err):
		return http.StatusBadRequest
	case IsAuthError(err):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrAgentNotActive):
		return http.StatusForbidden
	case IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, ErrAmountMismatch),
		errors.Is(err, ErrDuplicateTransaction),
		errors.Is(err, ErrDuplicateAgent),
		errors.Is(err, ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, ErrProvider), errors.Is(err, ErrDelivery):
		return http.StatusBadGateway
	case errors.Is(err, ErrDatabaseConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError describes a single rejected input field
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// NewValidationError creates a validation error. err may be nil or a more
// specific sentinel such as ErrInvalidAmount.
func NewValidationError(field, reason string, err error) error {
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports every ValidationError as ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"reason":     e.Reason,
		"error_code": ErrorCode(e),
	}
}

// ProviderError is returned when the payment gateway rejects or fails a request
type ProviderError struct {
	Provider   string
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

// NewProviderError creates a provider error; cause may be nil
func NewProviderError(provider, operation string, statusCode int, message string, cause error) error {
	return &ProviderError{
		Provider:   provider,
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
		Err:        cause,
	}
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Provider, e.Operation)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrProvider
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// LogFields returns a map of fields for structured logging
func (e *ProviderError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":  "provider_error",
		"provider":    e.Provider,
		"operation":   e.Operation,
		"status_code": e.StatusCode,
		"message":     e.Message,
		"error_code":  CodeProvider,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// DeliveryError describes a failed fulfilment attempt. It is logged and
// recorded on the transaction, never returned to HTTP callers.
type DeliveryError struct {
	TransactionID uint64
	Reference     string
	Attempt       int
	Reason        string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery attempt %d for %s failed: %s", e.Attempt, e.Reference, e.Reason)
}

// Is checks if the target error is an ErrDelivery
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDelivery
}

// LogFields returns a map of fields for structured logging
func (e *DeliveryError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "delivery_error",
		"transaction_id": e.TransactionID,
		"reference":      e.Reference,
		"attempt":        e.Attempt,
		"reason":         e.Reason,
		"error_code":     CodeDelivery,
	}
}

// AmountMismatchError is returned when a payment notification reports less than the amount due
type AmountMismatchError struct {
	Reference string
	Expected  int64
	Observed  int64
}

// NewAmountMismatchError creates a new detailed amount mismatch error
func NewAmountMismatchError(reference string, expected, observed int64) error {
	return &AmountMismatchError{Reference: reference, Expected: expected, Observed: observed}
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amount mismatch for %s: expected %d kobo, observed %d kobo",
		e.Reference, e.Expected, e.Observed)
}

// Is checks if the target error is an ErrAmountMismatch
func (e *AmountMismatchError) Is(target error) bool {
	return target == ErrAmountMismatch
}

// LogFields returns a map of fields for structured logging
func (e *AmountMismatchError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "amount_mismatch",
		"reference":  e.Reference,
		"expected":   e.Expected,
		"observed":   e.Observed,
		"error_code": CodeAmountMismatch,
	}
}

// InsufficientFundsError provides detailed error information for a rejected wallet debit
type InsufficientFundsError struct {
	AgentID uint64
	Amount  int64
	Balance int64
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(agentID uint64, amount, balance int64) error {
	return &InsufficientFundsError{AgentID: agentID, Amount: amount, Balance: balance}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for agent %d: required %d kobo, available %d kobo",
		e.AgentID, e.Amount, e.Balance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"agent_id":   e.AgentID,
		"amount":     e.Amount,
		"balance":    e.Balance,
		"error_code": CodeInsufficientFunds,
	}
}

// LogFields extracts structured fields from err when it carries them
func LogFields(err error) map[string]any {
	var lf interface{ LogFields() map[string]any }
	if errors.As(err, &lf) {
		return lf.LogFields()
	}
	return map[string]any{"error": err.Error(), "error_code": ErrorCode(err)}
}

// IsValidationError checks if the error is an input validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, ErrInvalidPin) ||
		errors.Is(err, ErrPaymentNotConfirmed) ||
		errors.Is(err, ErrAlreadyDelivered)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrAgentNotFound) ||
		errors.Is(err, ErrPlanNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsAuthError checks if the error is an authentication failure
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsProviderError checks if the error came from the payment gateway
func IsProviderError(err error) bool {
	return errors.Is(err, ErrProvider)
}

// IsAmountMismatchError checks if the error is an underpayment
func IsAmountMismatchError(err error) bool {
	return errors.Is(err, ErrAmountMismatch)
}

// IsInsufficientFundsError checks if the error is a rejected wallet debit
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsDuplicateError checks if the error is a uniqueness violation
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateTransaction) || errors.Is(err, ErrDuplicateAgent)
}
