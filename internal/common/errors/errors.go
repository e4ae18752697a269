// Package errors provides the structured error model shared by workers and the HTTP API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	ErrCodeContractViolation ErrorCode = "CONTRACT_VIOLATION"
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"

	ErrCodeLawyerNotFound       ErrorCode = "LAWYER_NOT_FOUND"
	ErrCodeDirectoryUnavailable ErrorCode = "DIRECTORY_UNAVAILABLE"
	ErrCodeCacheFailure         ErrorCode = "CACHE_FAILURE"
	ErrCodeSearchQueryFailed    ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseQueryFailed      ErrorCode = "DATABASE_QUERY_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeConsultationNotFound ErrorCode = "CONSULTATION_NOT_FOUND"
	ErrCodeConsultationInvalid  ErrorCode = "CONSULTATION_INVALID"

	ErrCodeCaseNotFound      ErrorCode = "CASE_NOT_FOUND"
	ErrCodeCaseActionInvalid ErrorCode = "CASE_ACTION_INVALID"

	ErrCodePaymentFailed             ErrorCode = "PAYMENT_FAILED"
	ErrCodePaymentVerificationFailed ErrorCode = "PAYMENT_VERIFICATION_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeAdviceGenerationFailed ErrorCode = "ADVICE_GENERATION_FAILED"
	ErrCodeAdviceTimeout          ErrorCode = "ADVICE_TIMEOUT"

	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeNotFound        ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeBusinessRule    ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause so errors.Is sees through the wrapper.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error metadata and returns the error for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is the shape thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the process variables attached to a thrown or failed job.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewContractViolationError reports caller misuse, such as a nil criteria or pool.
func NewContractViolationError(cause error, details string) *StandardError {
	return newError(ErrCodeContractViolation, "Contract violation", details, false, cause)
}

func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Request validation failed", details, false, nil)
}

func NewLawyerNotFoundError(lawyerID string) *StandardError {
	return newError(ErrCodeLawyerNotFound, "Lawyer not found", fmt.Sprintf("lawyerId: %s", lawyerID), false, nil)
}

func NewDirectoryUnavailableError(err error) *StandardError {
	return newError(ErrCodeDirectoryUnavailable, "Lawyer directory unavailable", err.Error(), true, err)
}

func NewCacheFailureError(err error) *StandardError {
	return newError(ErrCodeCacheFailure, "Cache operation failed", err.Error(), true, err)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query failed", err.Error(), true, err)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

func NewDatabaseQueryFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeDatabaseQueryFailed, "Database query failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true, err)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert failed", err.Error(), true, err)
}

func NewConsultationNotFoundError(id string) *StandardError {
	return newError(ErrCodeConsultationNotFound, "Consultation not found", fmt.Sprintf("consultationId: %s", id), false, nil)
}

func NewConsultationInvalidError(details string) *StandardError {
	return newError(ErrCodeConsultationInvalid, "Invalid consultation request", details, false, nil)
}

func NewCaseNotFoundError(id string) *StandardError {
	return newError(ErrCodeCaseNotFound, "Case not found", fmt.Sprintf("caseId: %s", id), false, nil)
}

func NewCaseActionInvalidError(action string) *StandardError {
	return newError(ErrCodeCaseActionInvalid, "Unsupported case action", fmt.Sprintf("action: %s", action), false, nil)
}

func NewPaymentFailedError(err error) *StandardError {
	return newError(ErrCodePaymentFailed, "Payment provider error", err.Error(), true, err)
}

func NewPaymentVerificationFailedError(details string) *StandardError {
	return newError(ErrCodePaymentVerificationFailed, "Payment signature mismatch", details, false, nil)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true, err)
}

func NewAdviceGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeAdviceGenerationFailed, "Legal advice generation failed", err.Error(), true, err)
}

func NewAdviceTimeoutError() *StandardError {
	return newError(ErrCodeAdviceTimeout, "Legal advice generation timed out", "", true, nil)
}

func NewRateLimitedError(client string) *StandardError {
	return newError(ErrCodeRateLimited, "Rate limit exceeded. Try again later.", fmt.Sprintf("client: %s", client), true, nil)
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRule, message, details, false, nil)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true, err)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true, err)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeNotFound, fmt.Sprintf("Resource not found in %s", service), details, false, nil)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion
// ==========================

// AsStandardError returns the StandardError in err's chain, or wraps err as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// GetRetryCount returns the job retry budget for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDirectoryUnavailable,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseQueryFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodePaymentFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeTimeout,
		ErrCodeCacheFailure,
		ErrCodeAdviceGenerationFailed:
		return 2

	case ErrCodeAdviceTimeout:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError for the workflow engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// HTTPStatus maps an error code to the status returned by the API layer.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeContractViolation, ErrCodeConsultationInvalid,
		ErrCodeCaseActionInvalid, ErrCodeBusinessRule:
		return http.StatusBadRequest
	case ErrCodePaymentVerificationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeLawyerNotFound, ErrCodeConsultationNotFound, ErrCodeCaseNotFound, ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeTimeout, ErrCodeAdviceTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeDirectoryUnavailable, ErrCodeExternalService, ErrCodePaymentFailed,
		ErrCodeAdviceGenerationFailed, ErrCodeSearchQueryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for log aggregation.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "LAWYER") || strings.Contains(codeStr, "DIRECTORY") ||
		strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "SEARCH"):
		return "DIRECTORY"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "CONSULTATION"):
		return "CONSULTATION"
	case strings.Contains(codeStr, "CASE"):
		return "CASE"
	case strings.Contains(codeStr, "PAYMENT"):
		return "PAYMENT"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "ADVICE"):
		return "AI"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "CONTRACT"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
