// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_UnwrapAndAs(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("load lawyers: %w", NewDirectoryUnavailableError(cause))

	assert.True(t, stderrors.Is(err, cause))

	stdErr := AsStandardError(err)
	require.NotNil(t, stdErr)
	assert.Equal(t, ErrCodeDirectoryUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, "StandardError[DIRECTORY_UNAVAILABLE]: Lawyer directory unavailable", stdErr.Error())
}

func TestAsStandardError_WrapsPlainErrors(t *testing.T) {
	stdErr := AsStandardError(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)
	assert.False(t, stdErr.Retryable)

	assert.Nil(t, AsStandardError(nil))
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedRetries int
	}{
		{"retryable database error", NewDatabaseQueryFailedError("list", stderrors.New("x")), 3},
		{"advice timeout", NewAdviceTimeoutError(), 1},
		{"validation error", NewValidationError("query required"), 0},
		{"contract violation", NewContractViolationError(nil, "nil pool"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, string(tt.err.Code), bpmn.Code)
			assert.Equal(t, tt.expectedRetries, bpmn.Retries)

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, string(tt.err.Code), vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeContractViolation, http.StatusBadRequest},
		{ErrCodeLawyerNotFound, http.StatusNotFound},
		{ErrCodeCaseNotFound, http.StatusNotFound},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodePaymentVerificationFailed, http.StatusUnprocessableEntity},
		{ErrCodeDirectoryUnavailable, http.StatusBadGateway},
		{ErrCodeAdviceTimeout, http.StatusGatewayTimeout},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DIRECTORY", GetErrorCategory(ErrCodeLawyerNotFound))
	assert.Equal(t, "DIRECTORY", GetErrorCategory(ErrCodeCacheFailure))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, "CONSULTATION", GetErrorCategory(ErrCodeConsultationNotFound))
	assert.Equal(t, "CASE", GetErrorCategory(ErrCodeCaseActionInvalid))
	assert.Equal(t, "PAYMENT", GetErrorCategory(ErrCodePaymentFailed))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeAdviceTimeout))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeContractViolation))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestWithMetadata(t *testing.T) {
	err := NewLawyerNotFoundError("lw-9").WithMetadata("source", "postgres")
	assert.Equal(t, "postgres", err.Metadata["source"])
	assert.False(t, IsRetryableErrorCode(err.Code))
}
