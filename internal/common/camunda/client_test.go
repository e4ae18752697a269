// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"legal-marketplace/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(stderrors.New("rpc error: code = Unavailable")))
	assert.True(t, isRetryableZeebeError(stderrors.New("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(stderrors.New("process not found")))
}

func TestMapZeebeError(t *testing.T) {
	c := &Client{config: &ClientConfig{RetryConfig: DefaultRetryConfig}}

	tests := []struct {
		msg  string
		code errors.ErrorCode
	}{
		{"connection refused", errors.ErrCodeExternalService},
		{"deadline exceeded", errors.ErrCodeTimeout},
		{"job not found", errors.ErrCodeNotFound},
		{"permission denied", errors.ErrCodeExternalService},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := c.mapZeebeError(stderrors.New(tt.msg), "complete-job", 1)
			assert.Equal(t, tt.code, errors.AsStandardError(err).Code)
		})
	}
}

func TestExecuteWithRetry(t *testing.T) {
	c := &Client{config: &ClientConfig{RetryConfig: &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}}}

	calls := 0
	result, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 2 {
			return nil, stderrors.New("unavailable")
		}
		return "ok", nil
	}, "topology")
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)

	calls = 0
	_, err = c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("already exists")
	}, "deploy")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
