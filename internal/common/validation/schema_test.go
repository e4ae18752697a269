// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"legal-marketplace/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemasCompile(t *testing.T) {
	all, err := schemas()
	require.NoError(t, err)
	assert.Len(t, all, len(schemaSources))
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		body      string
		valid     bool
		errField  string
		errorCode string
	}{
		{"match ok", SchemaMatchRequest, `{"query":"landlord issue","userLocation":"Delhi"}`, true, "", ""},
		{"match missing query", SchemaMatchRequest, `{"userLocation":"Delhi"}`, false, "query", "REQUIRED"},
		{"match empty query", SchemaMatchRequest, `{"query":""}`, false, "query", "STRING_GTE"},
		{"consultation bad type", SchemaConsultationRequest,
			`{"userId":"u","lawyerId":"l","type":"carrier","scheduledAt":"2024-03-05T10:30:00Z"}`, false, "type", "ENUM"},
		{"consultation bad date", SchemaConsultationRequest,
			`{"userId":"u","lawyerId":"l","type":"video","scheduledAt":"tomorrow"}`, false, "scheduledAt", "FORMAT"},
		{"case action unknown", SchemaCaseAction, `{"action":"archive"}`, false, "action", "ENUM"},
		{"payment order zero amount", SchemaPaymentOrder,
			`{"amount":0,"consultationId":"c","lawyerId":"l","userId":"u"}`, false, "amount", "NUMBER_GTE"},
		{"payment verify ok", SchemaPaymentVerify, `{"orderId":"o","paymentId":"p","signature":"s"}`, true, "", ""},
		{"malformed json", SchemaMatchRequest, `{"query":`, false, "(root)", "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ValidateJSON(tt.schema, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				assert.NoError(t, res.Err())
				return
			}
			require.NotEmpty(t, res.Errors)
			assert.True(t, res.HasErrors(tt.errField), "errors: %v", res.Errors)
			assert.Equal(t, tt.errorCode, res.GetErrorsForField(tt.errField)[0].Code)

			stdErr := errors.AsStandardError(res.Err())
			assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
		})
	}
}

func TestValidate_GoValue(t *testing.T) {
	res, err := Validate(SchemaClassifyRequest, map[string]interface{}{"query": "divorce"})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	_, err = Validate("no-such-schema", map[string]interface{}{})
	assert.Error(t, err)
}

func TestValidateEmailAndPhone(t *testing.T) {
	assert.True(t, ValidateEmail("client@example.com"))
	assert.False(t, ValidateEmail("client@"))
	assert.True(t, ValidatePhone("+919800000000"))
	assert.False(t, ValidatePhone("98-00"))
}
