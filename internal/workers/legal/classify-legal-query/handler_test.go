// internal/workers/legal/classify-legal-query/handler_test.go
package classifylegalquery

import (
	"context"
	"errors"
	"testing"

	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected matching.Category
		spec     string
	}{
		{"criminal", "I was arrested by the police last night", matching.CategoryCriminal, "Criminal Law"},
		{"family", "I want a divorce and custody of my child", matching.CategoryFamily, "Family Law"},
		{"property", "My landlord refuses to return the rent deposit", matching.CategoryProperty, "Property & Rental Law"},
		{"general", "hello there", matching.CategoryGeneral, ""},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &Input{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.CaseType)
			assert.Equal(t, tt.spec, out.Specialization)
		})
	}
}

func TestHandler_Execute_EmptyQuery(t *testing.T) {
	h := newTestHandler(t)

	for _, q := range []string{"", "   "} {
		out, err := h.Execute(context.Background(), &Input{Query: q})
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, ErrEmptyQuery))
	}
}
