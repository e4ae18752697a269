// internal/workers/advisory/generate-legal-advice/handler_test.go
package generatelegaladvice

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"legal-marketplace/internal/advisor"
	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/directory"
	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(context.Context, string) (string, error) {
	return f.text, f.err
}

func newTestHandler(t *testing.T, gen advisor.Generator) *Handler {
	dir := directory.NewMemoryDirectory([]models.LawyerProfile{
		{ID: "lw-001", Name: "Adv. Priya Sharma", Specialization: "Property & Rental Law", Location: "Delhi", Experience: "8 years", Rating: 4.9, ConsultationFee: "₹2500"},
		{ID: "lw-003", Name: "Adv. Anita Desai", Specialization: "Family Law", Location: "Noida", Experience: "6 years", Rating: 4.6, ConsultationFee: "₹2000"},
	})
	adv := advisor.NewAdvisor(gen, advisor.NewKnowledgeBase(), matching.NewEngine(matching.Options{}), dir,
		advisor.NewMemoryHistoryStore(10), advisor.Options{Timeout: time.Second}, logger.NewTestLogger(t))
	return NewHandler(LoadConfig(), adv, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h := newTestHandler(t, &fakeGenerator{text: "You can send a legal notice to your landlord."})

	out, err := h.Execute(context.Background(), &Input{
		Message:      "My landlord is not returning my rent deposit",
		SessionID:    "sess-1",
		UserLocation: "Delhi",
	})
	require.NoError(t, err)

	assert.False(t, out.Advice.Fallback)
	assert.Equal(t, matching.CategoryProperty, out.Advice.CaseType)
	assert.True(t, strings.HasSuffix(out.Advice.Response, advisor.Disclaimer))
	assert.Len(t, out.SuggestedLawyerIDs, len(out.Advice.SuggestedLawyers))
	require.NotEmpty(t, out.SuggestedLawyerIDs)
	assert.Equal(t, "lw-001", out.SuggestedLawyerIDs[0])
}

func TestHandler_Execute_Fallback(t *testing.T) {
	h := newTestHandler(t, &fakeGenerator{err: stderrors.New("quota exceeded")})

	out, err := h.Execute(context.Background(), &Input{Message: "I want a divorce", UserLocation: "Noida"})
	require.NoError(t, err)

	assert.True(t, out.Advice.Fallback)
	assert.Equal(t, 0.3, out.Advice.Confidence)
	assert.NotEmpty(t, out.Advice.Response)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_EmptyMessage(t *testing.T) {
	h := newTestHandler(t, &fakeGenerator{text: "unused"})

	out, err := h.Execute(context.Background(), &Input{Message: "   "})
	assert.Nil(t, out)

	stdErr := errors.AsStandardError(err)
	require.NotNil(t, stdErr)
	assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
}
