// internal/advisor/advisor_test.go
package advisor

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeGenerator struct {
	text    string
	err     error
	delay   time.Duration
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

type stubDirectory struct {
	profiles []models.LawyerProfile
	err      error
}

func (s *stubDirectory) GetAllProfiles(context.Context) ([]models.LawyerProfile, error) {
	return s.profiles, s.err
}

func createTestProfiles() []models.LawyerProfile {
	return []models.LawyerProfile{
		{ID: "lw-1", Name: "Adv. Priya Sharma", Specialization: "Property & Rental Law", Location: "Delhi", Experience: "8 years", Rating: 4.9, ConsultationFee: "₹2500"},
		{ID: "lw-2", Name: "Adv. Rajesh Kumar", Specialization: "Criminal Law", Location: "Mumbai", Experience: "15 years", Rating: 4.8, ConsultationFee: "₹3000"},
		{ID: "lw-3", Name: "Adv. Anita Desai", Specialization: "Family Law", Location: "Noida", Experience: "6 years", Rating: 4.6, ConsultationFee: "₹2000"},
		{ID: "lw-4", Name: "Adv. Vikram Singh", Specialization: "Consumer Protection", Location: "Chennai", Experience: "4 years", Rating: 4.2, ConsultationFee: "₹1500"},
	}
}

func newTestAdvisor(t *testing.T, gen Generator, dir matching.ProfileSource, history HistoryStore) *Advisor {
	return NewAdvisor(gen, NewKnowledgeBase(), matching.NewEngine(matching.Options{}), dir, history, Options{Timeout: time.Second}, logger.NewTestLogger(t))
}

// ==========================
// Advise
// ==========================

func TestAdvise_Success(t *testing.T) {
	gen := &fakeGenerator{text: "You are protected under your state's rent control act."}
	history := NewMemoryHistoryStore(10)
	a := newTestAdvisor(t, gen, &stubDirectory{profiles: createTestProfiles()}, history)

	resp, err := a.Advise(context.Background(), AdviceRequest{
		Message:   "my landlord is trying to evict me without notice",
		SessionID: "session-1",
	})
	require.NoError(t, err)

	assert.Equal(t, matching.CategoryProperty, resp.CaseType)
	assert.True(t, strings.HasPrefix(resp.Response, gen.text))
	assert.True(t, strings.HasSuffix(resp.Response, Disclaimer))
	assert.False(t, resp.Fallback)
	assert.Contains(t, resp.RelevantLaws, "Rent Control Act")
	assert.Greater(t, resp.Confidence, 0.3)
	assert.LessOrEqual(t, resp.Confidence, 0.95)

	require.Len(t, resp.SuggestedLawyers, 3)
	assert.Equal(t, "lw-1", resp.SuggestedLawyers[0].Lawyer.ID)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "USER QUERY: my landlord is trying to evict me without notice")
	assert.Contains(t, gen.prompts[0], "Rent Control Act: Rent Control Laws")

	stored, _ := history.Recent(context.Background(), "session-1", 10)
	require.Len(t, stored, 2)
	assert.Equal(t, models.ChatRoleUser, stored[0].Type)
	assert.Equal(t, models.ChatRoleAssistant, stored[1].Type)
}

func TestAdvise_UsesStoredHistory(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	history := NewMemoryHistoryStore(10)
	require.NoError(t, history.Append(context.Background(), "s", models.ChatMessage{Type: "user", Content: "earlier question about bail"}))

	a := newTestAdvisor(t, gen, &stubDirectory{profiles: createTestProfiles()}, history)
	_, err := a.Advise(context.Background(), AdviceRequest{Message: "what next?", SessionID: "s"})
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "user: earlier question about bail")
}

func TestAdvise_Validation(t *testing.T) {
	a := newTestAdvisor(t, &fakeGenerator{text: "x"}, nil, nil)
	_, err := a.Advise(context.Background(), AdviceRequest{Message: "   "})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)
}

func TestAdvise_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{"generator error", &fakeGenerator{err: stderrors.New("quota exceeded")}},
		{"empty text", &fakeGenerator{text: "  "}},
		{"timeout", &fakeGenerator{text: "late", delay: 5 * time.Second}},
		{"no generator", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdvisor(tt.gen, nil, matching.NewEngine(matching.Options{}), &stubDirectory{profiles: createTestProfiles()}, nil,
				Options{Timeout: 50 * time.Millisecond}, logger.NewTestLogger(t))

			resp, err := a.Advise(context.Background(), AdviceRequest{Message: "police arrested my brother, how to get bail"})
			require.NoError(t, err)
			assert.True(t, resp.Fallback)
			assert.Equal(t, 0.3, resp.Confidence)
			assert.True(t, strings.HasPrefix(resp.Response, fallbackIntro))
			assert.True(t, strings.HasSuffix(resp.Response, Disclaimer))
			assert.Equal(t, matching.CategoryCriminal, resp.CaseType)
			assert.NotEmpty(t, resp.SuggestedLawyers)
		})
	}
}

func TestAdvise_DirectoryFailure(t *testing.T) {
	a := newTestAdvisor(t, &fakeGenerator{text: "ok"}, &stubDirectory{err: stderrors.New("down")}, nil)
	resp, err := a.Advise(context.Background(), AdviceRequest{Message: "divorce"})
	require.NoError(t, err)
	assert.Empty(t, resp.SuggestedLawyers)
}

// ==========================
// Helpers
// ==========================

func TestConfidence(t *testing.T) {
	tests := []struct {
		name string
		docs []KnowledgeResult
		want float64
	}{
		{"no docs", nil, 0.3},
		{"one strong doc", []KnowledgeResult{{Relevance: 0.5}}, 0.7},
		{"unknown relevance defaults", []KnowledgeResult{{Relevance: 0}, {Relevance: 0}}, 0.7},
		{"capped", []KnowledgeResult{{Relevance: 1}, {Relevance: 1}, {Relevance: 1}}, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Confidence(tt.docs), 1e-9)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	history := []models.ChatMessage{
		{Type: "user", Content: "one"},
		{Type: "assistant", Content: "two"},
		{Type: "user", Content: "three"},
		{Type: "assistant", Content: "four"},
	}
	docs := []KnowledgeResult{{Document: LegalDocument{Source: "IT Act 2000", Content: "Section 43"}}}

	prompt := BuildPrompt("was my account hacked?", docs, history, "FIR copy attached")

	assert.Contains(t, prompt, "IT Act 2000: Section 43")
	assert.Contains(t, prompt, "DOCUMENT CONTEXT: FIR copy attached")
	assert.NotContains(t, prompt, "user: one")
	assert.Contains(t, prompt, "assistant: two\nuser: three\nassistant: four")
	assert.True(t, strings.HasSuffix(prompt, "USER QUERY: was my account hacked?\n\nPlease provide a comprehensive legal response:"))

	assert.NotContains(t, BuildPrompt("q", nil, nil, ""), "DOCUMENT CONTEXT")
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = responseText(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
