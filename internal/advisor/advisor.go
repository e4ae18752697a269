// internal/advisor/advisor.go
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/models"
)

const (
	Disclaimer = "⚖️ Legal Disclaimer: This information is for educational purposes only and does not constitute legal advice. Please consult with a qualified lawyer for advice specific to your situation."

	fallbackIntro = "I apologize, but I encountered an error processing your request. However, I can still suggest some qualified lawyers who might be able to help you."

	knowledgeTopK      = 5
	promptHistoryTurns = 3
	suggestedLawyers   = 3
	defaultLocation    = "Delhi"
	fallbackConfidence = 0.3
)

type AdviceRequest struct {
	Message         string               `json:"message"`
	SessionID       string               `json:"sessionId,omitempty"`
	UserLocation    string               `json:"userLocation,omitempty"`
	DocumentContext string               `json:"documentContext,omitempty"`
	History         []models.ChatMessage `json:"chatHistory,omitempty"`
}

type AdviceResponse struct {
	Response         string                 `json:"response"`
	CaseType         matching.Category      `json:"caseType"`
	RelevantLaws     []string               `json:"relevantLaws"`
	Citations        []LegalDocument        `json:"citations"`
	SuggestedLawyers []matching.MatchResult `json:"suggestedLawyers"`
	Confidence       float64                `json:"confidence"`
	Fallback         bool                   `json:"fallback,omitempty"`
}

type Options struct {
	Timeout time.Duration
}

// Advisor answers a legal question with model-generated text grounded on the
// knowledge base and suggests lawyers for it.
type Advisor struct {
	generator Generator
	knowledge *KnowledgeBase
	engine    *matching.Engine
	directory matching.ProfileSource
	history   HistoryStore
	timeout   time.Duration
	logger    logger.Logger
}

// NewAdvisor wires the advisor. generator and history may be nil: without a
// generator every answer is the fallback, without history nothing is kept.
func NewAdvisor(generator Generator, kb *KnowledgeBase, engine *matching.Engine, directory matching.ProfileSource, history HistoryStore, opts Options, log logger.Logger) *Advisor {
	if kb == nil {
		kb = NewKnowledgeBase()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Advisor{
		generator: generator,
		knowledge: kb,
		engine:    engine,
		directory: directory,
		history:   history,
		timeout:   opts.Timeout,
		logger:    logger.ForComponent(log, "advisor"),
	}
}

func (a *Advisor) Advise(ctx context.Context, req AdviceRequest) (*AdviceResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errors.NewValidationError("message is required")
	}

	history := req.History
	if len(history) == 0 && a.history != nil && req.SessionID != "" {
		recent, err := a.history.Recent(ctx, req.SessionID, promptHistoryTurns)
		if err != nil {
			a.logger.Warn("failed to load chat history", map[string]interface{}{"sessionId": req.SessionID, "error": err})
		}
		history = recent
	}

	category := matching.Classify(message)
	docs := a.knowledge.Search(message, knowledgeTopK)

	resp := &AdviceResponse{
		CaseType:     category,
		RelevantLaws: relevantLaws(docs),
		Citations:    citations(docs),
	}

	text, err := a.generate(ctx, BuildPrompt(message, docs, history, req.DocumentContext))
	if err != nil {
		a.logger.Warn("advice generation failed, using fallback", map[string]interface{}{
			"category": string(category),
			"error":    err,
		})
		resp.Response = fallbackResponse(docs)
		resp.Confidence = fallbackConfidence
		resp.Fallback = true
	} else {
		resp.Response = text + "\n\n" + Disclaimer
		resp.Confidence = Confidence(docs)
	}

	resp.SuggestedLawyers = a.suggestLawyers(ctx, message, req.UserLocation, category)
	a.remember(ctx, req.SessionID, message, resp.Response)

	return resp, nil
}

func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	if a.generator == nil {
		return "", errors.NewAdviceGenerationFailedError(fmt.Errorf("no language model configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.NewAdviceTimeoutError()
		}
		return "", errors.NewAdviceGenerationFailedError(err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.NewAdviceGenerationFailedError(ErrEmptyResponse)
	}
	return text, nil
}

// suggestLawyers ranks the directory for the message and falls back to the
// first directory profiles when ranking fails.
func (a *Advisor) suggestLawyers(ctx context.Context, message, location string, category matching.Category) []matching.MatchResult {
	if a.engine == nil || a.directory == nil {
		return []matching.MatchResult{}
	}
	if location == "" {
		location = defaultLocation
	}

	matches, err := a.engine.RankLawyers(ctx, message, location, string(category), "", a.directory)
	if err == nil {
		return firstN(matches.Matches, suggestedLawyers)
	}

	a.logger.Warn("lawyer matching failed, using directory order", map[string]interface{}{"error": err})
	profiles, err := a.directory.GetAllProfiles(ctx)
	if err != nil {
		return []matching.MatchResult{}
	}
	out := make([]matching.MatchResult, 0, suggestedLawyers)
	for _, p := range profiles {
		if len(out) == suggestedLawyers {
			break
		}
		out = append(out, matching.MatchResult{Lawyer: p})
	}
	return out
}

func (a *Advisor) remember(ctx context.Context, sessionID, question, answer string) {
	if a.history == nil || sessionID == "" {
		return
	}
	now := time.Now().UTC()
	err := a.history.Append(ctx, sessionID,
		models.ChatMessage{Type: models.ChatRoleUser, Content: question, Timestamp: now},
		models.ChatMessage{Type: models.ChatRoleAssistant, Content: answer, Timestamp: now},
	)
	if err != nil {
		a.logger.Warn("failed to store chat history", map[string]interface{}{"sessionId": sessionID, "error": err})
	}
}

// BuildPrompt assembles the instruction prompt with retrieved knowledge, the
// optional document context and the last three history turns.
func BuildPrompt(query string, docs []KnowledgeResult, history []models.ChatMessage, documentContext string) string {
	var sb strings.Builder
	sb.WriteString(`You are an expert AI legal assistant specializing in Indian law. You provide accurate, helpful legal information while maintaining appropriate disclaimers.

INSTRUCTIONS:
1. Analyze the user's query in the context of Indian law
2. Use the provided legal knowledge to give specific, relevant advice
3. Cite specific laws, sections, and articles when applicable
4. Explain complex legal concepts in simple language
5. Always include appropriate legal disclaimers
6. If the query requires urgent legal action, emphasize consulting a lawyer immediately
7. For document analysis, focus on key legal issues and relevant laws

LEGAL KNOWLEDGE CONTEXT:
`)
	for i, d := range docs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(d.Document.Source + ": " + d.Document.Content)
	}
	sb.WriteString("\n\n")

	if documentContext != "" {
		sb.WriteString("DOCUMENT CONTEXT: " + documentContext + "\n\n")
	}

	sb.WriteString("CONVERSATION HISTORY:\n")
	for _, msg := range trimHistory(history, promptHistoryTurns) {
		sb.WriteString(msg.Type + ": " + msg.Content + "\n")
	}

	sb.WriteString(`
GUIDELINES:
- Be empathetic and understanding
- Provide actionable guidance where possible
- Explain rights and legal options clearly
- Mention relevant time limits and procedures
- Suggest when professional legal help is essential

Remember: You are providing legal information, not legal advice. Always recommend consulting with a qualified lawyer for specific legal matters.

USER QUERY: `)
	sb.WriteString(query)
	sb.WriteString("\n\nPlease provide a comprehensive legal response:")
	return sb.String()
}

// Confidence is 0.3 without grounding, otherwise the mean relevance plus a
// bonus of up to 0.2 for the number of documents, capped at 0.95.
func Confidence(docs []KnowledgeResult) float64 {
	if len(docs) == 0 {
		return fallbackConfidence
	}
	var sum float64
	for _, d := range docs {
		if d.Relevance > 0 {
			sum += d.Relevance
		} else {
			sum += 0.5
		}
	}
	avg := sum / float64(len(docs))
	bonus := min(float64(len(docs))/5, 0.2)
	return min(avg+bonus, 0.95)
}

func fallbackResponse(docs []KnowledgeResult) string {
	var sb strings.Builder
	sb.WriteString(fallbackIntro)
	if len(docs) > 0 {
		sb.WriteString("\n\nProvisions that may be relevant to your question:")
		for _, d := range docs {
			sb.WriteString("\n- " + d.Document.Reference() + ": " + d.Document.Content)
		}
	}
	sb.WriteString("\n\n" + Disclaimer)
	return sb.String()
}

func relevantLaws(docs []KnowledgeResult) []string {
	laws := make([]string, 0, len(docs))
	for _, d := range docs {
		laws = append(laws, d.Document.Reference())
	}
	return laws
}

func citations(docs []KnowledgeResult) []LegalDocument {
	out := make([]LegalDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Document)
	}
	return out
}

func firstN(matches []matching.MatchResult, n int) []matching.MatchResult {
	if len(matches) > n {
		return matches[:n]
	}
	return matches
}
