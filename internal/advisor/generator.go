// internal/advisor/generator.go
package advisor

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"legal-marketplace/internal/common/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = stderrors.New("empty response from language model")

// Generator turns a prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini generative language API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string, maxTokens int32, temperature float32) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(maxTokens)
	}
	if temperature > 0 {
		model.SetTemperature(temperature)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// NewGeminiGeneratorFromConfig reads the apis.gemini section.
func NewGeminiGeneratorFromConfig(ctx context.Context, cfg *config.Config) (*GeminiGenerator, error) {
	g := cfg.APIs.Gemini
	return NewGeminiGenerator(ctx, g.APIKey, g.Model, g.MaxTokens, g.Temperature)
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return responseText(resp)
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
