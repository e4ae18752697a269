// internal/workers/advisory/generate-legal-advice/models.go
package generatelegaladvice

import (
	"legal-marketplace/internal/advisor"
	"legal-marketplace/internal/models"
)

type Input struct {
	Message         string               `json:"message"`
	SessionID       string               `json:"sessionId,omitempty"`
	UserLocation    string               `json:"userLocation,omitempty"`
	DocumentContext string               `json:"documentContext,omitempty"`
	ChatHistory     []models.ChatMessage `json:"chatHistory,omitempty"`
}

type Output struct {
	Advice advisor.AdviceResponse `json:"advice"`
	// SuggestedLawyerIDs flattens the suggestions for gateway conditions.
	SuggestedLawyerIDs []string `json:"suggestedLawyerIds"`
}
