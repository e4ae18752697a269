// internal/workers/consultation/book-consultation/handler_test.go
package bookconsultation

import (
	"context"
	"testing"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/consultations"
	"legal-marketplace/internal/directory"
	"legal-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) (*Handler, *consultations.MemoryRepository) {
	dir := directory.NewMemoryDirectory([]models.LawyerProfile{
		{ID: "lw-003", Name: "Adv. Anita Desai", Specialization: "Family Law", Location: "Noida", Experience: "6 years", Rating: 4.6, ConsultationFee: "₹2000"},
	})
	repo := consultations.NewMemoryRepository()
	svc := consultations.NewService(repo, dir, nil, logger.NewTestLogger(t))
	return NewHandler(LoadConfig(), svc, logger.NewTestLogger(t)), repo
}

func createTestInput() *Input {
	return &Input{
		UserID:      "user-42",
		UserEmail:   "client@example.com",
		LawyerID:    "lw-003",
		Type:        "video",
		ScheduledAt: time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC),
		Description: "Custody arrangement after separation",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h, repo := newTestHandler(t)

	out, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ConsultationID)
	assert.Equal(t, models.ConsultationConfirmed, out.Status)
	assert.Equal(t, "https://meet.legalassistant.com/room/"+out.ConsultationID, out.MeetingLink)
	assert.Equal(t, "Adv. Anita Desai", out.LawyerName)
	assert.Equal(t, 2000, out.Fee)

	stored, err := repo.Get(context.Background(), out.ConsultationID)
	require.NoError(t, err)
	assert.Equal(t, "user-42", stored.UserID)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
		code   errors.ErrorCode
	}{
		{"missing user", func(in *Input) { in.UserID = "" }, errors.ErrCodeConsultationInvalid},
		{"unknown type", func(in *Input) { in.Type = "carrier-pigeon" }, errors.ErrCodeConsultationInvalid},
		{"zero schedule", func(in *Input) { in.ScheduledAt = time.Time{} }, errors.ErrCodeConsultationInvalid},
		{"unknown lawyer", func(in *Input) { in.LawyerID = "lw-999" }, errors.ErrCodeLawyerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			in := createTestInput()
			tt.mutate(in)

			out, err := h.Execute(context.Background(), in)
			assert.Nil(t, out)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.AsStandardError(err).Code)
		})
	}
}
