// internal/workers/consultation/book-consultation/models.go
package bookconsultation

import (
	"time"

	"legal-marketplace/internal/models"
)

type Input struct {
	UserID      string    `json:"userId"`
	UserEmail   string    `json:"userEmail,omitempty"`
	UserPhone   string    `json:"userPhone,omitempty"`
	LawyerID    string    `json:"lawyerId"`
	Type        string    `json:"consultationType"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Description string    `json:"description,omitempty"`
	PaymentID   string    `json:"paymentId,omitempty"`
}

type Output struct {
	ConsultationID string                    `json:"consultationId"`
	Status         models.ConsultationStatus `json:"consultationStatus"`
	MeetingLink    string                    `json:"meetingLink"`
	LawyerName     string                    `json:"lawyerName"`
	Fee            int                       `json:"fee"`
	ScheduledAt    time.Time                 `json:"scheduledAt"`
}
