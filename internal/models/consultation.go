// internal/models/consultation.go
package models

import "time"

type ConsultationType string

const (
	ConsultationVideo    ConsultationType = "video"
	ConsultationPhone    ConsultationType = "phone"
	ConsultationInPerson ConsultationType = "in-person"
)

type ConsultationStatus string

const (
	ConsultationConfirmed ConsultationStatus = "confirmed"
	ConsultationCompleted ConsultationStatus = "completed"
	ConsultationCancelled ConsultationStatus = "cancelled"
	ConsultationNoShow    ConsultationStatus = "no_show"
)

// Consultation is a booked session between a user and a lawyer.
type Consultation struct {
	ID            string             `json:"id" db:"id"`
	UserID        string             `json:"userId" db:"user_id"`
	UserEmail     string             `json:"userEmail,omitempty" db:"user_email"`
	UserPhone     string             `json:"userPhone,omitempty" db:"user_phone"`
	LawyerID      string             `json:"lawyerId" db:"lawyer_id"`
	LawyerName    string             `json:"lawyerName" db:"lawyer_name"`
	Type          ConsultationType   `json:"type" db:"type"`
	ScheduledAt   time.Time          `json:"scheduledAt" db:"scheduled_at"`
	Description   string             `json:"description,omitempty" db:"description"`
	Fee           int                `json:"fee" db:"fee"`
	Status        ConsultationStatus `json:"status" db:"status"`
	PaymentStatus string             `json:"paymentStatus" db:"payment_status"`
	PaymentID     string             `json:"paymentId,omitempty" db:"payment_id"`
	MeetingLink   string             `json:"meetingLink" db:"meeting_link"`
	Notes         string             `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" db:"updated_at"`
	CancelledAt   *time.Time         `json:"cancelledAt,omitempty" db:"cancelled_at"`
}

// ConsultationFilter selects consultations by participant.
type ConsultationFilter struct {
	UserID   string `form:"userId"`
	LawyerID string `form:"lawyerId"`
}
