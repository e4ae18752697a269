// internal/consultations/service.go
package consultations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/models"

	"github.com/google/uuid"
)

const (
	meetingRoomBaseURL = "https://meet.legalassistant.com/room/"
	phoneMeetingNote   = "Phone number will be shared via SMS"
	inPersonNote       = "Address will be shared via email"
)

type Repository interface {
	Create(ctx context.Context, c *models.Consultation) error
	Get(ctx context.Context, id string) (*models.Consultation, error)
	List(ctx context.Context, filter models.ConsultationFilter) ([]models.Consultation, error)
	Update(ctx context.Context, c *models.Consultation) error
}

// LawyerLookup resolves the lawyer being booked.
type LawyerLookup interface {
	GetByID(ctx context.Context, id string) (*models.LawyerProfile, error)
}

// Notifier is told about new bookings. Failures do not undo a booking.
type Notifier interface {
	ConsultationBooked(ctx context.Context, c *models.Consultation) error
}

type BookingRequest struct {
	UserID      string                  `json:"userId"`
	UserEmail   string                  `json:"userEmail,omitempty"`
	UserPhone   string                  `json:"userPhone,omitempty"`
	LawyerID    string                  `json:"lawyerId"`
	Type        models.ConsultationType `json:"type"`
	ScheduledAt time.Time               `json:"scheduledAt"`
	Description string                  `json:"description,omitempty"`
	PaymentID   string                  `json:"paymentId,omitempty"`
}

// UpdateRequest carries the mutable fields; nil means unchanged.
type UpdateRequest struct {
	Status      *models.ConsultationStatus `json:"status,omitempty"`
	Notes       *string                    `json:"notes,omitempty"`
	ScheduledAt *time.Time                 `json:"scheduledAt,omitempty"`
}

type Service struct {
	repo     Repository
	lawyers  LawyerLookup
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, lawyers LawyerLookup, notifier Notifier, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		lawyers:  lawyers,
		notifier: notifier,
		logger:   logger.ForComponent(log, "consultations"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Book(ctx context.Context, req BookingRequest) (*models.Consultation, error) {
	if err := validateBooking(req); err != nil {
		return nil, err
	}

	lawyer, err := s.lawyers.GetByID(ctx, req.LawyerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	c := &models.Consultation{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		UserEmail:     req.UserEmail,
		UserPhone:     req.UserPhone,
		LawyerID:      lawyer.ID,
		LawyerName:    lawyer.Name,
		Type:          req.Type,
		ScheduledAt:   req.ScheduledAt.UTC(),
		Description:   req.Description,
		Fee:           matching.ParseAmount(lawyer.ConsultationFee),
		Status:        models.ConsultationConfirmed,
		PaymentStatus: "completed",
		PaymentID:     req.PaymentID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	c.MeetingLink = MeetingLink(c.Type, c.ID)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("consultation booked", map[string]interface{}{
		"consultationId": c.ID,
		"lawyerId":       c.LawyerID,
		"type":           string(c.Type),
	})

	if s.notifier != nil {
		if err := s.notifier.ConsultationBooked(ctx, c); err != nil {
			s.logger.Warn("booking notification failed", map[string]interface{}{"consultationId": c.ID, "error": err})
		}
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Consultation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter models.ConsultationFilter) ([]models.Consultation, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*models.Consultation, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == models.ConsultationCancelled {
		return nil, errors.NewConsultationInvalidError("cancelled consultations cannot be updated")
	}

	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, errors.NewConsultationInvalidError(fmt.Sprintf("unknown status %q", *req.Status))
		}
		c.Status = *req.Status
		if c.Status == models.ConsultationCancelled {
			at := s.now()
			c.CancelledAt = &at
		}
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.ScheduledAt != nil {
		c.ScheduledAt = req.ScheduledAt.UTC()
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Cancel marks a consultation cancelled. Records are never deleted.
func (s *Service) Cancel(ctx context.Context, id string) (*models.Consultation, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == models.ConsultationCancelled {
		return c, nil
	}

	now := s.now()
	c.Status = models.ConsultationCancelled
	c.CancelledAt = &now
	c.UpdatedAt = now

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("consultation cancelled", map[string]interface{}{"consultationId": id})
	return c, nil
}

// MeetingLink returns the join instructions for a consultation type.
func MeetingLink(t models.ConsultationType, id string) string {
	switch t {
	case models.ConsultationVideo:
		return meetingRoomBaseURL + id
	case models.ConsultationPhone:
		return phoneMeetingNote
	default:
		return inPersonNote
	}
}

func validateBooking(req BookingRequest) error {
	var missing []string
	if req.UserID == "" {
		missing = append(missing, "userId")
	}
	if req.LawyerID == "" {
		missing = append(missing, "lawyerId")
	}
	if req.ScheduledAt.IsZero() {
		missing = append(missing, "scheduledAt")
	}
	if len(missing) > 0 {
		return errors.NewConsultationInvalidError("missing " + strings.Join(missing, ", "))
	}

	switch req.Type {
	case models.ConsultationVideo, models.ConsultationPhone, models.ConsultationInPerson:
	default:
		return errors.NewConsultationInvalidError(fmt.Sprintf("unknown consultation type %q", req.Type))
	}
	return nil
}

func validStatus(s models.ConsultationStatus) bool {
	switch s {
	case models.ConsultationConfirmed, models.ConsultationCompleted, models.ConsultationCancelled, models.ConsultationNoShow:
		return true
	}
	return false
}
