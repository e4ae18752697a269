// internal/cases/manager.go
package cases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/models"

	"github.com/google/uuid"
)

const (
	defaultPriority           = "medium"
	defaultSuccessProbability = 0.7
	systemActor               = "system"
)

var estimatedDurations = map[matching.ComplexityLevel]string{
	matching.ComplexityLow:    "1-2 weeks",
	matching.ComplexityMedium: "2-4 weeks",
	matching.ComplexityHigh:   "2-6 months",
}

var statusProgress = map[models.CaseStatus]int{
	models.CaseCreated:        10,
	models.CaseAssigned:       20,
	models.CaseInProgress:     40,
	models.CaseReview:         70,
	models.CaseAwaitingClient: 80,
	models.CaseCompleted:      100,
}

var communicationTypes = map[string]bool{
	"message": true,
	"email":   true,
	"call":    true,
	"meeting": true,
}

type Repository interface {
	Create(ctx context.Context, c *models.Case) error
	Get(ctx context.Context, id string) (*models.Case, error)
	Save(ctx context.Context, c *models.Case) error
}

type CreateRequest struct {
	ClientID    string          `json:"clientId"`
	LawyerID    string          `json:"lawyerId,omitempty"`
	CaseType    string          `json:"caseType"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    string          `json:"priority,omitempty"`
	Documents   []DocumentInput `json:"documents,omitempty"`
}

// CaseUpdate carries the mutable case fields; nil means unchanged.
type CaseUpdate struct {
	Status   *models.CaseStatus `json:"status,omitempty"`
	Priority *string            `json:"priority,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
	LawyerID *string            `json:"lawyerId,omitempty"`
}

type DocumentInput struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Size          int64    `json:"size"`
	Tags          []string `json:"tags,omitempty"`
	ExtractedText string   `json:"extractedText,omitempty"`
}

type CommunicationInput struct {
	Type           string   `json:"type"`
	Content        string   `json:"content"`
	RecipientIDs   []string `json:"recipientIds,omitempty"`
	IsConfidential bool     `json:"isConfidential"`
}

type DeadlineInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority,omitempty"`
}

// Manager applies case actions. Mutations on one manager are serialized so
// timeline ids stay sequential.
type Manager struct {
	mu     sync.Mutex
	repo   Repository
	logger logger.Logger
	now    func() time.Time
}

func NewManager(repo Repository, log logger.Logger) *Manager {
	return &Manager{
		repo:   repo,
		logger: logger.ForComponent(log, "cases"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *Manager) Create(ctx context.Context, req CreateRequest) (*models.Case, error) {
	if req.ClientID == "" || req.Title == "" {
		return nil, errors.NewValidationError("clientId and title are required")
	}
	priority := req.Priority
	if priority == "" {
		priority = defaultPriority
	}

	complexity := matching.AnalyzeComplexity(req.Description)
	now := m.now()

	c := &models.Case{
		ID:          uuid.New().String(),
		ClientID:    req.ClientID,
		LawyerID:    req.LawyerID,
		CaseType:    req.CaseType,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.CaseCreated,
		Priority:    priority,
		Insights: models.CaseInsights{
			Complexity:         string(complexity.Level),
			Indicators:         complexity.Indicators,
			EstimatedDuration:  estimatedDurations[complexity.Level],
			SuccessProbability: defaultSuccessProbability,
		},
		Progress:  ProgressFor(models.CaseCreated),
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: req.ClientID,
	}
	m.appendEvent(c, "case_created", "Case created and assigned to lawyer", systemActor, nil)

	for _, d := range req.Documents {
		c.Documents = append(c.Documents, m.newDocument(d, req.ClientID))
	}

	if err := m.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	m.logger.Info("case created", map[string]interface{}{
		"caseId":     c.ID,
		"caseType":   c.CaseType,
		"complexity": c.Insights.Complexity,
	})
	return c, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*models.Case, error) {
	return m.repo.Get(ctx, id)
}

func (m *Manager) Update(ctx context.Context, id string, upd CaseUpdate, actorID string) (*models.Case, error) {
	var changes []string
	if upd.Status != nil {
		if _, ok := statusProgress[*upd.Status]; !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("unknown case status %q", *upd.Status))
		}
		changes = append(changes, "status")
	}
	if upd.Priority != nil {
		changes = append(changes, "priority")
	}
	if upd.Notes != nil {
		changes = append(changes, "notes")
	}
	if upd.LawyerID != nil {
		changes = append(changes, "lawyerId")
	}
	if len(changes) == 0 {
		return nil, errors.NewValidationError("no updates supplied")
	}

	return m.mutate(ctx, id, func(c *models.Case) {
		if upd.Status != nil {
			c.Status = *upd.Status
			c.Progress = ProgressFor(c.Status)
		}
		if upd.Priority != nil {
			c.Priority = *upd.Priority
		}
		if upd.Notes != nil {
			c.Notes = *upd.Notes
		}
		if upd.LawyerID != nil {
			c.LawyerID = *upd.LawyerID
		}
		m.appendEvent(c, "case_updated", "Case updated by "+actorID, actorID, changes)
	})
}

func (m *Manager) AddDocument(ctx context.Context, id string, in DocumentInput, uploadedBy string) (*models.CaseDocument, error) {
	if in.Name == "" {
		return nil, errors.NewValidationError("document name is required")
	}
	doc := m.newDocument(in, uploadedBy)
	_, err := m.mutate(ctx, id, func(c *models.Case) {
		c.Documents = append(c.Documents, doc)
		m.appendEvent(c, "document_added", fmt.Sprintf("Document %q added by %s", in.Name, uploadedBy), uploadedBy, nil)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *Manager) AddCommunication(ctx context.Context, id string, in CommunicationInput, senderID string) (*models.Communication, error) {
	if !communicationTypes[in.Type] {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown communication type %q", in.Type))
	}
	comm := models.Communication{
		ID:             uuid.New().String(),
		Type:           in.Type,
		Content:        in.Content,
		SenderID:       senderID,
		RecipientIDs:   in.RecipientIDs,
		Timestamp:      m.now(),
		IsConfidential: in.IsConfidential,
	}
	_, err := m.mutate(ctx, id, func(c *models.Case) {
		c.Communications = append(c.Communications, comm)
		m.appendEvent(c, "communication_added", fmt.Sprintf("%s sent by %s", in.Type, senderID), senderID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &comm, nil
}

func (m *Manager) SetDeadline(ctx context.Context, id string, in DeadlineInput, setBy string) (*models.Deadline, error) {
	if in.Title == "" || in.DueDate.IsZero() {
		return nil, errors.NewValidationError("deadline title and dueDate are required")
	}
	priority := in.Priority
	if priority == "" {
		priority = defaultPriority
	}
	deadline := models.Deadline{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate.UTC(),
		Priority:    priority,
		SetBy:       setBy,
		SetAt:       m.now(),
		Status:      models.DeadlineActive,
	}
	_, err := m.mutate(ctx, id, func(c *models.Case) {
		c.Deadlines = append(c.Deadlines, deadline)
		desc := fmt.Sprintf("Deadline %q set for %s", in.Title, deadline.DueDate.Format(time.DateOnly))
		m.appendEvent(c, "deadline_set", desc, setBy, nil)
	})
	if err != nil {
		return nil, err
	}
	return &deadline, nil
}

// ProgressFor maps a status to its completion percentage. Unknown statuses are 0.
func ProgressFor(status models.CaseStatus) int {
	return statusProgress[status]
}

func (m *Manager) mutate(ctx context.Context, id string, apply func(c *models.Case)) (*models.Case, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(c)
	c.UpdatedAt = m.now()

	if err := m.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Manager) newDocument(in DocumentInput, uploadedBy string) models.CaseDocument {
	return models.CaseDocument{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Type:          in.Type,
		Size:          in.Size,
		UploadedBy:    uploadedBy,
		UploadedAt:    m.now(),
		Tags:          in.Tags,
		ExtractedText: in.ExtractedText,
	}
}

func (m *Manager) appendEvent(c *models.Case, event, description, actor string, changes []string) {
	c.Timeline = append(c.Timeline, models.TimelineEvent{
		ID:          len(c.Timeline) + 1,
		Timestamp:   m.now(),
		Event:       event,
		Description: description,
		Actor:       actor,
		Changes:     changes,
	})
}
