// internal/models/case.go
package models

import "time"

type CaseStatus string

const (
	CaseCreated        CaseStatus = "created"
	CaseAssigned       CaseStatus = "assigned"
	CaseInProgress     CaseStatus = "in_progress"
	CaseReview         CaseStatus = "review"
	CaseAwaitingClient CaseStatus = "awaiting_client"
	CaseCompleted      CaseStatus = "completed"
)

// Case is a client matter tracked by the case manager.
type Case struct {
	ID             string          `json:"id" bson:"_id"`
	ClientID       string          `json:"clientId" bson:"client_id"`
	LawyerID       string          `json:"lawyerId,omitempty" bson:"lawyer_id"`
	CaseType       string          `json:"caseType" bson:"case_type"`
	Title          string          `json:"title" bson:"title"`
	Description    string          `json:"description" bson:"description"`
	Status         CaseStatus      `json:"status" bson:"status"`
	Priority       string          `json:"priority" bson:"priority"`
	Notes          string          `json:"notes,omitempty" bson:"notes,omitempty"`
	Timeline       []TimelineEvent `json:"timeline" bson:"timeline"`
	Documents      []CaseDocument  `json:"documents" bson:"documents"`
	Communications []Communication `json:"communications" bson:"communications"`
	Deadlines      []Deadline      `json:"deadlines" bson:"deadlines"`
	Insights       CaseInsights    `json:"aiInsights" bson:"insights"`
	Progress       int             `json:"progress" bson:"progress"`
	CreatedAt      time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updated_at"`
	CreatedBy      string          `json:"createdBy" bson:"created_by"`
}

type CaseInsights struct {
	Complexity         string   `json:"caseComplexity" bson:"complexity"`
	Indicators         []string `json:"indicators,omitempty" bson:"indicators,omitempty"`
	EstimatedDuration  string   `json:"estimatedDuration" bson:"estimated_duration"`
	SuccessProbability float64  `json:"successProbability" bson:"success_probability"`
}

type TimelineEvent struct {
	ID          int       `json:"id" bson:"id"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	Event       string    `json:"event" bson:"event"`
	Description string    `json:"description" bson:"description"`
	Actor       string    `json:"actor" bson:"actor"`
	Changes     []string  `json:"changes,omitempty" bson:"changes,omitempty"`
}

type CaseDocument struct {
	ID            string    `json:"id" bson:"id"`
	Name          string    `json:"name" bson:"name"`
	Type          string    `json:"type" bson:"type"`
	Size          int64     `json:"size" bson:"size"`
	UploadedBy    string    `json:"uploadedBy" bson:"uploaded_by"`
	UploadedAt    time.Time `json:"uploadedAt" bson:"uploaded_at"`
	Tags          []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	ExtractedText string    `json:"extractedText,omitempty" bson:"extracted_text,omitempty"`
}

type Communication struct {
	ID             string    `json:"id" bson:"id"`
	Type           string    `json:"type" bson:"type"`
	Content        string    `json:"content" bson:"content"`
	SenderID       string    `json:"senderId" bson:"sender_id"`
	RecipientIDs   []string  `json:"recipientIds,omitempty" bson:"recipient_ids,omitempty"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
	IsConfidential bool      `json:"isConfidential" bson:"is_confidential"`
}

const (
	DeadlineActive    = "active"
	DeadlineCompleted = "completed"
)

type Deadline struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	DueDate     time.Time `json:"dueDate" bson:"due_date"`
	Priority    string    `json:"priority" bson:"priority"`
	SetBy       string    `json:"setBy" bson:"set_by"`
	SetAt       time.Time `json:"setAt" bson:"set_at"`
	Status      string    `json:"status" bson:"status"`
}
