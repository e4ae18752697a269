// internal/cases/actions.go
package cases

import (
	"context"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"
)

const (
	ActionUpdate           = "update"
	ActionAddDocument      = "addDocument"
	ActionAddCommunication = "addCommunication"
	ActionSetDeadline      = "setDeadline"
	ActionGenerateReport   = "generateReport"
)

// ActionRequest is the body of a case action. Only the payload matching
// Action is read.
type ActionRequest struct {
	Action        string              `json:"action"`
	ActorID       string              `json:"actorId"`
	Updates       *CaseUpdate         `json:"updates,omitempty"`
	Document      *DocumentInput      `json:"document,omitempty"`
	Communication *CommunicationInput `json:"communication,omitempty"`
	Deadline      *DeadlineInput      `json:"deadline,omitempty"`
}

type ActionResult struct {
	Case          *models.Case          `json:"case,omitempty"`
	Document      *models.CaseDocument  `json:"document,omitempty"`
	Communication *models.Communication `json:"communication,omitempty"`
	Deadline      *models.Deadline      `json:"deadline,omitempty"`
	Report        *Report               `json:"report,omitempty"`
}

// Dispatch runs one named action against a case.
func (m *Manager) Dispatch(ctx context.Context, caseID string, req ActionRequest) (*ActionResult, error) {
	switch req.Action {
	case ActionUpdate:
		if req.Updates == nil {
			return nil, errors.NewValidationError("updates are required")
		}
		c, err := m.Update(ctx, caseID, *req.Updates, req.ActorID)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Case: c}, nil

	case ActionAddDocument:
		if req.Document == nil {
			return nil, errors.NewValidationError("document is required")
		}
		d, err := m.AddDocument(ctx, caseID, *req.Document, req.ActorID)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Document: d}, nil

	case ActionAddCommunication:
		if req.Communication == nil {
			return nil, errors.NewValidationError("communication is required")
		}
		comm, err := m.AddCommunication(ctx, caseID, *req.Communication, req.ActorID)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Communication: comm}, nil

	case ActionSetDeadline:
		if req.Deadline == nil {
			return nil, errors.NewValidationError("deadline is required")
		}
		d, err := m.SetDeadline(ctx, caseID, *req.Deadline, req.ActorID)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Deadline: d}, nil

	case ActionGenerateReport:
		r, err := m.GenerateReport(ctx, caseID)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Report: r}, nil

	default:
		return nil, errors.NewCaseActionInvalidError(req.Action)
	}
}
