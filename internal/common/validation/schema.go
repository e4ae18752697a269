// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"legal-marketplace/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names for request bodies.
const (
	SchemaClassifyRequest       = "classify-request"
	SchemaMatchRequest          = "match-request"
	SchemaRecommendationRequest = "recommendation-request"
	SchemaChatRequest           = "chat-request"
	SchemaLawyerCreate          = "lawyer-create"
	SchemaConsultationRequest   = "consultation-request"
	SchemaCaseCreate            = "case-create"
	SchemaCaseAction            = "case-action"
	SchemaPaymentOrder          = "payment-order"
	SchemaPaymentVerify         = "payment-verify"
	SchemaPaymentRefund         = "payment-refund"
	SchemaDocumentAnalyze       = "document-analyze"
)

var schemaSources = map[string]string{
	SchemaClassifyRequest: `{
		"type": "object",
		"required": ["query"],
		"properties": {"query": {"type": "string", "minLength": 1, "maxLength": 2000}}
	}`,
	SchemaMatchRequest: `{
		"type": "object",
		"required": ["query"],
		"properties": {
			"query": {"type": "string", "minLength": 1, "maxLength": 2000},
			"userLocation": {"type": "string", "maxLength": 100},
			"caseType": {"type": "string", "maxLength": 50},
			"budget": {"type": "string", "maxLength": 50}
		}
	}`,
	SchemaRecommendationRequest: `{
		"type": "object",
		"required": ["description"],
		"properties": {
			"description": {"type": "string", "minLength": 1, "maxLength": 5000},
			"location": {"type": "string", "maxLength": 100},
			"caseType": {"type": "string", "maxLength": 50},
			"budget": {"type": "string", "maxLength": 50}
		}
	}`,
	SchemaChatRequest: `{
		"type": "object",
		"required": ["message"],
		"properties": {
			"message": {"type": "string", "minLength": 1, "maxLength": 4000},
			"sessionId": {"type": "string", "maxLength": 128},
			"userLocation": {"type": "string", "maxLength": 100},
			"documentContext": {"type": "string", "maxLength": 20000}
		}
	}`,
	SchemaLawyerCreate: `{
		"type": "object",
		"required": ["name", "specialization", "location"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"specialization": {"type": "string", "minLength": 1},
			"location": {"type": "string", "minLength": 1},
			"experience": {"type": "string"},
			"rating": {"type": "number", "minimum": 0, "maximum": 5},
			"consultationFee": {"type": "string"},
			"email": {"type": "string", "format": "email"},
			"languages": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	SchemaConsultationRequest: `{
		"type": "object",
		"required": ["userId", "lawyerId", "type", "scheduledAt"],
		"properties": {
			"userId": {"type": "string", "minLength": 1},
			"lawyerId": {"type": "string", "minLength": 1},
			"type": {"type": "string", "enum": ["video", "phone", "in-person"]},
			"scheduledAt": {"type": "string", "format": "date-time"},
			"userEmail": {"type": "string", "format": "email"},
			"userPhone": {"type": "string", "pattern": "^\\+?[0-9]{10,15}$"},
			"description": {"type": "string", "maxLength": 5000},
			"paymentId": {"type": "string"}
		}
	}`,
	SchemaCaseCreate: `{
		"type": "object",
		"required": ["clientId", "title"],
		"properties": {
			"clientId": {"type": "string", "minLength": 1},
			"lawyerId": {"type": "string"},
			"caseType": {"type": "string"},
			"title": {"type": "string", "minLength": 1, "maxLength": 200},
			"description": {"type": "string", "maxLength": 10000},
			"priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]}
		}
	}`,
	SchemaCaseAction: `{
		"type": "object",
		"required": ["action"],
		"properties": {
			"action": {"type": "string", "enum": ["update", "addDocument", "addCommunication", "setDeadline", "generateReport"]},
			"actorId": {"type": "string"},
			"updates": {"type": "object"},
			"document": {"type": "object", "required": ["name"]},
			"communication": {"type": "object", "required": ["type"]},
			"deadline": {"type": "object", "required": ["title", "dueDate"], "properties": {"dueDate": {"type": "string", "format": "date-time"}}}
		}
	}`,
	SchemaPaymentOrder: `{
		"type": "object",
		"required": ["amount", "consultationId", "lawyerId", "userId"],
		"properties": {
			"amount": {"type": "integer", "minimum": 1},
			"currency": {"type": "string", "minLength": 3, "maxLength": 3},
			"consultationId": {"type": "string", "minLength": 1},
			"lawyerId": {"type": "string", "minLength": 1},
			"userId": {"type": "string", "minLength": 1},
			"userEmail": {"type": "string", "format": "email"}
		}
	}`,
	SchemaPaymentVerify: `{
		"type": "object",
		"required": ["orderId", "paymentId"],
		"properties": {
			"orderId": {"type": "string", "minLength": 1},
			"paymentId": {"type": "string", "minLength": 1},
			"signature": {"type": "string"}
		}
	}`,
	SchemaPaymentRefund: `{
		"type": "object",
		"required": ["paymentId"],
		"properties": {
			"paymentId": {"type": "string", "minLength": 1},
			"amount": {"type": "integer", "minimum": 0}
		}
	}`,
	SchemaDocumentAnalyze: `{
		"type": "object",
		"required": ["text"],
		"properties": {
			"text": {"type": "string", "minLength": 1},
			"fileName": {"type": "string"}
		}
	}`,
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func schemas() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*gojsonschema.Schema, len(schemaSources))
		for name, src := range schemaSources {
			s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
	})
	return compiled, compileErr
}

// Validate checks a decoded document (map, struct or slice) against a named schema.
func Validate(schemaName string, doc interface{}) (*ValidationResult, error) {
	return validate(schemaName, gojsonschema.NewGoLoader(doc))
}

// ValidateJSON checks a raw JSON body against a named schema.
func ValidateJSON(schemaName string, body []byte) (*ValidationResult, error) {
	return validate(schemaName, gojsonschema.NewBytesLoader(body))
}

func validate(schemaName string, doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	all, err := schemas()
	if err != nil {
		return nil, err
	}
	schema, ok := all[schemaName]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", schemaName)
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_JSON"}},
		}, nil
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = strings.TrimPrefix(field+"."+prop, "(root).")
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// Err converts a failed result into a VALIDATION_FAILED error; valid results give nil.
func (vr *ValidationResult) Err() error {
	if vr == nil || vr.Valid {
		return nil
	}
	return errors.NewValidationError(strings.Join(vr.GetErrorMessages(), "; "))
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, 0, len(vr.Errors))
	for _, err := range vr.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
