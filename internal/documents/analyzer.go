// internal/documents/analyzer.go
package documents

import (
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"legal-marketplace/internal/common/errors"
)

type DocumentType string

const (
	TypeLegalNotice      DocumentType = "legal_notice"
	TypeContract         DocumentType = "contract"
	TypeCourtOrder       DocumentType = "court_order"
	TypeComplaint        DocumentType = "complaint"
	TypePoliceReport     DocumentType = "police_report"
	TypePropertyDocument DocumentType = "property_document"
	TypeEmployment       DocumentType = "employment"
	TypeGeneral          DocumentType = "general"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

type typeRule struct {
	docType  DocumentType
	keywords []string
}

// Checked in order; the first rule with any keyword wins.
var typeRules = []typeRule{
	{TypeLegalNotice, []string{"legal notice", "notice", "demand", "cease and desist"}},
	{TypeContract, []string{"agreement", "contract", "terms and conditions", "whereas"}},
	{TypeCourtOrder, []string{"court order", "judgment", "decree", "writ"}},
	{TypeComplaint, []string{"complaint", "petition", "application", "pray"}},
	{TypePoliceReport, []string{"fir", "police", "station", "complaint number"}},
	{TypePropertyDocument, []string{"sale deed", "property", "land", "survey number"}},
	{TypeEmployment, []string{"employment", "salary", "termination", "appointment"}},
}

var urgencyIndicators = []string{
	"urgent", "immediate", "notice period", "time limit", "deadline",
	"show cause", "appear before", "within days",
}

var (
	sectionRef = regexp.MustCompile(`(?i)section\s+\d+`)
	articleRef = regexp.MustCompile(`(?i)article\s+\d+`)
	whitespace = regexp.MustCompile(`\s+`)
)

var suggestedActions = map[DocumentType][]string{
	TypeLegalNotice: {
		"Respond within the notice period",
		"Consult a lawyer immediately",
		"Gather relevant documents and evidence",
		"Consider negotiation or mediation",
	},
	TypeCourtOrder: {
		"Comply with court directions",
		"File compliance affidavit if required",
		"Consult lawyer for appeal options",
		"Maintain record of compliance",
	},
	TypeContract: {
		"Review terms and conditions carefully",
		"Identify obligations and rights",
		"Check for unfair clauses",
		"Understand termination conditions",
	},
	TypeComplaint: {
		"Prepare detailed response",
		"Gather supporting documents",
		"File counter-claim if applicable",
		"Engage legal representation",
	},
	TypePropertyDocument: {
		"Verify document authenticity",
		"Check for encumbrances",
		"Ensure proper registration",
		"Obtain legal clearance certificate",
	},
}

var defaultActions = []string{
	"Review document carefully",
	"Identify key legal issues",
	"Consult appropriate legal expert",
	"Maintain proper documentation",
}

var extensionTypes = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"txt":  "text/plain",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type Analysis struct {
	DocumentType     DocumentType `json:"documentType"`
	UrgencyLevel     Urgency      `json:"urgencyLevel"`
	UrgencyKeywords  []string     `json:"urgencyKeywords"`
	ReferencedLaws   []string     `json:"referencedLaws"`
	SuggestedActions []string     `json:"suggestedActions"`
	WordCount        int          `json:"wordCount"`
	Language         string       `json:"language"`
}

// Analyze classifies cleaned document text.
func Analyze(text string) Analysis {
	lower := strings.ToLower(text)

	a := Analysis{
		DocumentType:    TypeGeneral,
		UrgencyLevel:    UrgencyLow,
		UrgencyKeywords: []string{},
		ReferencedLaws:  []string{},
		WordCount:       len(strings.Fields(text)),
		Language:        DetectLanguage(text),
	}

	for _, rule := range typeRules {
		if containsAny(lower, rule.keywords) {
			a.DocumentType = rule.docType
			break
		}
	}

	a.ReferencedLaws = append(a.ReferencedLaws, sectionRef.FindAllString(text, -1)...)
	a.ReferencedLaws = append(a.ReferencedLaws, articleRef.FindAllString(text, -1)...)

	for _, kw := range urgencyIndicators {
		if strings.Contains(lower, kw) {
			a.UrgencyKeywords = append(a.UrgencyKeywords, kw)
		}
	}
	switch n := len(a.UrgencyKeywords); {
	case n > 2:
		a.UrgencyLevel = UrgencyHigh
	case n > 0:
		a.UrgencyLevel = UrgencyMedium
	}

	a.SuggestedActions = SuggestedActions(a.DocumentType)
	return a
}

func SuggestedActions(t DocumentType) []string {
	if actions, ok := suggestedActions[t]; ok {
		return actions
	}
	return defaultActions
}

// DetectLanguage compares Devanagari and Latin letter counts.
func DetectLanguage(text string) string {
	var hindi, english int
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Devanagari):
			hindi++
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			english++
		}
	}
	switch {
	case hindi > english:
		return "hindi"
	case english > 0:
		return "english"
	default:
		return "unknown"
	}
}

// CleanText collapses runs of whitespace.
func CleanText(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// FileTypeFromName guesses a MIME type from the file extension.
func FileTypeFromName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return "application/octet-stream"
}

type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

type Processed struct {
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	FileSize      int       `json:"fileSize"`
	ProcessedAt   time.Time `json:"processedAt"`
	ExtractedText string    `json:"extractedText"`
	Analysis      Analysis  `json:"legalAnalysis"`
}

// Process extracts and analyzes a plain-text upload. Binary formats need an
// OCR or PDF extraction step upstream and are rejected.
func Process(u Upload) (*Processed, error) {
	fileType := u.ContentType
	if fileType == "" {
		fileType = FileTypeFromName(u.Name)
	}
	if !strings.HasPrefix(fileType, "text/") {
		return nil, errors.NewValidationError("unsupported file type: " + fileType)
	}

	text := CleanText(string(u.Data))
	if text == "" {
		return nil, errors.NewValidationError("document has no text")
	}

	return &Processed{
		FileName:      u.Name,
		FileType:      fileType,
		FileSize:      len(u.Data),
		ProcessedAt:   time.Now().UTC(),
		ExtractedText: text,
		Analysis:      Analyze(text),
	}, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
