// internal/documents/analyzer_test.go
package documents

import (
	"testing"

	"legal-marketplace/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_DocumentType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want DocumentType
	}{
		{"legal notice", "This LEGAL NOTICE is served upon you", TypeLegalNotice},
		{"contract", "This agreement is made between the parties", TypeContract},
		{"court order", "The decree passed by the learned judge", TypeCourtOrder},
		{"complaint", "The petitioner humbly prays", TypeComplaint},
		{"police report", "FIR registered at the local station", TypePoliceReport},
		{"property", "Sale deed for survey number 42", TypePropertyDocument},
		{"employment", "Your salary will be credited monthly", TypeEmployment},
		{"general", "Minutes of the residents meeting", TypeGeneral},
		{"first rule wins", "Notice of termination of the contract", TypeLegalNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.text).DocumentType)
		})
	}
}

func TestAnalyze_Urgency(t *testing.T) {
	tests := []struct {
		text string
		want Urgency
	}{
		{"Please review at your convenience", UrgencyLow},
		{"This is urgent", UrgencyMedium},
		{"Urgent: show cause why you should not appear before the court by the deadline", UrgencyHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Analyze(tt.text).UrgencyLevel, tt.text)
	}
}

func TestAnalyze_ReferencesAndActions(t *testing.T) {
	a := Analyze("Legal notice under Section 138 of the NI Act and section  420 IPC, violating Article 21.")

	assert.Equal(t, []string{"Section 138", "section  420", "Article 21"}, a.ReferencedLaws)
	assert.Equal(t, "Respond within the notice period", a.SuggestedActions[0])
	assert.Equal(t, "english", a.Language)
	assert.Equal(t, 16, a.WordCount)
}

func TestSuggestedActions_Default(t *testing.T) {
	assert.Equal(t, defaultActions, SuggestedActions(TypeEmployment))
	assert.Equal(t, defaultActions, SuggestedActions(TypeGeneral))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "hindi", DetectLanguage("यह एक कानूनी नोटिस है"))
	assert.Equal(t, "english", DetectLanguage("rent agreement"))
	assert.Equal(t, "unknown", DetectLanguage("12345 !!"))
}

func TestFileTypeFromName(t *testing.T) {
	assert.Equal(t, "application/pdf", FileTypeFromName("notice.PDF"))
	assert.Equal(t, "text/plain", FileTypeFromName("fir.txt"))
	assert.Equal(t, "application/octet-stream", FileTypeFromName("archive.zip"))
}

func TestProcess(t *testing.T) {
	p, err := Process(Upload{Name: "notice.txt", Data: []byte("  Legal notice:\n\n pay   within days  ")})
	require.NoError(t, err)
	assert.Equal(t, "text/plain", p.FileType)
	assert.Equal(t, "Legal notice: pay within days", p.ExtractedText)
	assert.Equal(t, TypeLegalNotice, p.Analysis.DocumentType)
	assert.Equal(t, UrgencyMedium, p.Analysis.UrgencyLevel)

	_, err = Process(Upload{Name: "scan.png", Data: []byte{0x89}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)

	_, err = Process(Upload{Name: "blank.txt", Data: []byte("   ")})
	assert.Error(t, err)
}
