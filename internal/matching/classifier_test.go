// internal/matching/classifier_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Category
	}{
		{"landlord eviction", "my landlord is trying to evict me without notice", CategoryProperty},
		{"criminal bail", "How do I get BAIL after an arrest?", CategoryCriminal},
		{"family custody", "custody of my kid after separation", CategoryFamily},
		{"consumer defective", "the washing machine was defective", CategoryConsumer},
		{"labour salary", "my employer has not paid my salary", CategoryLabour},
		{"cyber hacking", "someone is hacking my email", CategoryCyber},
		{"civil breach", "they breached the agreement", CategoryCivil},
		{"no keywords", "what should I do next?", CategoryGeneral},
		{"empty", "", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Both criminal and property keywords: criminal is tested first.
	assert.Equal(t, CategoryCriminal, Classify("police came about the property"))
	// Family precedes labour.
	assert.Equal(t, CategoryFamily, Classify("my husband lost his job"))
}

func TestClassify_NeverReturnsCorporate(t *testing.T) {
	assert.NotEqual(t, CategoryCorporate, Classify("corporate merger compliance"))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"", CategoryGeneral, true},
		{"  Criminal ", CategoryCriminal, true},
		{"corporate", CategoryCorporate, true},
		{"general", CategoryGeneral, true},
		{"maritime", Category("maritime"), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCategory_MetricLabel(t *testing.T) {
	assert.Equal(t, "property", CategoryProperty.MetricLabel())
	assert.Equal(t, "general", CategoryGeneral.MetricLabel())
	assert.Equal(t, "other", Category("landlord_tenant").MetricLabel())
}
