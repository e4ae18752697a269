// internal/matching/lawyer.go
package matching

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"legal-marketplace/internal/models"
)

// Lawyer is a directory profile with its numeric fields parsed once.
type Lawyer struct {
	models.LawyerProfile
	ExperienceYears int `json:"-"`
	Fee             int `json:"-"`
}

// ParseAmount keeps only the ASCII digits of s and parses them. Anything that
// does not yield a non-negative int is 0.
func ParseAmount(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FromProfile converts a directory profile. Out-of-range ratings are clamped to [0,5].
func FromProfile(p models.LawyerProfile) Lawyer {
	if math.IsNaN(p.Rating) || p.Rating < 0 {
		p.Rating = 0
	} else if p.Rating > 5 {
		p.Rating = 5
	}
	return Lawyer{
		LawyerProfile:   p,
		ExperienceYears: ParseAmount(p.Experience),
		Fee:             ParseAmount(p.ConsultationFee),
	}
}

func FromProfiles(profiles []models.LawyerProfile) []Lawyer {
	out := make([]Lawyer, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, FromProfile(p))
	}
	return out
}
