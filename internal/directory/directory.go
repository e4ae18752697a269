// internal/directory/directory.go
package directory

import (
	"context"
	"strings"

	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/models"
)

// Directory is the read side consumed by the matching engine.
type Directory interface {
	GetAllProfiles(ctx context.Context) ([]models.LawyerProfile, error)
	GetByID(ctx context.Context, id string) (*models.LawyerProfile, error)
}

// Lister is a Directory that also serves filtered listings and accepts new profiles.
type Lister interface {
	Directory
	List(ctx context.Context, filter models.LawyerFilter) ([]models.LawyerProfile, error)
	Create(ctx context.Context, profile *models.LawyerProfile) error
}

// MatchesFilter applies a LawyerFilter in memory. Text filters are
// case-insensitive substring matches.
func MatchesFilter(p models.LawyerProfile, f models.LawyerFilter) bool {
	if f.Specialization != "" && !containsFold(p.Specialization, f.Specialization) {
		return false
	}
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if f.MaxFee > 0 && matching.ParseAmount(p.ConsultationFee) > f.MaxFee {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func filterProfiles(profiles []models.LawyerProfile, f models.LawyerFilter) []models.LawyerProfile {
	out := make([]models.LawyerProfile, 0, len(profiles))
	for _, p := range profiles {
		if MatchesFilter(p, f) {
			out = append(out, p)
		}
	}
	return out
}
