// internal/matching/scorers.go
package matching

import (
	"hash/fnv"
	"strings"
)

const (
	locationExact    = 1.0
	locationMetro    = 0.7
	locationFallback = 0.3

	noKeywordListScore = 0.3
)

// SpecializationScore is 1.0 on a direct category mapping, otherwise the share
// of the lawyer's specialization keywords present in the query.
func SpecializationScore(l Lawyer, category Category, query string) float64 {
	if spec, ok := categorySpecialization[category]; ok && spec == l.Specialization {
		return 1.0
	}

	keywords, ok := specializationKeywords[l.Specialization]
	if !ok || len(keywords) == 0 {
		return noKeywordListScore
	}

	q := strings.ToLower(query)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			matches++
		}
	}
	return min(float64(matches)/float64(len(keywords)), 1.0)
}

// LocationScore never returns 0; remote consultation is always possible.
func LocationScore(lawyerLocation, userLocation string) float64 {
	if lawyerLocation == userLocation {
		return locationExact
	}
	for key, members := range metroGroups {
		if inGroup(key, members, lawyerLocation) && inGroup(key, members, userLocation) {
			return locationMetro
		}
	}
	return locationFallback
}

func inGroup(key string, members []string, location string) bool {
	if location == key {
		return true
	}
	for _, m := range members {
		if m == location {
			return true
		}
	}
	return false
}

func RequiredExperience(category Category) int {
	if req, ok := requiredExperience[category]; ok {
		return req
	}
	return defaultRequiredExperience
}

func ExperienceScore(years int, category Category) float64 {
	required := RequiredExperience(category)
	switch {
	case years >= required+5:
		return 1.0
	case years >= required:
		return 0.8
	case years >= required-2:
		return 0.6
	default:
		return 0.4
	}
}

func RatingScore(rating float64) float64 {
	switch {
	case rating >= 4.8:
		return 1.0
	case rating >= 4.5:
		return 0.9
	case rating >= 4.0:
		return 0.7
	case rating >= 3.5:
		return 0.5
	default:
		return 0.3
	}
}

// AvailabilityScore stands in for a calendar integration. It maps an FNV-1a
// hash of the lawyer ID into [0.7, 1.0] so rankings are reproducible.
func AvailabilityScore(lawyerID string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(lawyerID))
	return 0.7 + 0.3*float64(h.Sum32()%1001)/1000
}
