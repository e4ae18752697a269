// internal/matching/taxonomy.go
package matching

import "strings"

// Category is a label from the closed legal taxonomy.
type Category string

const (
	CategoryCriminal  Category = "criminal"
	CategoryFamily    Category = "family"
	CategoryProperty  Category = "property"
	CategoryConsumer  Category = "consumer"
	CategoryLabour    Category = "labour"
	CategoryCyber     Category = "cyber"
	CategoryCivil     Category = "civil"
	CategoryCorporate Category = "corporate"
	CategoryGeneral   Category = "general"
)

// Categories lists every taxonomy label.
var Categories = []Category{
	CategoryCriminal,
	CategoryFamily,
	CategoryProperty,
	CategoryConsumer,
	CategoryLabour,
	CategoryCyber,
	CategoryCivil,
	CategoryCorporate,
	CategoryGeneral,
}

// MetricLabel bounds metric label values to the taxonomy; anything else is "other".
func (c Category) MetricLabel() string {
	for _, known := range Categories {
		if c == known {
			return string(c)
		}
	}
	return "other"
}

// ParseCategory maps a case-type string onto the taxonomy. Empty input is general.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryGeneral, true
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return Category(s), false
}

type classifierRule struct {
	category Category
	keywords []string
}

// classifierRules are evaluated in order; the first rule with a substring hit wins.
var classifierRules = []classifierRule{
	{CategoryCriminal, []string{"crime", "criminal", "police", "arrest", "bail", "fir", "chargesheet", "murder", "theft", "rape", "assault"}},
	{CategoryFamily, []string{"divorce", "marriage", "custody", "alimony", "domestic", "family", "child", "wife", "husband"}},
	{CategoryProperty, []string{"property", "land", "rent", "landlord", "tenant", "eviction", "sale", "purchase", "registration"}},
	{CategoryConsumer, []string{"consumer", "product", "service", "refund", "warranty", "complaint", "defective"}},
	{CategoryLabour, []string{"job", "employment", "salary", "termination", "harassment", "workplace", "leave", "overtime"}},
	{CategoryCyber, []string{"cyber", "online", "internet", "hacking", "fraud", "digital", "social media", "data"}},
	{CategoryCivil, []string{"contract", "agreement", "breach", "compensation", "negligence", "damages", "suit", "court"}},
}

var categorySpecialization = map[Category]string{
	CategoryCriminal:  "Criminal Law",
	CategoryFamily:    "Family Law",
	CategoryProperty:  "Property & Rental Law",
	CategoryConsumer:  "Consumer Protection",
	CategoryLabour:    "Labour Law",
	CategoryCyber:     "Cyber Law",
	CategoryCorporate: "Corporate Law",
}

// SpecializationFor returns the directory specialization a category maps to.
func SpecializationFor(c Category) (string, bool) {
	s, ok := categorySpecialization[c]
	return s, ok
}

var specializationKeywords = map[string][]string{
	"Property & Rental Law": {"property", "rent", "landlord", "tenant", "eviction", "real estate"},
	"Criminal Law":          {"criminal", "crime", "police", "arrest", "bail", "fir", "theft", "murder"},
	"Family Law":            {"family", "divorce", "marriage", "custody", "alimony", "domestic violence"},
	"Consumer Protection":   {"consumer", "product", "service", "warranty", "defective", "refund"},
	"Corporate Law":         {"business", "company", "corporate", "contract", "merger", "compliance"},
	"Labour Law":            {"employment", "job", "salary", "termination", "workplace", "harassment"},
	"Cyber Law":             {"cyber", "online", "internet", "hacking", "digital", "data protection"},
	"Immigration Law":       {"visa", "immigration", "citizenship", "passport", "foreign"},
}

// metroGroups maps a group key to its members. The key is itself a member.
var metroGroups = map[string][]string{
	"Delhi":     {"New Delhi", "NCR", "Gurgaon", "Noida"},
	"Mumbai":    {"Navi Mumbai", "Thane", "Maharashtra"},
	"Bangalore": {"Bengaluru", "Karnataka"},
	"Chennai":   {"Tamil Nadu"},
	"Hyderabad": {"Telangana", "Secunderabad"},
	"Kolkata":   {"West Bengal"},
}

const defaultRequiredExperience = 3

var requiredExperience = map[Category]int{
	CategoryCriminal:  5,
	CategoryFamily:    3,
	CategoryProperty:  4,
	CategoryConsumer:  2,
	CategoryCorporate: 6,
	CategoryLabour:    4,
	CategoryCyber:     3,
}

// Factor names used as ScoreBreakdown keys.
const (
	FactorSpecialization = "specialization"
	FactorLocation       = "location"
	FactorExperience     = "experience"
	FactorRating         = "rating"
	FactorAvailability   = "availability"
	FactorBudget         = "budget"
)

// Weights are the per-factor multipliers of the total score.
type Weights struct {
	Specialization float64
	Location       float64
	Experience     float64
	Rating         float64
	Availability   float64
}

// DefaultWeights sum to 1.0.
var DefaultWeights = Weights{
	Specialization: 0.40,
	Location:       0.25,
	Experience:     0.15,
	Rating:         0.15,
	Availability:   0.05,
}
