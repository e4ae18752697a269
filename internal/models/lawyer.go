// internal/models/lawyer.go
package models

import "time"

// LawyerProfile is a directory record as stored and served. Experience and
// ConsultationFee are display strings ("8 years", "₹2500"); the matching engine
// parses them once when a profile enters a ranking call.
type LawyerProfile struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Specialization  string    `json:"specialization" db:"specialization"`
	Location        string    `json:"location" db:"location"`
	Experience      string    `json:"experience" db:"experience"`
	Rating          float64   `json:"rating" db:"rating"`
	ConsultationFee string    `json:"consultationFee" db:"consultation_fee"`
	Bio             string    `json:"bio,omitempty" db:"bio"`
	Languages       []string  `json:"languages,omitempty" db:"languages"`
	Email           string    `json:"email,omitempty" db:"email"`
	Phone           string    `json:"phone,omitempty" db:"phone"`
	Verified        bool      `json:"verified" db:"verified"`
	CreatedAt       time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// LawyerFilter narrows a directory listing. Zero values disable a filter.
type LawyerFilter struct {
	Specialization string  `json:"specialization,omitempty" form:"specialization"`
	Location       string  `json:"location,omitempty" form:"location"`
	MinRating      float64 `json:"minRating,omitempty" form:"minRating"`
	MaxFee         int     `json:"maxFee,omitempty" form:"maxFee"`
}
