package models

import "time"

// Doctor is a doctor profile. Decimal fields (fee, rating) arrive as strings.
type Doctor struct {
	ID                    int64     `json:"id"`
	User                  *User     `json:"user,omitempty"`
	UserName              string    `json:"user_name,omitempty"`
	UserEmail             string    `json:"user_email,omitempty"`
	Specialization        string    `json:"specialization,omitempty"`
	SpecializationDisplay string    `json:"specialization_display,omitempty"`
	LicenseNumber         string    `json:"license_number,omitempty"`
	ExperienceYears       int       `json:"experience_years,omitempty"`
	Education             string    `json:"education,omitempty"`
	Bio                   string    `json:"bio,omitempty"`
	ConsultationFee       string    `json:"consultation_fee,omitempty"`
	AvailableFrom         string    `json:"available_from,omitempty"`
	AvailableTo           string    `json:"available_to,omitempty"`
	IsAvailable           bool      `json:"is_available"`
	HospitalAffiliation   string    `json:"hospital_affiliation,omitempty"`
	LanguagesSpoken       string    `json:"languages_spoken,omitempty"`
	Rating                string    `json:"rating,omitempty"`
	TotalReviews          int       `json:"total_reviews,omitempty"`
	CreatedAt             time.Time `json:"created_at,omitempty"`
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
}

// Name returns the doctor's display name from whichever field is populated.
func (d Doctor) Name() string {
	if d.UserName != "" {
		return d.UserName
	}
	return d.User.DisplayName()
}

// DoctorInput is the writable subset of Doctor.
type DoctorInput struct {
	Specialization      string `json:"specialization,omitempty"`
	LicenseNumber       string `json:"license_number,omitempty"`
	ExperienceYears     *int   `json:"experience_years,omitempty"`
	Education           string `json:"education,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	ConsultationFee     string `json:"consultation_fee,omitempty"`
	AvailableFrom       string `json:"available_from,omitempty"`
	AvailableTo         string `json:"available_to,omitempty"`
	IsAvailable         *bool  `json:"is_available,omitempty"`
	HospitalAffiliation string `json:"hospital_affiliation,omitempty"`
	LanguagesSpoken     string `json:"languages_spoken,omitempty"`
}
