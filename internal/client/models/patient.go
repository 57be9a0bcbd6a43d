package models

import "time"

// Patient is the patient profile attached to a patient account.
type Patient struct {
	ID                    int64     `json:"id"`
	User                  *User     `json:"user,omitempty"`
	UserName              string    `json:"user_name,omitempty"`
	UserEmail             string    `json:"user_email,omitempty"`
	Gender                string    `json:"gender,omitempty"`
	BloodGroup            string    `json:"blood_group,omitempty"`
	Height                *float64  `json:"height,omitempty"`
	Weight                *float64  `json:"weight,omitempty"`
	BMI                   *float64  `json:"bmi,omitempty"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	MedicalHistory        string    `json:"medical_history,omitempty"`
	CurrentMedications    string    `json:"current_medications,omitempty"`
	Allergies             string    `json:"allergies,omitempty"`
	Symptoms              string    `json:"symptoms,omitempty"`
	Problems              string    `json:"problems,omitempty"`
	InsuranceNumber       string    `json:"insurance_number,omitempty"`
	CreatedAt             time.Time `json:"created_at,omitempty"`
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
}

// PatientInput is the writable subset of Patient.
type PatientInput struct {
	Gender                string   `json:"gender,omitempty"`
	BloodGroup            string   `json:"blood_group,omitempty"`
	Height                *float64 `json:"height,omitempty"`
	Weight                *float64 `json:"weight,omitempty"`
	EmergencyContactName  string   `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string   `json:"emergency_contact_phone,omitempty"`
	MedicalHistory        string   `json:"medical_history,omitempty"`
	CurrentMedications    string   `json:"current_medications,omitempty"`
	Allergies             string   `json:"allergies,omitempty"`
	Symptoms              string   `json:"symptoms,omitempty"`
	Problems              string   `json:"problems,omitempty"`
	InsuranceNumber       string   `json:"insurance_number,omitempty"`
}
