package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusAccepted  AppointmentStatus = "accepted"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "follow_up"
	TypeCheckup      AppointmentType = "checkup"
	TypeEmergency    AppointmentType = "emergency"
)

// Appointment is returned by both the list and detail endpoints; list
// responses fill the *_name fields, detail responses the nested profiles.
type Appointment struct {
	ID                   int64             `json:"id"`
	Patient              *Patient          `json:"patient,omitempty"`
	Doctor               *Doctor           `json:"doctor,omitempty"`
	PatientName          string            `json:"patient_name,omitempty"`
	DoctorName           string            `json:"doctor_name,omitempty"`
	DoctorSpecialization string            `json:"doctor_specialization,omitempty"`
	AppointmentDate      time.Time         `json:"appointment_date"`
	AppointmentType      AppointmentType   `json:"appointment_type"`
	Status               AppointmentStatus `json:"status"`
	Symptoms             string            `json:"symptoms,omitempty"`
	ReasonForVisit       string            `json:"reason_for_visit,omitempty"`
	Notes                string            `json:"notes,omitempty"`
	Prescription         string            `json:"prescription,omitempty"`
	FollowUpDate         *time.Time        `json:"follow_up_date,omitempty"`
	RejectionReason      string            `json:"rejection_reason,omitempty"`
	IsUpcoming           bool              `json:"is_upcoming,omitempty"`
	CreatedAt            time.Time         `json:"created_at,omitempty"`
	UpdatedAt            time.Time         `json:"updated_at,omitempty"`
}

// AppointmentRequest books a new appointment.
type AppointmentRequest struct {
	Doctor          int64           `json:"doctor"`
	AppointmentDate time.Time       `json:"appointment_date"`
	AppointmentType AppointmentType `json:"appointment_type"`
	ReasonForVisit  string          `json:"reason_for_visit"`
	Symptoms        string          `json:"symptoms,omitempty"`
}

// AppointmentUpdate is the doctor/admin-side patch.
type AppointmentUpdate struct {
	Status          AppointmentStatus `json:"status,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Prescription    string            `json:"prescription,omitempty"`
	FollowUpDate    *time.Time        `json:"follow_up_date,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
}

// Rejection is the body of the reject action.
type Rejection struct {
	RejectionReason string `json:"rejection_reason"`
}

// Completion is the body of the complete action.
type Completion struct {
	Notes        string     `json:"notes,omitempty"`
	Prescription string     `json:"prescription,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
}

// Review is a patient's rating of a completed appointment.
type Review struct {
	ID          int64     `json:"id"`
	Appointment int64     `json:"appointment"`
	Patient     int64     `json:"patient,omitempty"`
	Doctor      int64     `json:"doctor,omitempty"`
	PatientName string    `json:"patient_name,omitempty"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ReviewRequest creates a review; Rating is 1..5.
type ReviewRequest struct {
	Appointment int64  `json:"appointment"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
}
