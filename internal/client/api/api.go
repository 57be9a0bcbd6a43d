// Package api binds the backend's REST endpoints. Each method is exactly
// one request through a Requester (normally *gateway.Client), so session
// refresh and error mapping stay in one place.
package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

// Requester sends JSON requests relative to the API base URL.
type Requester interface {
	Get(ctx context.Context, path string, params, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// ListParams are the pagination, search and ordering parameters every list
// endpoint accepts. Embedded in the resource-specific parameter structs.
type ListParams struct {
	Page     int    `url:"page,omitempty"`
	PageSize int    `url:"page_size,omitempty"`
	Search   string `url:"search,omitempty"`
	Ordering string `url:"ordering,omitempty"`
}

type PatientParams struct {
	ListParams
	Gender     string `url:"gender,omitempty"`
	BloodGroup string `url:"blood_group,omitempty"`
}

type DoctorParams struct {
	ListParams
	Specialization string `url:"specialization,omitempty"`
	IsAvailable    *bool  `url:"is_available,omitempty"`
}

type AppointmentParams struct {
	ListParams
	Status               models.AppointmentStatus `url:"status,omitempty"`
	AppointmentType      models.AppointmentType   `url:"appointment_type,omitempty"`
	DoctorSpecialization string                   `url:"doctor__specialization,omitempty"`
}

type ReviewParams struct {
	ListParams
	Rating int `url:"rating,omitempty"`
}

type UserParams struct {
	ListParams
	Role     models.Role `url:"role,omitempty"`
	IsActive *bool       `url:"is_active,omitempty"`
}

// Service groups the resource bindings.
type Service struct {
	Accounts     *Accounts
	Patients     *Patients
	Doctors      *Doctors
	Appointments *Appointments
	Reviews      *Reviews
	Chat         *Chat
	Users        *Users
}

func New(r Requester) *Service {
	return &Service{
		Accounts:     &Accounts{r: r},
		Patients:     &Patients{r: r},
		Doctors:      &Doctors{r: r},
		Appointments: &Appointments{r: r},
		Reviews:      &Reviews{r: r},
		Chat:         &Chat{r: r},
		Users:        &Users{r: r},
	}
}

func get[T any](ctx context.Context, r Requester, path string, params any) (*T, error) {
	var out T
	if err := r.Get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func post[T any](ctx context.Context, r Requester, path string, body any) (*T, error) {
	var out T
	if err := r.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func patch[T any](ctx context.Context, r Requester, path string, body any) (*T, error) {
	var out T
	if err := r.Patch(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// path fills the single numeric id of an endpoint template.
func path(format string, id int64) string { return fmt.Sprintf(format, id) }
