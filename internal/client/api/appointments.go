package api

import (
	"context"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

type Appointments struct{ r Requester }

func (a *Appointments) List(ctx context.Context, params AppointmentParams) (*models.List[models.Appointment], error) {
	return get[models.List[models.Appointment]](ctx, a.r, "/appointments/", params)
}

func (a *Appointments) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	return get[models.Appointment](ctx, a.r, path("/appointments/%d/", id), nil)
}

func (a *Appointments) Create(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	return post[models.Appointment](ctx, a.r, "/appointments/", req)
}

func (a *Appointments) Update(ctx context.Context, id int64, upd models.AppointmentUpdate) (*models.Appointment, error) {
	return patch[models.Appointment](ctx, a.r, path("/appointments/%d/", id), upd)
}

func (a *Appointments) Delete(ctx context.Context, id int64) error {
	return a.r.Delete(ctx, path("/appointments/%d/", id))
}

// Accept, Reject and Complete are doctor actions on a pending or accepted
// appointment. The backend answers with the updated appointment.
func (a *Appointments) Accept(ctx context.Context, id int64) (*models.Appointment, error) {
	return post[models.Appointment](ctx, a.r, path("/appointments/%d/accept/", id), nil)
}

func (a *Appointments) Reject(ctx context.Context, id int64, r models.Rejection) (*models.Appointment, error) {
	return post[models.Appointment](ctx, a.r, path("/appointments/%d/reject/", id), r)
}

func (a *Appointments) Complete(ctx context.Context, id int64, c models.Completion) (*models.Appointment, error) {
	return post[models.Appointment](ctx, a.r, path("/appointments/%d/complete/", id), c)
}

// ForDoctor lists the logged-in doctor's appointments.
func (a *Appointments) ForDoctor(ctx context.Context, params AppointmentParams) (*models.List[models.Appointment], error) {
	return get[models.List[models.Appointment]](ctx, a.r, "/appointments/doctor/", params)
}

// ForPatient lists the logged-in patient's appointments.
func (a *Appointments) ForPatient(ctx context.Context, params AppointmentParams) (*models.List[models.Appointment], error) {
	return get[models.List[models.Appointment]](ctx, a.r, "/appointments/patient/", params)
}

func (a *Appointments) Stats(ctx context.Context) (models.Stats, error) {
	s, err := get[models.Stats](ctx, a.r, "/appointments/stats/", nil)
	if err != nil {
		return nil, err
	}
	return *s, nil
}
