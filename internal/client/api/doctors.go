package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

type Doctors struct{ r Requester }

func (d *Doctors) List(ctx context.Context, params DoctorParams) (*models.List[models.Doctor], error) {
	return get[models.List[models.Doctor]](ctx, d.r, "/doctors/", params)
}

func (d *Doctors) Get(ctx context.Context, id int64) (*models.Doctor, error) {
	return get[models.Doctor](ctx, d.r, path("/doctors/%d/", id), nil)
}

func (d *Doctors) Create(ctx context.Context, in models.DoctorInput) (*models.Doctor, error) {
	return post[models.Doctor](ctx, d.r, "/doctors/", in)
}

func (d *Doctors) Update(ctx context.Context, id int64, in models.DoctorInput) (*models.Doctor, error) {
	return patch[models.Doctor](ctx, d.r, path("/doctors/%d/", id), in)
}

func (d *Doctors) Delete(ctx context.Context, id int64) error {
	return d.r.Delete(ctx, path("/doctors/%d/", id))
}

// Profile is the doctor profile of the logged-in doctor.
func (d *Doctors) Profile(ctx context.Context) (*models.Doctor, error) {
	return get[models.Doctor](ctx, d.r, "/doctors/profile/", nil)
}

// Available lists doctors currently accepting appointments.
func (d *Doctors) Available(ctx context.Context, params DoctorParams) (*models.List[models.Doctor], error) {
	return get[models.List[models.Doctor]](ctx, d.r, "/doctors/available/", params)
}

func (d *Doctors) BySpecialization(ctx context.Context, specialization string, params DoctorParams) (*models.List[models.Doctor], error) {
	p := "/doctors/specialization/" + url.PathEscape(specialization) + "/"
	return get[models.List[models.Doctor]](ctx, d.r, p, params)
}

func (d *Doctors) Stats(ctx context.Context) (models.Stats, error) {
	s, err := get[models.Stats](ctx, d.r, "/doctors/stats/", nil)
	if err != nil {
		return nil, err
	}
	return *s, nil
}
