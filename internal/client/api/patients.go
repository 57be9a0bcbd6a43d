package api

import (
	"context"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

type Patients struct{ r Requester }

func (p *Patients) List(ctx context.Context, params PatientParams) (*models.List[models.Patient], error) {
	return get[models.List[models.Patient]](ctx, p.r, "/patients/", params)
}

func (p *Patients) Get(ctx context.Context, id int64) (*models.Patient, error) {
	return get[models.Patient](ctx, p.r, path("/patients/%d/", id), nil)
}

func (p *Patients) Create(ctx context.Context, in models.PatientInput) (*models.Patient, error) {
	return post[models.Patient](ctx, p.r, "/patients/", in)
}

func (p *Patients) Update(ctx context.Context, id int64, in models.PatientInput) (*models.Patient, error) {
	return patch[models.Patient](ctx, p.r, path("/patients/%d/", id), in)
}

func (p *Patients) Delete(ctx context.Context, id int64) error {
	return p.r.Delete(ctx, path("/patients/%d/", id))
}

// Profile is the patient profile of the logged-in patient.
func (p *Patients) Profile(ctx context.Context) (*models.Patient, error) {
	return get[models.Patient](ctx, p.r, "/patients/profile/", nil)
}

func (p *Patients) Stats(ctx context.Context) (models.Stats, error) {
	s, err := get[models.Stats](ctx, p.r, "/patients/stats/", nil)
	if err != nil {
		return nil, err
	}
	return *s, nil
}
