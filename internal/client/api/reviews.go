package api

import (
	"context"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

type Reviews struct{ r Requester }

func (rv *Reviews) List(ctx context.Context, params ReviewParams) (*models.List[models.Review], error) {
	return get[models.List[models.Review]](ctx, rv.r, "/appointments/reviews/", params)
}

func (rv *Reviews) Create(ctx context.Context, req models.ReviewRequest) (*models.Review, error) {
	return post[models.Review](ctx, rv.r, "/appointments/reviews/", req)
}

func (rv *Reviews) ForDoctor(ctx context.Context, doctorID int64, params ReviewParams) (*models.List[models.Review], error) {
	return get[models.List[models.Review]](ctx, rv.r, path("/appointments/reviews/doctor/%d/", doctorID), params)
}
