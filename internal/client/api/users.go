package api

import (
	"context"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

// Users is the admin-only account management surface.
type Users struct{ r Requester }

func (u *Users) List(ctx context.Context, params UserParams) (*models.List[models.User], error) {
	return get[models.List[models.User]](ctx, u.r, "/accounts/users/", params)
}

func (u *Users) Get(ctx context.Context, id int64) (*models.User, error) {
	return get[models.User](ctx, u.r, path("/accounts/users/%d/", id), nil)
}

func (u *Users) Update(ctx context.Context, id int64, p models.UserPatch) (*models.User, error) {
	return patch[models.User](ctx, u.r, path("/accounts/users/%d/", id), p)
}

func (u *Users) Delete(ctx context.Context, id int64) error {
	return u.r.Delete(ctx, path("/accounts/users/%d/", id))
}

func (u *Users) Stats(ctx context.Context) (models.Stats, error) {
	s, err := get[models.Stats](ctx, u.r, "/accounts/stats/", nil)
	if err != nil {
		return nil, err
	}
	return *s, nil
}
