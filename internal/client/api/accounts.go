package api

import (
	"context"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

// Accounts covers login, registration and the caller's own profile.
type Accounts struct{ r Requester }

func (a *Accounts) Login(ctx context.Context, c models.Credentials) (*models.AuthResponse, error) {
	return post[models.AuthResponse](ctx, a.r, "/accounts/login/", c)
}

func (a *Accounts) Register(ctx context.Context, reg models.Registration) (*models.AuthResponse, error) {
	return post[models.AuthResponse](ctx, a.r, "/accounts/register/", reg)
}

func (a *Accounts) Profile(ctx context.Context) (*models.User, error) {
	return get[models.User](ctx, a.r, "/accounts/profile/", nil)
}

func (a *Accounts) UpdateProfile(ctx context.Context, p models.UserPatch) (*models.User, error) {
	return patch[models.User](ctx, a.r, "/accounts/profile/", p)
}

func (a *Accounts) ChangePassword(ctx context.Context, p models.PasswordChange) (*models.Message, error) {
	return post[models.Message](ctx, a.r, "/accounts/change-password/", p)
}
