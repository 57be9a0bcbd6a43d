package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medbook/internal/client/guard"
	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/dmitrijs2005/medbook/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAlreadyLoggedIn = errors.New("already logged in")

// Login prompts for credentials and authenticates. On success the
// dashboard is shown; a failure is reported through the auth state.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in, use 'logout' first")
		return errAlreadyLoggedIn
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	st, err := a.auth.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", st.User.DisplayName())
	return a.Open(ctx, guard.DashboardPath)
}

// Register collects the sign-up form, creates the account and logs it in.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in, use 'logout' first")
		return errAlreadyLoggedIn
	}

	var reg models.Registration
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter email", &reg.Email},
		{"Enter username", &reg.Username},
		{"Enter first name", &reg.FirstName},
		{"Enter last name", &reg.LastName},
		{"Enter phone number (optional)", &reg.PhoneNumber},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	role, err := getSimpleText(a.reader, "Register as patient or doctor? [patient]", a.out)
	if err != nil {
		return err
	}
	reg.Role = models.Role(role)
	if reg.Role == "" {
		reg.Role = models.RolePatient
	}
	if reg.Role != models.RolePatient && reg.Role != models.RoleDoctor {
		a.notify("Role must be patient or doctor")
		return fmt.Errorf("invalid role %q", role)
	}

	if reg.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if reg.PasswordConfirm, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}
	if reg.Password != reg.PasswordConfirm {
		a.notify("Passwords don't match")
		return errors.New("password mismatch")
	}

	st, err := a.auth.Register(ctx, reg)
	if err != nil {
		return err
	}

	a.printf("Account created. Welcome, %s!\n", st.User.DisplayName())
	return a.Open(ctx, guard.DashboardPath)
}

// Logout ends the session and returns to the home page.
func (a *App) Logout(ctx context.Context) error {
	if _, err := a.auth.Logout(ctx); err != nil {
		a.toast(ctx, err, "Logout failed")
		return err
	}
	a.println("Logged out")
	return a.Open(ctx, "/")
}

// WhoAmI prints the current user and when the access token runs out.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.auth.State()
	if !st.IsAuthenticated {
		a.println("Not logged in")
		return nil
	}

	u := st.User
	a.printf("%s <%s>\nrole: %s\n", u.DisplayName(), u.Email, u.Role)

	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}
	if exp, ok := session.TokenExpiry(token); ok {
		left := time.Until(exp).Round(time.Second)
		if left > 0 {
			a.printf("access token expires in %s\n", left)
		} else {
			a.println("access token expired, it will be refreshed on the next request")
		}
	}
	return nil
}

// EditProfile updates the account's name and contact fields on the server
// and merges the result into the local user record.
func (a *App) EditProfile(ctx context.Context) error {
	st := a.auth.State()
	if !st.IsAuthenticated {
		a.println("Not logged in")
		return nil
	}

	var patch models.UserPatch
	fields := []struct {
		prompt string
		cur    string
		dst    **string
	}{
		{"First name", st.User.FirstName, &patch.FirstName},
		{"Last name", st.User.LastName, &patch.LastName},
		{"Phone number", st.User.PhoneNumber, &patch.PhoneNumber},
		{"Address", st.User.Address, &patch.Address},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (empty keeps it)", f.prompt, f.cur), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = models.String(v)
		}
	}
	if patch == (models.UserPatch{}) {
		a.println("Nothing to change")
		return nil
	}

	if _, err := a.api.Accounts.UpdateProfile(ctx, patch); err != nil {
		a.toast(ctx, err, "Failed to update profile")
		return err
	}
	if _, err := a.auth.UpdateUser(ctx, patch); err != nil {
		a.toast(ctx, err, "Failed to save profile locally")
		return err
	}
	a.println("Profile updated")
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in")
		return nil
	}

	var req models.PasswordChange
	var err error
	if req.OldPassword, err = getPassword(a.reader, "Current password", a.out); err != nil {
		return err
	}
	if req.NewPassword, err = getPassword(a.reader, "New password", a.out); err != nil {
		return err
	}
	if req.NewPasswordConfirm, err = getPassword(a.reader, "Confirm new password", a.out); err != nil {
		return err
	}

	msg, err := a.api.Accounts.ChangePassword(ctx, req)
	if err != nil {
		a.toast(ctx, err, "Failed to change password")
		return err
	}
	if msg.Message != "" {
		a.println(msg.Message)
	} else {
		a.println("Password changed")
	}
	return nil
}
