// Package guard decides whether the current auth state may see a page.
// CanAccess is the only role policy; everything else builds on it.
package guard

import (
	"slices"

	"github.com/dmitrijs2005/medbook/internal/client/auth"
	"github.com/dmitrijs2005/medbook/internal/client/models"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Decision is the outcome of a guard: render the page, or go to Redirect.
type Decision struct {
	Redirect string
}

var Render = Decision{}

// Allowed reports whether the page may be rendered.
func (d Decision) Allowed() bool { return d.Redirect == "" }

func redirect(path string) Decision { return Decision{Redirect: path} }

// CanAccess reports whether role satisfies required. An empty required
// list admits every role.
func CanAccess(role models.Role, required []models.Role) bool {
	return len(required) == 0 || slices.Contains(required, role)
}

// Protected gates a page that needs a logged-in user with one of required.
func Protected(s auth.State, required []models.Role) Decision {
	if !s.IsAuthenticated {
		return redirect(LoginPath)
	}
	if !CanAccess(s.Role(), required) {
		return redirect(DashboardPath)
	}
	return Render
}

// Public gates entry pages (login, register): logged-in users are sent to
// the dashboard.
func Public(s auth.State) Decision {
	if s.IsAuthenticated {
		return redirect(DashboardPath)
	}
	return Render
}
