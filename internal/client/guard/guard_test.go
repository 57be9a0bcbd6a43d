package guard

import (
	"testing"

	"github.com/dmitrijs2005/medbook/internal/client/auth"
	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func authed(r models.Role) auth.State {
	return auth.State{IsAuthenticated: true, User: &models.User{ID: 1, Role: r}, Phase: auth.PhaseAuthenticated}
}

func TestCanAccess(t *testing.T) {
	assert.True(t, CanAccess(models.RolePatient, nil))
	assert.True(t, CanAccess(models.RoleDoctor, []models.Role{models.RolePatient, models.RoleDoctor}))
	assert.False(t, CanAccess(models.RolePatient, []models.Role{models.RoleAdmin}))
	assert.False(t, CanAccess("", []models.Role{models.RoleAdmin}))
}

func TestProtected(t *testing.T) {
	adminOnly := []models.Role{models.RoleAdmin}

	tests := []struct {
		name     string
		state    auth.State
		required []models.Role
		want     Decision
	}{
		{"anonymous to gated page", auth.State{}, adminOnly, Decision{Redirect: LoginPath}},
		{"anonymous to any-role page", auth.State{}, nil, Decision{Redirect: LoginPath}},
		{"failed login is anonymous", auth.State{Error: "x", Phase: auth.PhaseFailed}, nil, Decision{Redirect: LoginPath}},
		{"patient to admin page", authed(models.RolePatient), adminOnly, Decision{Redirect: DashboardPath}},
		{"admin to admin page", authed(models.RoleAdmin), adminOnly, Render},
		{"doctor to any-role page", authed(models.RoleDoctor), nil, Render},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Protected(tt.state, tt.required)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Redirect == "", got.Allowed())
		})
	}
}

func TestPublic(t *testing.T) {
	assert.Equal(t, Render, Public(auth.State{}))
	assert.Equal(t, Decision{Redirect: DashboardPath}, Public(authed(models.RolePatient)))
}
