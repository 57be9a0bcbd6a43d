package auth

import (
	"testing"

	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	u := &models.User{ID: 1, Role: models.RoleDoctor}

	s := reduce(State{}, loginStart{})
	assert.Equal(t, State{Loading: true, Phase: PhaseLoading}, s)

	s = reduce(s, loginSuccess{user: u})
	assert.Equal(t, State{User: u, IsAuthenticated: true, Phase: PhaseAuthenticated}, s)

	s = reduce(s, logout{})
	assert.Equal(t, State{}, s)

	s = reduce(reduce(s, loginStart{}), loginFailure{message: "bad"})
	assert.Equal(t, State{Error: "bad", Phase: PhaseFailed}, s)

	// A new attempt clears the previous error.
	s = reduce(s, loginStart{})
	assert.Empty(t, s.Error)
}

func TestReduce_UpdateUserKeepsAuth(t *testing.T) {
	s := reduce(State{}, loginSuccess{user: &models.User{ID: 1}})
	s = reduce(s, updateUser{user: &models.User{ID: 1, FirstName: "X"}})
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "X", s.User.FirstName)
}

func TestState_Role(t *testing.T) {
	assert.Equal(t, models.Role(""), State{}.Role())
	assert.Equal(t, models.RoleAdmin, State{IsAuthenticated: true, User: &models.User{Role: models.RoleAdmin}}.Role())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "authenticated", PhaseAuthenticated.String())
	assert.Equal(t, "failed", PhaseFailed.String())
}
