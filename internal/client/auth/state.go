// Package auth owns the client's authentication state. State changes go
// through a pure reducer; the Machine wires the reducer to the backend
// calls, the persisted session and any subscribers.
package auth

import "github.com/dmitrijs2005/medbook/internal/client/models"

// Phase is the coarse lifecycle position of the auth state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseAuthenticated
	// PhaseFailed is idle with an error message from the last attempt.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseFailed:
		return "failed"
	}
	return "idle"
}

// State is a snapshot of the authentication state. User is never shared
// with the machine's internal copy.
type State struct {
	User            *models.User
	IsAuthenticated bool
	Loading         bool
	Error           string
	Phase           Phase
}

// Role returns the current user's role, or "" when unauthenticated.
func (s State) Role() models.Role {
	if !s.IsAuthenticated || s.User == nil {
		return ""
	}
	return s.User.Role
}

type action interface{ isAction() }

type (
	loginStart   struct{}
	loginSuccess struct{ user *models.User }
	loginFailure struct{ message string }
	logout       struct{}
	updateUser   struct{ user *models.User }
)

func (loginStart) isAction()   {}
func (loginSuccess) isAction() {}
func (loginFailure) isAction() {}
func (logout) isAction()       {}
func (updateUser) isAction()   {}

func reduce(s State, a action) State {
	switch a := a.(type) {
	case loginStart:
		s.Loading = true
		s.Error = ""
		s.Phase = PhaseLoading
	case loginSuccess:
		s = State{User: a.user, IsAuthenticated: true, Phase: PhaseAuthenticated}
	case loginFailure:
		s = State{Error: a.message, Phase: PhaseFailed}
	case logout:
		s = State{Phase: PhaseIdle}
	case updateUser:
		s.User = a.user
	}
	return s
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
