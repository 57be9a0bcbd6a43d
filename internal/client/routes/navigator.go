package routes

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/medbook/internal/client/auth"
	"github.com/dmitrijs2005/medbook/internal/client/guard"
)

const maxRedirects = 4

var ErrRedirectLoop = errors.New("too many redirects")

// Resolution is where a navigation ended up.
type Resolution struct {
	Match
	Requested string
	// Redirects lists the guard redirects followed on the way.
	Redirects []string
}

// Navigator resolves paths against the table and the current auth state
// and remembers the current location.
type Navigator struct {
	table *Table
	state func() auth.State

	mu      sync.Mutex
	current Resolution
}

// NewNavigator starts at the fallback route. state is read on every
// navigation.
func NewNavigator(t *Table, state func() auth.State) *Navigator {
	return &Navigator{table: t, state: state, current: Resolution{Match: t.Match(t.fallback.Pattern)}}
}

// Go navigates to path, following guard redirects.
func (n *Navigator) Go(path string) (Resolution, error) {
	res := Resolution{Requested: path}
	st := n.state()

	for range maxRedirects + 1 {
		m := n.table.Match(path)
		d := m.Route.Decide(st)
		if d.Allowed() {
			res.Match = m
			n.mu.Lock()
			n.current = res
			n.mu.Unlock()
			return res, nil
		}
		res.Redirects = append(res.Redirects, d.Redirect)
		path = d.Redirect
	}
	return res, fmt.Errorf("navigate %s: %w", res.Requested, ErrRedirectLoop)
}

// ForceLogin moves to the login page without consulting the guard. Used
// when the session ends underneath the user.
func (n *Navigator) ForceLogin() Resolution {
	res := Resolution{Match: n.table.Match(guard.LoginPath), Requested: guard.LoginPath}
	n.mu.Lock()
	n.current = res
	n.mu.Unlock()
	return res
}

// Current returns the last resolved location.
func (n *Navigator) Current() Resolution {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
