package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/medbook/internal/client/gateway"
	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/dmitrijs2005/medbook/internal/client/session"
	"github.com/dmitrijs2005/medbook/internal/logging"
)

const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMissingUser      = errors.New("auth response without user")
)

// Authenticator performs the network half of login and registration.
type Authenticator interface {
	Login(ctx context.Context, c models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, r models.Registration) (*models.AuthResponse, error)
}

// SessionStore persists the session the machine restores from.
type SessionStore interface {
	Load(ctx context.Context) (session.Session, error)
	Save(ctx context.Context, s session.Session) error
	SaveUser(ctx context.Context, u *models.User) error
	Clear(ctx context.Context) error
}

// Machine is the single owner of the authentication state. It is safe for
// concurrent use; subscribers are called synchronously after every
// transition, outside the machine's lock.
type Machine struct {
	auth  Authenticator
	store SessionStore
	log   logging.Logger

	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

func NewMachine(a Authenticator, store SessionStore, log logging.Logger) *Machine {
	if log == nil {
		log = logging.Discard()
	}
	return &Machine{
		auth:  a,
		store: store,
		log:   log,
		subs:  make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot(m.state)
}

// Subscribe registers fn to receive every new state. The returned function
// removes the subscription.
func (m *Machine) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Machine) dispatch(ctx context.Context, a action) State {
	m.mu.Lock()
	prev := m.state.Phase
	m.state = reduce(m.state, a)
	next := snapshot(m.state)
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	if prev != next.Phase {
		m.log.Debug(ctx, "auth transition", "from", prev.String(), "to", next.Phase.String())
	}
	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Restore rebuilds the state from the persisted session without touching
// the network. A corrupt session is cleared; a missing one leaves the
// machine idle. Calling Restore again with the same storage yields the same
// state.
func (m *Machine) Restore(ctx context.Context) (State, error) {
	sess, err := m.store.Load(ctx)
	switch {
	case err == nil:
		if exp, ok := sess.AccessExpiry(); ok {
			m.log.Info(ctx, "session restored", "user_id", sess.User.ID, "role", sess.User.Role, "access_expires", exp)
		} else {
			m.log.Info(ctx, "session restored", "user_id", sess.User.ID, "role", sess.User.Role)
		}
		return m.dispatch(ctx, loginSuccess{user: sess.User}), nil

	case errors.Is(err, session.ErrCorruptSession):
		m.log.Warn(ctx, "discarding corrupt session", "error", err)
		if cerr := m.store.Clear(ctx); cerr != nil {
			m.log.Error(ctx, "failed to clear corrupt session", "error", cerr)
		}
		return m.dispatch(ctx, logout{}), nil

	case errors.Is(err, session.ErrNoSession):
		return m.dispatch(ctx, logout{}), nil
	}

	return m.State(), fmt.Errorf("restore session: %w", err)
}

// Login authenticates, persists the issued session and moves to
// authenticated. On failure the state carries a readable message and the
// stored session is left as it was.
func (m *Machine) Login(ctx context.Context, c models.Credentials) (State, error) {
	m.dispatch(ctx, loginStart{})
	resp, err := m.auth.Login(ctx, c)
	return m.finish(ctx, resp, err, msgLoginFailed)
}

// Register signs up and logs the new account in, like Login.
func (m *Machine) Register(ctx context.Context, r models.Registration) (State, error) {
	m.dispatch(ctx, loginStart{})
	resp, err := m.auth.Register(ctx, r)
	return m.finish(ctx, resp, err, msgRegisterFailed)
}

func (m *Machine) finish(ctx context.Context, resp *models.AuthResponse, err error, fallback string) (State, error) {
	if err == nil && (resp == nil || resp.User == nil) {
		err = ErrMissingUser
	}
	if err != nil {
		return m.dispatch(ctx, loginFailure{message: gateway.MessageFrom(err, fallback)}), err
	}

	user := cloneUser(resp.User)
	sess := session.Session{AccessToken: resp.Access, RefreshToken: resp.Refresh, User: user}
	if err := m.store.Save(ctx, sess); err != nil {
		return m.dispatch(ctx, loginFailure{message: fallback}), fmt.Errorf("save session: %w", err)
	}

	m.log.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role)
	return m.dispatch(ctx, loginSuccess{user: user}), nil
}

// Logout clears the stored session and returns to idle. The state is reset
// even when clearing storage fails.
func (m *Machine) Logout(ctx context.Context) (State, error) {
	err := m.store.Clear(ctx)
	st := m.dispatch(ctx, logout{})
	if err != nil {
		return st, fmt.Errorf("clear session: %w", err)
	}
	return st, nil
}

// Expire drops to idle after the gateway has already cleared the session.
func (m *Machine) Expire(ctx context.Context) State {
	m.log.Info(ctx, "session expired")
	return m.dispatch(ctx, logout{})
}

// UpdateUser merges p into the current user and persists the result. The
// role and authentication status never change.
func (m *Machine) UpdateUser(ctx context.Context, p models.UserPatch) (State, error) {
	cur := m.State()
	if !cur.IsAuthenticated || cur.User == nil {
		return cur, ErrNotAuthenticated
	}

	merged := cur.User.Merge(p)
	if err := m.store.SaveUser(ctx, &merged); err != nil {
		return cur, fmt.Errorf("save user: %w", err)
	}
	return m.dispatch(ctx, updateUser{user: &merged}), nil
}

func snapshot(s State) State {
	s.User = cloneUser(s.User)
	return s
}
