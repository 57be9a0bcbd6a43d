// Package session is the persisted login state of the client: the access
// token, the refresh token and the user record. The three entries live or
// die together; if any of them is missing there is no session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// Storage keys.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrCorruptSession = errors.New("corrupt session data")
)

// Backend is the key/value persistence behind a Store.
type Backend interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItems(ctx context.Context, items map[string]string) error
	RemoveItems(ctx context.Context, keys ...string) error
}

// Session is the bundle of credentials and identity of a logged-in client.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// AccessExpiry reads the exp claim of the access token without verifying
// the signature. ok is false when the token is not a JWT or has no exp.
func (s Session) AccessExpiry() (exp time.Time, ok bool) {
	return TokenExpiry(s.AccessToken)
}

// TokenExpiry extracts the unverified exp claim of a JWT.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Store reads and writes a Session through a Backend. It is safe for
// concurrent use when the Backend is; concurrent writers are last-writer-wins.
type Store struct {
	backend Backend
}

func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Load returns the persisted session. It returns ErrNoSession when any of
// the three entries is absent and ErrCorruptSession when the user record
// cannot be decoded.
func (s *Store) Load(ctx context.Context) (Session, error) {
	access, okAccess, err := s.backend.GetItem(ctx, KeyAccessToken)
	if err != nil {
		return Session{}, err
	}
	refresh, okRefresh, err := s.backend.GetItem(ctx, KeyRefreshToken)
	if err != nil {
		return Session{}, err
	}
	raw, okUser, err := s.backend.GetItem(ctx, KeyUser)
	if err != nil {
		return Session{}, err
	}
	if !okAccess || !okRefresh || !okUser || access == "" {
		return Session{}, ErrNoSession
	}

	var user *models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if user == nil {
		return Session{}, fmt.Errorf("%w: null user", ErrCorruptSession)
	}

	return Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Save writes all three entries in a single backend call.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if sess.User == nil {
		return errors.New("session: save without user")
	}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	return s.backend.SetItems(ctx, map[string]string{
		KeyAccessToken:  sess.AccessToken,
		KeyRefreshToken: sess.RefreshToken,
		KeyUser:         string(raw),
	})
}

// SaveUser replaces the stored user record.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	return s.backend.SetItems(ctx, map[string]string{KeyUser: string(raw)})
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, _, err := s.backend.GetItem(ctx, KeyAccessToken)
	return v, err
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	v, _, err := s.backend.GetItem(ctx, KeyRefreshToken)
	return v, err
}

func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.backend.SetItems(ctx, map[string]string{KeyAccessToken: token})
}

func (s *Store) SetRefreshToken(ctx context.Context, token string) error {
	return s.backend.SetItems(ctx, map[string]string{KeyRefreshToken: token})
}

// Clear removes every session entry.
func (s *Store) Clear(ctx context.Context) error {
	return s.backend.RemoveItems(ctx, KeyAccessToken, KeyRefreshToken, KeyUser)
}
