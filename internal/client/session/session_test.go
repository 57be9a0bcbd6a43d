package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/dmitrijs2005/medbook/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: 3, Email: "pat@example.org", FirstName: "Pat", Role: models.RolePatient}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryBackend())

	in := Session{AccessToken: "A1", RefreshToken: "R1", User: testUser()}
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_LoadMissingEntryIsNoSession(t *testing.T) {
	ctx := context.Background()

	for _, missing := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		t.Run(missing, func(t *testing.T) {
			b := NewMemoryBackend()
			s := NewStore(b)
			require.NoError(t, s.Save(ctx, Session{AccessToken: "A", RefreshToken: "R", User: testUser()}))
			require.NoError(t, b.RemoveItems(ctx, missing))

			_, err := s.Load(ctx)
			require.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestStore_LoadCorruptUser(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.SetItems(ctx, map[string]string{
		KeyAccessToken:  "A",
		KeyRefreshToken: "R",
		KeyUser:         "{not json",
	}))

	_, err := NewStore(b).Load(ctx)
	require.ErrorIs(t, err, ErrCorruptSession)

	require.NoError(t, b.SetItems(ctx, map[string]string{KeyUser: "null"}))
	_, err = NewStore(b).Load(ctx)
	require.ErrorIs(t, err, ErrCorruptSession)
}

func TestStore_TokenAccessorsAndClear(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s := NewStore(b)

	tok, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.Save(ctx, Session{AccessToken: "A", RefreshToken: "R", User: testUser()}))
	require.NoError(t, s.SetAccessToken(ctx, "A2"))
	require.NoError(t, s.SetRefreshToken(ctx, "R2"))

	tok, err = s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", tok)
	tok, err = s.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R2", tok)

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 0, b.Len())
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SaveUserReplacesRecord(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryBackend())
	require.NoError(t, s.Save(ctx, Session{AccessToken: "A", RefreshToken: "R", User: testUser()}))

	u := testUser()
	u.FirstName = "Patricia"
	require.NoError(t, s.SaveUser(ctx, u))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Patricia", out.User.FirstName)
	assert.Equal(t, "A", out.AccessToken)
}

func TestStore_SaveRequiresUser(t *testing.T) {
	err := NewStore(NewMemoryBackend()).Save(context.Background(), Session{AccessToken: "A"})
	require.Error(t, err)
}

func TestStore_WithSQLiteBackendSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	db, err := storage.Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewStore(db).Save(ctx, Session{AccessToken: "A", RefreshToken: "R", User: testUser()}))
	require.NoError(t, db.Close())

	db, err = storage.Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	out, err := NewStore(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pat@example.org", out.User.Email)
	assert.Equal(t, models.RolePatient, out.User.Role)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":     exp.Unix(),
		"user_id": 3,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	got, ok := Session{AccessToken: signed}.AccessExpiry()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("opaque-token")
	assert.False(t, ok)
	_, ok = TokenExpiry("")
	assert.False(t, ok)
}
