package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_AppliesMigrationsIdempotently(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	first, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, first.SetItems(ctx, map[string]string{"k": "v"}))
	require.NoError(t, first.Close())

	second, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "data must survive a reopen")
	assert.Equal(t, "v", v)
}

func TestGetItem_Missing(t *testing.T) {
	s := openStore(t)

	v, ok, err := s.GetItem(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetItems_Upserts(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetItems(ctx, map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, s.SetItems(ctx, map[string]string{"a": "3"}))

	v, ok, err := s.GetItem(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", v)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestRemoveItems_IsIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetItems(ctx, map[string]string{"a": "1", "b": "2", "c": "3"}))
	require.NoError(t, s.RemoveItems(ctx, "a", "b", "missing"))
	require.NoError(t, s.RemoveItems(ctx, "a"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, keys)
}

func TestSetItems_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO storage").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	s := NewSQLiteStore(db)
	err = s.SetItems(context.Background(), map[string]string{"access_token": "A"})
	require.ErrorContains(t, err, "failed to set storage[access_token]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetItem_ErrorWrapped(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	s := NewSQLiteStore(db)
	require.NoError(t, db.Close())

	_, _, err = s.GetItem(context.Background(), "k")
	require.ErrorContains(t, err, "failed to get storage[k]")
}
