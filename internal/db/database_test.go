package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/auth_service/internal/models"
)

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestDialectorFor(t *testing.T) {
	d, isSQLite := dialectorFor("sqlite://:memory:")
	assert.True(t, isSQLite)
	assert.Equal(t, "sqlite", d.Name())

	d, isSQLite = dialectorFor("postgres://user:pw@localhost:5432/auth?sslmode=disable")
	assert.False(t, isSQLite)
	assert.Equal(t, "postgres", d.Name())
}

func TestOpen_SQLiteFile_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := SQLiteScheme + filepath.Join(t.TempDir(), "auth.db")

	first, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(first))
	require.NoError(t, first.Create(&models.User{Username: "alice", PasswordHash: "x", IsActive: true}).Error)
	require.NoError(t, Close(first))

	second, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(second) })
	require.NoError(t, Migrate(second))

	var u models.User
	require.NoError(t, second.Where("username = ?", "alice").First(&u).Error)
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.IsActive)
	assert.NoError(t, Ping(ctx, second))
}
