package credstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside-go/credstore"
)

func newFileStore(t *testing.T) (*credstore.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session", "token")
	store, err := credstore.NewFileStore(path)
	require.NoError(t, err)
	return store, path
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, path := newFileStore(t)

	// Empty slot reads as empty string, not an error.
	value, err := store.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, value)

	require.NoError(t, store.Set(ctx, "tok-1"))

	value, err = store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", value)

	// Token files hold live credentials.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, _ := newFileStore(t)

	require.NoError(t, store.Set(ctx, "tok-1"))
	require.NoError(t, store.Set(ctx, "tok-2"))

	value, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", value)
}

func TestFileStoreClearIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newFileStore(t)

	require.NoError(t, store.Set(ctx, "tok-1"))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	value, err := store.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, value)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	store, path := newFileStore(t)
	require.NoError(t, store.Set(ctx, "tok-1"))

	reopened, err := credstore.NewFileStore(path)
	require.NoError(t, err)

	value, err := reopened.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", value)
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	_, err := credstore.NewFileStore("")
	require.Error(t, err)
}
