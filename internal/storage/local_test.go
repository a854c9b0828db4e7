package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	root := t.TempDir()
	base := filepath.Join(root, "uploads")
	store, err := NewLocalStorage(Config{BasePath: base, BaseURL: "http://localhost:4000/api/v1/files"})
	require.NoError(t, err)
	return store, root
}

func TestLocalStorage_SaveGetRoundTrip(t *testing.T) {
	store, _ := newTestStorage(t)
	ctx := context.Background()

	content := "hello uploads"
	require.NoError(t, store.Save(ctx, "uploads/u1/photo.jpg", strings.NewReader(content), "image/jpeg"))

	exists, err := store.Exists(ctx, "uploads/u1/photo.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.Get(ctx, "uploads/u1/photo.jpg")
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	size, err := store.GetSize(ctx, "uploads/u1/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
}

func TestLocalStorage_RejectsPathsOutsideRoot(t *testing.T) {
	store, root := newTestStorage(t)
	ctx := context.Background()

	// A file next to the storage root must stay unreachable.
	secret := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("session-secret"), 0644))

	for _, path := range []string{
		"../secret.txt",
		"uploads/../../secret.txt",
		"..",
		"/../secret.txt",
	} {
		_, err := store.Get(ctx, path)
		assert.Error(t, err, "path %q", path)

		exists, err := store.Exists(ctx, path)
		require.NoError(t, err)
		assert.False(t, exists, "path %q", path)

		assert.Error(t, store.Save(ctx, path, strings.NewReader("x"), "text/plain"), "path %q", path)
		assert.Error(t, store.Delete(ctx, path), "path %q", path)
	}

	// The escape attempt must not have touched the file.
	data, err := os.ReadFile(secret)
	require.NoError(t, err)
	assert.Equal(t, "session-secret", string(data))
}

func TestLocalStorage_DeleteMissingIsNoError(t *testing.T) {
	store, _ := newTestStorage(t)
	assert.NoError(t, store.Delete(context.Background(), "uploads/nope.jpg"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	store, _ := newTestStorage(t)

	url, err := store.GetURL(context.Background(), "uploads/u1/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/api/v1/files/uploads/u1/photo.jpg", url)
}
