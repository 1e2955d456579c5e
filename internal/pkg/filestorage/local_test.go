package filestorage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveReadDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	key, err := store.Save(ctx, "Notes.MD", strings.NewReader("# heading"), 9, "text/markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".md"))

	data, err := store.Read(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "# heading", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Read(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)

	// second delete is a no-op
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = store.Read(ctx, "..")
	assert.Error(t, err)
}
