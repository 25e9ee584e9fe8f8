package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, err)
	return store
}

func TestWriteAndRead(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write("agenda.md", "# Agenda\n- opening"))

	content, err := store.Read("agenda.md")
	require.NoError(t, err)
	assert.Equal(t, "# Agenda\n- opening", content)
}

func TestListFilesOnly(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write("one.txt", "1"))
	require.NoError(t, store.Write("two.txt", "2"))
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "subdir"), 0o755))

	names, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one.txt", "two.txt"}, names)
}

func TestListEmptyDirectory(t *testing.T) {
	store := newTestStore(t)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadMissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read("missing.txt")
	require.Error(t, err)
	assert.Equal(t, "File not found: missing.txt", err.Error())
}

func TestEscapeRejected(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{
		"../escape.txt",
		"../../etc/passwd",
		"sub/../../outside.txt",
	} {
		_, err := store.Read(name)
		require.Error(t, err, "expected rejection for %q", name)
		assert.Equal(t, ErrAccessDenied, err.Error(), "filename %q", name)

		err = store.Write(name, "x")
		require.Error(t, err, "expected rejection for %q", name)
		assert.Equal(t, ErrAccessDenied, err.Error(), "filename %q", name)
	}
}

func TestFilenameRequired(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read("")
	assert.Error(t, err)

	err = store.Write("", "content")
	assert.Error(t, err)
}

func TestWriteOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write("plan.txt", "first"))
	require.NoError(t, store.Write("plan.txt", "second"))

	content, err := store.Read("plan.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", content)
}
