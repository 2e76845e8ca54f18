package knowledge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babysteps/babysteps/internal/log"
)

func TestLoader_LoadsEntries(t *testing.T) {
	t.Parallel()
	l := NewLoader(filepath.Join("testdata", "food_research.json"), log.NewNop())

	entries, ok := l.Entries()

	require.True(t, ok)
	require.NotEmpty(t, entries)
	assert.Equal(t, "food-001", entries[0].ID)
	assert.Equal(t, "Can babies eat honey?", entries[0].Question)
	assert.Equal(t, "12+ months", entries[0].AgeRange)
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()
	l := NewLoader(filepath.Join(t.TempDir(), "missing.json"), log.NewNop())

	entries, ok := l.Entries()

	assert.False(t, ok)
	assert.Empty(t, entries)
}

func TestLoader_MalformedJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o600))
	l := NewLoader(path, log.NewNop())

	entries, ok := l.Entries()

	assert.False(t, ok)
	assert.Empty(t, entries)
}

func TestLoader_CachesUntilModified(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "one", "question": "q", "answer": "a"}]`), 0o600))
	l := NewLoader(path, log.NewNop())

	first, ok := l.Entries()
	require.True(t, ok)
	require.Len(t, first, 1)

	// Rewrite the file with a bumped mtime; the next read must observe it.
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "one", "question": "q", "answer": "a"},
		{"id": "two", "question": "q2", "answer": "a2"}
	]`), 0o600))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	second, ok := l.Entries()
	require.True(t, ok)
	assert.Len(t, second, 2)
}

func TestLoader_RecoversAfterFileRestored(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "kb.json")
	l := NewLoader(path, log.NewNop())

	_, ok := l.Entries()
	require.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "one", "question": "q", "answer": "a"}]`), 0o600))

	entries, ok := l.Entries()
	require.True(t, ok)
	assert.Len(t, entries, 1)
}
