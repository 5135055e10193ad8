package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadSkipsNonPublicFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "public:: true\nhello [[b]]")
	writeDoc(t, dir, "b.md", "not public\nhello")

	store, err := NewRepository(dir).Load()
	require.NoError(t, err)
	require.Len(t, store, 1)
	require.Contains(t, store, "a.md")
}

func TestLoadExtractsWikilinkReferencesOnlyToKnownFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "public:: true\nsee [[b]] and [[b]] and [[missing]]")
	writeDoc(t, dir, "b.md", "public:: true\nno links here")

	store, err := NewRepository(dir).Load()
	require.NoError(t, err)
	require.Equal(t, 2, store["a.md"].References["b.md"])
	require.NotContains(t, store["a.md"].References, "missing.md")
}

func TestLoadCountsHyperlinks(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "public:: true\n[one](http://x) and [two](http://y)")

	store, err := NewRepository(dir).Load()
	require.NoError(t, err)
	require.Equal(t, 2, store["a.md"].HyperlinkCount)
}

func TestLoadIgnoresNonMarkdownFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "public:: true\nhello")
	writeDoc(t, dir, "notes.txt", "public:: true\nhello")

	store, err := NewRepository(dir).Load()
	require.NoError(t, err)
	require.Len(t, store, 1)
}
