package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkramer/instapp/internal/ui"
)

func testLogger() *ui.Logger {
	buf := &bytes.Buffer{}
	return &ui.Logger{Out: buf, Err: buf}
}

func writeExec(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!binary"), mode))
}

func TestFindExecutables(t *testing.T) {
	dir := t.TempDir()
	writeExec(t, filepath.Join(dir, "bin", "app"), 0755)
	writeExec(t, filepath.Join(dir, "bin", "helper"), 0755)
	writeExec(t, filepath.Join(dir, "lib", "libapp.so"), 0755)
	writeExec(t, filepath.Join(dir, "run.sh"), 0755)
	writeExec(t, filepath.Join(dir, ".hidden"), 0755)
	writeExec(t, filepath.Join(dir, "README.md"), 0644)
	writeExec(t, filepath.Join(dir, "data.bin"), 0644)

	found := FindExecutables(dir, DefaultLimit, testLogger())

	var names []string
	for _, path := range found {
		rel, err := filepath.Rel(dir, path)
		require.NoError(t, err)
		names = append(names, rel)
	}

	assert.ElementsMatch(t, []string{
		filepath.Join("bin", "app"),
		filepath.Join("bin", "helper"),
	}, names)
}

func TestFindExecutablesCap(t *testing.T) {
	dir := t.TempDir()
	writeExec(t, filepath.Join(dir, "a"), 0755)
	writeExec(t, filepath.Join(dir, "b"), 0755)
	writeExec(t, filepath.Join(dir, "c"), 0755)

	found := FindExecutables(dir, 1, testLogger())
	assert.Len(t, found, 1)

	found = FindExecutables(dir, 2, testLogger())
	assert.Len(t, found, 2)
}

func TestFindExecutablesEmptyTree(t *testing.T) {
	found := FindExecutables(t.TempDir(), DefaultLimit, testLogger())
	assert.Empty(t, found)
}

func TestFindIconPriority(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "share", "pixmaps"), 0755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "icon.png"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "share", "pixmaps", "app.png"), nil, 0644))

	icon, ok := FindIcon(dir, "app")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "share", "pixmaps", "app.png"), icon)

	// An app-specific vector icon under bin/ outranks everything.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin", "app.svg"), nil, 0644))
	icon, ok = FindIcon(dir, "app")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "bin", "app.svg"), icon)
}

func TestFindIconNone(t *testing.T) {
	_, ok := FindIcon(t.TempDir(), "app")
	assert.False(t, ok)
}
