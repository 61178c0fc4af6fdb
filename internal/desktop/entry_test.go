package desktop

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkramer/instapp/internal/domain"
)

func TestRenderFull(t *testing.T) {
	entry := &domain.DesktopEntry{
		Name:       "clion",
		ExecPath:   "/opt/clion/bin/clion",
		Icon:       "/opt/clion/bin/clion.svg",
		Comment:    "C/C++ IDE",
		Categories: "Development;IDE;",
		Terminal:   false,
	}

	expected := `[Desktop Entry]
Version=1.0
Type=Application
Name=clion
Icon=/opt/clion/bin/clion.svg
Exec=/opt/clion/bin/clion %f
Comment=C/C++ IDE
Categories=Development;IDE;
Terminal=false
StartupNotify=true
`
	assert.Equal(t, expected, Render(entry))
}

func TestRenderDefaults(t *testing.T) {
	entry := &domain.DesktopEntry{
		Name:     "tool",
		ExecPath: "/opt/tool/tool",
		Terminal: true,
	}

	out := Render(entry)
	assert.NotContains(t, out, "Icon=")
	assert.NotContains(t, out, "Comment=")
	assert.Contains(t, out, "Categories=Application;\n")
	assert.Contains(t, out, "Terminal=true\n")
	assert.Contains(t, out, "Exec=/opt/tool/tool %f\n")
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "applications")
	entry := &domain.DesktopEntry{Name: "tool", ExecPath: "/opt/tool/tool"}

	path, err := Write(entry, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tool.desktop"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render(entry), string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}
