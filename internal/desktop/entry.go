package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkramer/instapp/internal/domain"
)

// Render produces the launcher file content. Key order is fixed; blank
// icon and comment lines are omitted and empty categories fall back to
// "Application;".
func Render(entry *domain.DesktopEntry) string {
	var b strings.Builder

	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Version=1.0\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", entry.Name)

	if entry.Icon != "" {
		fmt.Fprintf(&b, "Icon=%s\n", entry.Icon)
	}

	fmt.Fprintf(&b, "Exec=%s %%f\n", entry.ExecPath)

	if entry.Comment != "" {
		fmt.Fprintf(&b, "Comment=%s\n", entry.Comment)
	}

	categories := entry.Categories
	if categories == "" {
		categories = "Application;"
	}
	fmt.Fprintf(&b, "Categories=%s\n", categories)

	fmt.Fprintf(&b, "Terminal=%t\n", entry.Terminal)
	b.WriteString("StartupNotify=true\n")

	return b.String()
}

// Write renders entry into dir/<name>.desktop, creating dir as needed.
// The file is owner read/write only.
func Write(entry *domain.DesktopEntry, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, entry.Name+".desktop")
	if err := os.WriteFile(path, []byte(Render(entry)), 0600); err != nil {
		return "", err
	}
	// WriteFile only applies the mode on create; clamp pre-existing files too.
	if err := os.Chmod(path, 0600); err != nil {
		return "", err
	}

	return path, nil
}
