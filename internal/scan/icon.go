package scan

import (
	"os"
	"path/filepath"
)

// FindIcon probes conventional icon locations under the install root and
// returns the first hit. App-specific paths win over generic ones, vector
// over raster.
func FindIcon(installDir, appName string) (string, bool) {
	patterns := []string{
		filepath.Join("bin", appName+".svg"),
		filepath.Join("bin", appName+".png"),
		filepath.Join("share", "icons", appName+".svg"),
		filepath.Join("share", "icons", appName+".png"),
		filepath.Join("share", "pixmaps", appName+".svg"),
		filepath.Join("share", "pixmaps", appName+".png"),
		"icon.svg",
		"icon.png",
		appName + ".svg",
		appName + ".png",
	}

	for _, pattern := range patterns {
		path := filepath.Join(installDir, pattern)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	return "", false
}
