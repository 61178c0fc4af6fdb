package scan

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mkramer/instapp/internal/ui"
)

// DefaultLimit caps how many executable candidates a scan collects.
const DefaultLimit = 20

// Extensions whose files are never link candidates even when the execute
// bit is set: libraries, interpreter scripts and plain data.
var excludedExtensions = map[string]bool{
	".so": true, ".a": true, ".o": true, ".la": true, ".dylib": true, ".dll": true,
	".sh": true, ".bash": true, ".zsh": true, ".fish": true, ".py": true, ".pl": true, ".rb": true,
	".txt": true, ".md": true, ".xml": true, ".json": true, ".conf": true, ".cfg": true,
}

var errLimitReached = errors.New("scan limit reached")

// FindExecutables walks dir collecting regular files with the owner-execute
// bit set, in traversal order, up to max results. Traversal errors are
// warnings; the scan returns whatever it collected.
func FindExecutables(dir string, max int, log *ui.Logger) []string {
	var executables []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warnf("Filesystem error: %v", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.Warnf("Filesystem error: %v", err)
			return nil
		}

		if info.Mode()&0100 == 0 || !isValidExecutable(d.Name()) {
			return nil
		}

		executables = append(executables, path)
		if len(executables) >= max {
			return errLimitReached
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimitReached) {
		log.Warnf("Filesystem error: %v", err)
	}

	return executables
}

func isValidExecutable(filename string) bool {
	if strings.HasPrefix(filename, ".") {
		return false
	}
	return !excludedExtensions[filepath.Ext(filename)]
}
