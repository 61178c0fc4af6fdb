package archive

import (
	"path/filepath"
	"strings"

	"github.com/mkramer/instapp/internal/domain"
)

// Detect maps a filename to an archive format. Most specific suffix wins;
// content is never inspected.
func Detect(path string) domain.Format {
	name := strings.ToLower(filepath.Base(path))

	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return domain.FormatTarGz
	case strings.HasSuffix(name, ".tar.bz2"), strings.HasSuffix(name, ".tbz2"):
		return domain.FormatTarBz2
	case strings.HasSuffix(name, ".tar.xz"), strings.HasSuffix(name, ".txz"):
		return domain.FormatTarXz
	case filepath.Ext(name) == ".tar":
		return domain.FormatTar
	case filepath.Ext(name) == ".zip":
		return domain.FormatZip
	case filepath.Ext(name) == ".deb":
		return domain.FormatDeb
	case filepath.Ext(name) == ".rpm":
		return domain.FormatRpm
	default:
		return domain.FormatUnknown
	}
}
