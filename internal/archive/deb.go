package archive

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blakesmith/ar"
)

// extractDeb walks the ar container of a .deb package, finds the
// data.tar.* member and extracts it like any other tar stream. The
// control member is metadata only and is skipped.
func (e *Extractor) extractDeb(src, dst string) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	reader := ar.NewReader(file)

	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read deb container: %w", err)
		}

		name := strings.TrimSuffix(strings.TrimSpace(header.Name), "/")
		if strings.HasPrefix(name, "data.tar") {
			return e.extractTarStream(reader, dst)
		}
	}

	return fmt.Errorf("no data.tar member in %s", src)
}
