package archive

import (
	"fmt"
	"io"
	"os"

	"github.com/cavaliergopher/cpio"
	"github.com/cavaliergopher/rpm"
)

// extractRpm reads the rpm lead and headers, then drains the compressed
// cpio payload that follows them.
func (e *Extractor) extractRpm(src, dst string) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	pkg, err := rpm.Read(file)
	if err != nil {
		return fmt.Errorf("failed to read rpm headers: %w", err)
	}

	if format := pkg.PayloadFormat(); format != "cpio" {
		return fmt.Errorf("unsupported rpm payload format: %s", format)
	}

	reader, cleanup, err := decompressor(file)
	if err != nil {
		return fmt.Errorf("failed to open rpm payload: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	cr := cpio.NewReader(reader)
	first := true

	for {
		header, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if first {
				return fmt.Errorf("failed to read rpm payload: %w", err)
			}
			e.log.Warnf("Archive read header: %v", err)
			break
		}
		first = false

		target, ok := safeEntryPath(dst, header.Name)
		if !ok {
			e.log.Warnf("Skipping invalid path in archive: %s", header.Name)
			continue
		}

		mode := header.FileInfo().Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, mode.Perm()); err != nil {
				e.log.Warnf("Archive write entry %s: %v", header.Name, err)
			}
		case mode&os.ModeSymlink != 0:
			// SVR4 cpio stores the link target as the entry data.
			data, err := io.ReadAll(cr)
			if err != nil {
				e.log.Warnf("Archive read entry %s: %v", header.Name, err)
				continue
			}
			if err := e.writeSymlink(target, string(data)); err != nil {
				e.log.Warnf("Archive write entry %s: %v", header.Name, err)
			}
		case mode.IsRegular():
			if err := e.writeFile(target, cr, mode, header.ModTime); err != nil {
				e.log.Warnf("Archive write entry %s: %v", header.Name, err)
			}
		}
	}

	return nil
}
