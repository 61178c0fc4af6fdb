package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

func (e *Extractor) extractZip(src, dst string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, ok := safeEntryPath(dst, f.Name)
		if !ok {
			e.log.Warnf("Skipping invalid path in archive: %s", f.Name)
			continue
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, f.Mode().Perm()); err != nil {
				e.log.Warnf("Archive write entry %s: %v", f.Name, err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			e.log.Warnf("Archive read entry %s: %v", f.Name, err)
			continue
		}

		if f.Mode()&os.ModeSymlink != 0 {
			linkname, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				e.log.Warnf("Archive read entry %s: %v", f.Name, err)
				continue
			}
			if err := e.writeSymlink(target, string(linkname)); err != nil {
				e.log.Warnf("Archive write entry %s: %v", f.Name, err)
			}
			continue
		}

		if err := e.writeFile(target, rc, f.Mode(), f.Modified); err != nil {
			e.log.Warnf("Archive write entry %s: %v", f.Name, err)
		}
		rc.Close()
	}

	return nil
}
