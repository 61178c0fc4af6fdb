package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
)

func (e *Extractor) extractTarFile(src, dst string) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	return e.extractTarStream(file, dst)
}

// extractTarStream drains a possibly-compressed tar stream into dst.
// The decompressor is picked from magic bytes, so a stream whose name
// lies about its compression still extracts.
func (e *Extractor) extractTarStream(r io.Reader, dst string) error {
	reader, cleanup, err := decompressor(r)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	tr := tar.NewReader(reader)
	first := true

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if first {
				return fmt.Errorf("failed to read archive: %w", err)
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

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, header.FileInfo().Mode().Perm()); err != nil {
				e.log.Warnf("Archive write entry %s: %v", header.Name, err)
			}
		case tar.TypeReg:
			if err := e.writeFile(target, tr, header.FileInfo().Mode(), header.ModTime); err != nil {
				e.log.Warnf("Archive write entry %s: %v", header.Name, err)
			}
		case tar.TypeSymlink:
			if err := e.writeSymlink(target, header.Linkname); err != nil {
				e.log.Warnf("Archive write entry %s: %v", header.Name, err)
			}
		}
	}
	return nil
}
