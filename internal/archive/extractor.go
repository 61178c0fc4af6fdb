package archive

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/mkramer/instapp/internal/domain"
	"github.com/mkramer/instapp/internal/ui"
)

// Extractor streams archive entries into a destination tree. A failure to
// open the container is an error; failures on individual entries are
// logged as warnings and extraction continues.
type Extractor struct {
	log *ui.Logger
}

func New(log *ui.Logger) *Extractor {
	return &Extractor{log: log}
}

func (e *Extractor) Extract(src, dst string, format domain.Format) error {
	switch format {
	case domain.FormatTar, domain.FormatTarGz, domain.FormatTarBz2, domain.FormatTarXz:
		return e.extractTarFile(src, dst)
	case domain.FormatZip:
		return e.extractZip(src, dst)
	case domain.FormatDeb:
		return e.extractDeb(src, dst)
	case domain.FormatRpm:
		return e.extractRpm(src, dst)
	default:
		return fmt.Errorf("unsupported archive format: %s", src)
	}
}

// https://gist.github.com/leommoore/f9e57ba2aa4bf197ebc5 - this is AWESOME
func decompressor(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)

	header, err := br.Peek(6)
	if err != nil && len(header) == 0 {
		return nil, nil, fmt.Errorf("failed to read archive header: %w", err)
	}
	n := len(header)

	switch {
	case n >= 4 && header[0] == 0x28 && header[1] == 0xb5 && header[2] == 0x2f && header[3] == 0xfd:
		// zstd: 0x28B52FFD
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zr, func() { zr.Close() }, nil

	case n >= 2 && header[0] == 0x1f && header[1] == 0x8b:
		// gzip: 0x1F8B
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return gzr, func() { gzr.Close() }, nil

	case n >= 6 && header[0] == 0xfd && header[1] == 0x37 && header[2] == 0x7a && header[3] == 0x58 && header[4] == 0x5a && header[5] == 0x00:
		// xz: 0xFD377A585A00
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("xz: %w", err)
		}
		return xzr, nil, nil

	case n >= 2 && header[0] == 0x42 && header[1] == 0x5a:
		// bzip2: 0x425A
		return bzip2.NewReader(br), nil, nil

	default:
		// uncompressed
		return br, nil, nil
	}
}

// safeEntryPath joins an entry's internal path onto the destination root,
// rejecting names that would escape it.
func safeEntryPath(dst, name string) (string, bool) {
	name = strings.TrimPrefix(name, "./")
	if name == "" || name == "." || strings.Contains(name, "..") {
		return "", false
	}
	return filepath.Join(dst, name), true
}

func (e *Extractor) writeFile(target string, r io.Reader, mode os.FileMode, mtime time.Time) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if !mtime.IsZero() {
		// best effort
		os.Chtimes(target, mtime, mtime)
	}
	return nil
}

func (e *Extractor) writeSymlink(target, linkname string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	os.Remove(target)
	return os.Symlink(linkname, target)
}
