package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkramer/instapp/internal/domain"
	"github.com/mkramer/instapp/internal/ui"
)

type tarEntry struct {
	name     string
	content  string
	mode     int64
	dir      bool
	linkname string
}

func writeTarGz(t *testing.T, path string, entries []tarEntry) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: e.mode}
		switch {
		case e.dir:
			hdr.Typeflag = tar.TypeDir
		case e.linkname != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.linkname
		default:
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.content))
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func testLogger() (*ui.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &ui.Logger{Out: buf, Err: buf}, buf
}

func TestExtractTarGzRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app-1.0.tar.gz")
	writeTarGz(t, src, []tarEntry{
		{name: "app-1.0/", mode: 0755, dir: true},
		{name: "app-1.0/bin/", mode: 0755, dir: true},
		{name: "app-1.0/bin/app", content: "#!binary", mode: 0755},
		{name: "app-1.0/README", content: "hello", mode: 0644},
		{name: "app-1.0/bin/app-link", mode: 0777, linkname: "app"},
	})

	log, _ := testLogger()
	dst := filepath.Join(dir, "out")
	require.NoError(t, New(log).Extract(src, dst, domain.FormatTarGz))

	data, err := os.ReadFile(filepath.Join(dst, "app-1.0", "README"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := os.Stat(filepath.Join(dst, "app-1.0", "bin", "app"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100, "execute bit should survive extraction")

	linkTarget, err := os.Readlink(filepath.Join(dst, "app-1.0", "bin", "app-link"))
	require.NoError(t, err)
	assert.Equal(t, "app", linkTarget)
}

func TestExtractSkipsEscapingPaths(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "evil.tar.gz")
	writeTarGz(t, src, []tarEntry{
		{name: "../escape", content: "nope", mode: 0644},
		{name: "ok", content: "fine", mode: 0644},
	})

	log, warnings := testLogger()
	dst := filepath.Join(dir, "out")
	require.NoError(t, New(log).Extract(src, dst, domain.FormatTarGz))

	assert.NoFileExists(t, filepath.Join(dir, "escape"))
	assert.FileExists(t, filepath.Join(dst, "ok"))
	assert.Contains(t, warnings.String(), "invalid path")
}

func TestExtractMislabeledCompression(t *testing.T) {
	// The suffix says gzip but the content is plain tar; the magic-byte
	// sniff should still extract it.
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.tar.gz")

	f, err := os.Create(src)
	require.NoError(t, err)
	tw := tar.NewWriter(f)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "file", Mode: 0644, Size: 4, Typeflag: tar.TypeReg}))
	_, err = tw.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, f.Close())

	log, _ := testLogger()
	dst := filepath.Join(dir, "out")
	require.NoError(t, New(log).Extract(src, dst, domain.FormatTarGz))
	assert.FileExists(t, filepath.Join(dst, "file"))
}

func TestExtractUnreadableArchiveFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "garbage.tar.gz")
	require.NoError(t, os.WriteFile(src, []byte("this is not an archive at all"), 0644))

	log, _ := testLogger()
	err := New(log).Extract(src, filepath.Join(dir, "out"), domain.FormatTarGz)
	assert.Error(t, err)
}

func TestExtractZipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.zip")

	f, err := os.Create(src)
	require.NoError(t, err)
	zw := zip.NewWriter(f)

	hdr := &zip.FileHeader{Name: "app/run"}
	hdr.SetMode(0755)
	w, err := zw.CreateHeader(hdr)
	require.NoError(t, err)
	_, err = w.Write([]byte("#!binary"))
	require.NoError(t, err)

	w, err = zw.Create("app/doc.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("docs"))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	log, _ := testLogger()
	dst := filepath.Join(dir, "out")
	require.NoError(t, New(log).Extract(src, dst, domain.FormatZip))

	data, err := os.ReadFile(filepath.Join(dst, "app", "doc.txt"))
	require.NoError(t, err)
	assert.Equal(t, "docs", string(data))

	info, err := os.Stat(filepath.Join(dst, "app", "run"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100)
}
