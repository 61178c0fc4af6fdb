package domain

import "time"

// Format identifies an archive container, derived purely from the
// filename suffix.
type Format int

const (
	FormatUnknown Format = iota
	FormatTar
	FormatTarGz
	FormatTarBz2
	FormatTarXz
	FormatZip
	FormatDeb
	FormatRpm
)

func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatTarGz:
		return "tar.gz"
	case FormatTarBz2:
		return "tar.bz2"
	case FormatTarXz:
		return "tar.xz"
	case FormatZip:
		return "zip"
	case FormatDeb:
		return "deb"
	case FormatRpm:
		return "rpm"
	default:
		return "unknown"
	}
}

// Extensions returns every supported archive suffix, most specific first.
func Extensions() []string {
	return []string{
		".tar.gz", ".tgz",
		".tar.bz2", ".tbz2",
		".tar.xz", ".txz",
		".tar", ".zip", ".deb", ".rpm",
	}
}

// InstallRequest is built once from flags and config defaults and is
// immutable afterwards.
type InstallRequest struct {
	ArchivePath  string
	InstallDir   string
	BinDir       string
	AppName      string
	LinkBinaries []string
	NoLink       bool
	Force        bool
	Desktop      *DesktopEntry
}

// DesktopEntry holds the fields of a launcher entry. Blank fields are
// defaulted once, right before rendering.
type DesktopEntry struct {
	Name       string
	ExecPath   string
	Icon       string
	Comment    string
	Categories string
	Terminal   bool
}

// InstalledApp is a record of one completed install.
type InstalledApp struct {
	Name        string    `json:"name"`
	Archive     string    `json:"archive"`
	Path        string    `json:"path"`
	Binaries    []string  `json:"binaries"`
	Desktop     bool      `json:"desktop"`
	InstalledAt time.Time `json:"installed_at"`
}
