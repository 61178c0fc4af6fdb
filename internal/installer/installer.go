package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkramer/instapp/internal/archive"
	"github.com/mkramer/instapp/internal/desktop"
	"github.com/mkramer/instapp/internal/domain"
	"github.com/mkramer/instapp/internal/scan"
	"github.com/mkramer/instapp/internal/ui"
)

// Installer runs one install: stage the archive to a temp directory,
// unwrap a lone top-level directory, place the tree under the install
// root, link executables and optionally register a desktop entry. The
// staging directory is removed on every exit path.
type Installer struct {
	extractor  domain.Extractor
	prompter   domain.Prompter
	state      domain.State
	log        *ui.Logger
	desktopDir string

	// tempRoot defaults to the system temp dir; tests override it.
	tempRoot string
}

func New(extractor domain.Extractor, prompter domain.Prompter, state domain.State, log *ui.Logger, desktopDir string) *Installer {
	return &Installer{
		extractor:  extractor,
		prompter:   prompter,
		state:      state,
		log:        log,
		desktopDir: desktopDir,
		tempRoot:   os.TempDir(),
	}
}

// Result reports what a run produced. Cancelled runs are not errors.
type Result struct {
	InstallPath string
	Cancelled   bool
	Linked      []string
	PrimaryExec string
	DesktopFile string
}

func (ins *Installer) Install(req *domain.InstallRequest) (*Result, error) {
	format := archive.Detect(req.ArchivePath)
	if format == domain.FormatUnknown {
		return nil, fmt.Errorf("unable to detect archive format for: %s", req.ArchivePath)
	}

	appName := req.AppName
	if appName == "" {
		appName = scan.AppName(req.ArchivePath)
	}
	ins.log.Infof("Detected app name: %s", appName)

	tempDir := filepath.Join(ins.tempRoot, fmt.Sprintf("instapp-%d", os.Getpid()))
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	ins.log.Infof("Extracting archive...")
	if err := ins.extractor.Extract(req.ArchivePath, tempDir, format); err != nil {
		return nil, err
	}

	sourceDir := unwrap(tempDir)
	installPath := filepath.Join(req.InstallDir, appName)

	if _, err := os.Lstat(installPath); err == nil {
		if !req.Force {
			prompt := fmt.Sprintf("Installation directory already exists: %s\noverwrite? (y/N): ", installPath)
			if !ins.prompter.Confirm(prompt) {
				ins.log.Printf("Installation cancelled\n")
				return &Result{Cancelled: true}, nil
			}
		}
		if err := os.RemoveAll(installPath); err != nil {
			return nil, fmt.Errorf("failed to remove existing installation: %w", err)
		}
	}

	ins.log.Infof("Installing to: %s", installPath)
	if err := os.MkdirAll(filepath.Dir(installPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", filepath.Dir(installPath), err)
	}
	if err := ins.copyTree(sourceDir, installPath); err != nil {
		return nil, fmt.Errorf("failed to copy into %s: %w", installPath, err)
	}

	res := &Result{InstallPath: installPath}

	if !req.NoLink {
		ins.link(req, installPath, res)
	}

	if req.Desktop != nil {
		ins.registerDesktop(req.Desktop, appName, installPath, res)
	}

	ins.record(appName, req, res)

	return res, nil
}

// unwrap treats an archive's sole top-level directory as the real source.
// A single top-level file does not unwrap.
func unwrap(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return dir
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dir, entries[0].Name())
	}
	return dir
}

func (ins *Installer) link(req *domain.InstallRequest, installPath string, res *Result) {
	if err := os.MkdirAll(req.BinDir, 0755); err != nil {
		ins.log.Warnf("Could not create bin directory %s: %v", req.BinDir, err)
		return
	}

	if len(req.LinkBinaries) > 0 {
		for _, rel := range req.LinkBinaries {
			binPath := filepath.Join(installPath, rel)

			info, err := os.Stat(binPath)
			if err != nil || !info.Mode().IsRegular() {
				ins.log.Warnf("Binary not found: %s", binPath)
				continue
			}

			ins.symlink(binPath, filepath.Join(req.BinDir, filepath.Base(rel)), res)
		}
		return
	}

	ins.log.Infof("Searching for executables...")
	executables := scan.FindExecutables(installPath, scan.DefaultLimit, ins.log)
	if len(executables) == 0 {
		return
	}

	ins.log.Printf("Found executables:\n")
	for i, exe := range executables {
		rel, err := filepath.Rel(installPath, exe)
		if err != nil {
			rel = exe
		}
		ins.log.Printf("  %d: %s\n", i+1, rel)
	}

	if !ins.prompter.Confirm("Create symlinks for these binaries? (y/N): ") {
		return
	}

	for _, exe := range executables {
		ins.symlink(exe, filepath.Join(req.BinDir, filepath.Base(exe)), res)
	}
}

// symlink replaces link with a fresh symlink to target. Failures are
// warnings; the first successful link becomes the primary executable.
func (ins *Installer) symlink(target, link string, res *Result) {
	if _, err := os.Lstat(link); err == nil {
		if err := os.Remove(link); err != nil {
			ins.log.Warnf("Could not remove existing symlink %s: %v", link, err)
			return
		}
	}

	if err := os.Symlink(target, link); err != nil {
		ins.log.Warnf("Could not create symlink %s -> %s: %v", link, target, err)
		return
	}

	ins.log.Infof("Created symlink: %s -> %s", link, target)
	res.Linked = append(res.Linked, link)
	if res.PrimaryExec == "" {
		res.PrimaryExec = target
	}
}

// registerDesktop defaults blank fields once, then writes the entry.
// Every failure here is a warning; the install is already done.
func (ins *Installer) registerDesktop(entry *domain.DesktopEntry, appName, installPath string, res *Result) {
	cfg := *entry

	if cfg.Name == "" {
		cfg.Name = appName
	}

	if cfg.ExecPath == "" {
		if res.PrimaryExec != "" {
			cfg.ExecPath = res.PrimaryExec
		} else if executables := scan.FindExecutables(installPath, 1, ins.log); len(executables) > 0 {
			cfg.ExecPath = executables[0]
		} else {
			ins.log.Warnf("No executable found for desktop entry")
			return
		}
	}

	if cfg.Icon == "" {
		if icon, ok := scan.FindIcon(installPath, appName); ok {
			cfg.Icon = icon
		}
	}

	if ins.desktopDir == "" {
		ins.log.Warnf("Could not determine desktop entry directory")
		return
	}

	path, err := desktop.Write(&cfg, ins.desktopDir)
	if err != nil {
		ins.log.Warnf("Could not create desktop entry: %v", err)
		return
	}

	ins.log.Infof("Created desktop entry: %s", path)
	res.DesktopFile = path
}

func (ins *Installer) record(appName string, req *domain.InstallRequest, res *Result) {
	if ins.state == nil {
		return
	}

	err := ins.state.Record(&domain.InstalledApp{
		Name:        appName,
		Archive:     req.ArchivePath,
		Path:        res.InstallPath,
		Binaries:    res.Linked,
		Desktop:     res.DesktopFile != "",
		InstalledAt: time.Now(),
	})
	if err != nil {
		ins.log.Warnf("Could not record install: %v", err)
	}
}
