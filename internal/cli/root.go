package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkramer/instapp/internal/archive"
	"github.com/mkramer/instapp/internal/config"
	"github.com/mkramer/instapp/internal/domain"
	"github.com/mkramer/instapp/internal/installer"
	"github.com/mkramer/instapp/internal/state"
	"github.com/mkramer/instapp/internal/ui"
	"github.com/mkramer/instapp/internal/version"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		installDir string
		binDir     string
		appName    string
		links      string
		noLink     bool
		force      bool

		desktopEntry bool
		icon         string
		comment      string
		categories   string
		terminal     bool
	)

	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "instapp [flags] <archive>",
		Short: "Install applications from compressed archives",
		Long: "Install applications from compressed archives.\n\n" +
			"Supported formats: " + strings.Join(domain.Extensions(), ", "),
		Example: `  instapp app-1.0.tar.gz
  instapp -d /usr/local -n myapp app.tar.gz
  instapp -l bin/app,bin/app-cli app.zip
  instapp --desktop --categories "Development;IDE;" clion.tar.gz`,
		Args:          cobra.ExactArgs(1),
		Version:       version.Version,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			archivePath := args[0]
			if _, err := os.Stat(archivePath); err != nil {
				return fmt.Errorf("file not found: %s", archivePath)
			}
			if archive.Detect(archivePath) == domain.FormatUnknown {
				return fmt.Errorf("unable to detect archive format for: %s", archivePath)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") && cfg.InstallDir != "" {
				installDir = cfg.InstallDir
			}
			if !cmd.Flags().Changed("bin") && cfg.BinDir != "" {
				binDir = cfg.BinDir
			}

			req := &domain.InstallRequest{
				ArchivePath: archivePath,
				InstallDir:  installDir,
				BinDir:      binDir,
				AppName:     appName,
				NoLink:      noLink,
				Force:       force,
			}
			req.LinkBinaries = splitLinks(links)
			if desktopEntry {
				req.Desktop = &domain.DesktopEntry{
					Icon:       icon,
					Comment:    comment,
					Categories: categories,
					Terminal:   terminal,
				}
			}

			log := ui.NewLogger()

			var recorder domain.State
			if cfg.StateFile == "" {
				log.Warnf("Could not determine state directory, installs will not be recorded")
			} else if st, err := state.New(cfg.StateFile); err != nil {
				log.Warnf("Could not open state database: %v", err)
			} else {
				recorder = st
				defer st.Close()
			}

			ins := installer.New(
				spinnerExtractor{archive.New(log)},
				ui.NewPrompter(),
				recorder,
				log,
				cfg.DesktopDir,
			)

			res, err := ins.Install(req)
			if err != nil {
				return err
			}
			if res.Cancelled {
				return nil
			}

			fmt.Printf("\n%s\n", bold("Installation complete!"))
			fmt.Printf("Application installed to: %s\n", res.InstallPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&installDir, "dir", "d", defaults.InstallDir, "Installation directory")
	cmd.Flags().StringVarP(&binDir, "bin", "b", defaults.BinDir, "Binary symlink directory")
	cmd.Flags().StringVarP(&appName, "name", "n", "", "Application name (auto-detected if not specified)")
	cmd.Flags().StringVarP(&links, "link", "l", "", "Comma-separated relative binary paths to symlink")
	cmd.Flags().BoolVar(&noLink, "no-link", false, "Don't create any symlinks")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing installation without prompting")
	cmd.Flags().BoolVar(&desktopEntry, "desktop", false, "Create desktop entry")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon path for desktop entry")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment for desktop entry")
	cmd.Flags().StringVar(&categories, "categories", "", "Categories for desktop entry (e.g. Development;IDE;)")
	cmd.Flags().BoolVar(&terminal, "terminal", false, "Mark desktop entry as terminal application")

	cmd.AddCommand(
		newListCmd(),
		newVersionCmd(),
	)

	return cmd
}

func splitLinks(csv string) []string {
	var links []string
	for _, link := range strings.Split(csv, ",") {
		if link = strings.TrimSpace(link); link != "" {
			links = append(links, link)
		}
	}
	return links
}
