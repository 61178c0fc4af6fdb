package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkramer/instapp/internal/config"
	"github.com/mkramer/instapp/internal/state"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.StateFile == "" {
				return fmt.Errorf("could not determine state directory")
			}

			st, err := state.New(cfg.StateFile)
			if err != nil {
				return err
			}
			defer st.Close()

			apps, err := st.List()
			if err != nil {
				return err
			}

			if len(apps) == 0 {
				fmt.Printf("\n%s No applications installed\n", dim("○"))
				return nil
			}

			fmt.Printf("\n%s\n", bold("Installed applications:"))
			for _, app := range apps {
				fmt.Printf("%s %s\n  %s %s\n  %s %s\n",
					green("✓"), bold(app.Name),
					cyan("path:"), app.Path,
					cyan("installed:"), app.InstalledAt.Local().Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}
