package cli

import (
	"fmt"
	"time"

	"github.com/gopasspw/iniconfig/backup"
	"github.com/gopasspw/iniconfig/settings"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// now is replaced in tests.
var now = time.Now

func newSettingsCmd(app *App) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Load and print the backup settings",
		Long: `Load the backup settings from the [config] section and print them.

Fails if a setting has an invalid value, e.g. a BackupsPreserve that is not a number.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(app.Config())
			if err != nil {
				return err
			}

			if asYAML {
				enc := yaml.NewEncoder(app.Out)
				enc.SetIndent(2)
				if err := enc.Encode(s); err != nil {
					return fmt.Errorf("failed to encode settings: %w", err)
				}

				return enc.Close()
			}

			fmt.Fprintf(app.Out, "BackupPath:                       %s\n", backupPathLabel(s))
			fmt.Fprintf(app.Out, "BackupExclusions:                 %v\n", s.BackupExclusions)
			fmt.Fprintf(app.Out, "BackupsPreserve:                  %d\n", s.BackupsPreserve)
			fmt.Fprintf(app.Out, "BackupOnDatabaseExit:             %t\n", s.BackupOnDatabaseExit)
			fmt.Fprintf(app.Out, "BackupOnDatabaseChange:           %t\n", s.BackupOnDatabaseChange)
			fmt.Fprintf(app.Out, "BackupOnlyWhenDatabaseHasChanged: %t\n", s.BackupOnlyWhenDatabaseHasChanged)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the settings as YAML")

	return cmd
}

func backupPathLabel(s *settings.Settings) string {
	if s.BackupInSourceDir {
		return "(next to the database)"
	}

	return s.BackupPath
}

func newBackupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <database>...",
		Short: "Back up databases and remove old backups",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(app.Config())
			if err != nil {
				return err
			}

			for _, db := range args {
				target, removed, err := backup.Run(db, s, now())
				if err != nil {
					return fmt.Errorf("backup of %s failed: %w", db, err)
				}

				fmt.Fprintf(app.Out, "Created %s\n", target)
				for _, r := range removed {
					fmt.Fprintf(app.Out, "Removed %s\n", r)
				}
			}

			return nil
		},
	}
}
