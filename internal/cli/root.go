// Package cli implements the autobackup command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/gopasspw/iniconfig"
	"github.com/gopasspw/iniconfig/settings"
	"github.com/spf13/cobra"
)

// App holds the state shared by all commands.
type App struct {
	ConfigPath string
	Out        io.Writer
	Err        io.Writer
}

// Config returns a handle on the selected settings file.
func (a *App) Config() *iniconfig.Config {
	path := a.ConfigPath
	if path == "" {
		path = settings.DefaultPath()
	}

	return iniconfig.New(path)
}

// Execute runs the CLI.
func Execute() error {
	app := &App{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	return newRootCmd(app).Execute()
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autobackup",
		Short: "Manage automatic database backups and their INI settings",
		Long: `autobackup reads and edits the INI file holding the backup settings and
creates rotated, timestamped backups of database files.

Edits only touch the affected line, comments and unrelated sections are kept as they are.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to the settings file (default: "+settings.DefaultPath()+")")

	rootCmd.AddCommand(newInitCmd(app))
	rootCmd.AddCommand(newGetCmd(app))
	rootCmd.AddCommand(newSetCmd(app))
	rootCmd.AddCommand(newSectionCmd(app))
	rootCmd.AddCommand(newSectionsCmd(app))
	rootCmd.AddCommand(newSettingsCmd(app))
	rootCmd.AddCommand(newBackupCmd(app))

	return rootCmd
}
