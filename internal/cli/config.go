package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/gopasspw/iniconfig"
	"github.com/gopasspw/iniconfig/settings"
	"github.com/spf13/cobra"
)

// ErrNotFound is returned by get when the key is not configured.
var ErrNotFound = errors.New("not found")

func newInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a settings file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Config().Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to reset the settings)", path)
			}

			cfg, err := iniconfig.Create(path)
			if err != nil {
				return err
			}

			if err := settings.Defaults().Save(cfg); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Initialized %s\n", path)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the settings in an existing file")

	return cmd
}

func newGetCmd(app *App) *cobra.Command {
	var lower bool

	cmd := &cobra.Command{
		Use:   "get <section> <key>",
		Short: "Print the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, found, err := app.Config().GetValue(args[0], args[1], lower)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s.%s: %w", args[0], args[1], ErrNotFound)
			}

			fmt.Fprintln(app.Out, v)

			return nil
		},
	}

	cmd.Flags().BoolVar(&lower, "lower", false, "Print the value in lower case")

	return cmd
}

func newSetCmd(app *App) *cobra.Command {
	var lower bool

	cmd := &cobra.Command{
		Use:   "set <section> <key> <value>",
		Short: "Set (or add) the value of a key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Config().SetValue(args[0], args[1], args[2], lower)
		},
	}

	cmd.Flags().BoolVar(&lower, "lower", false, "Store the value in lower case")

	return cmd
}

func newSectionCmd(app *App) *cobra.Command {
	var comments bool

	cmd := &cobra.Command{
		Use:   "section <name>",
		Short: "Print all entries of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := app.Config().GetSection(args[0], comments)
			if err != nil {
				return err
			}

			for _, l := range lines {
				fmt.Fprintln(app.Out, l)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&comments, "comments", false, "Include comment lines")

	return cmd
}

func newSectionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List all sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := app.Config().Sections()
			if err != nil {
				return err
			}

			for _, s := range sections {
				fmt.Fprintln(app.Out, s)
			}

			return nil
		},
	}
}
