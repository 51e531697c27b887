package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trata/internal/storage"
	"trata/internal/ui/preferences"
)

func newConfigCommand(options *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the settings file",
	}
	cmd.AddCommand(newConfigShowCommand(options), newConfigInitCommand(options))
	return cmd
}

func newConfigShowCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, path, err := options.loadSettings()
			if err != nil {
				return err
			}
			serialized, err := storage.Marshal(path, settings)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, serialized)
			if err := settings.TimeKeeperConfig().Validate(); err != nil {
				return err
			}
			return nil
		},
	}
}

func newConfigInitCommand(options *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := options.resolveConfigPath()
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("settings file %q already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("stat settings file %q: %w", path, err)
				}
			}
			if err := storage.SaveSettings(path, preferences.DefaultSettings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
	return cmd
}
