package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"trata/internal/core/timekeeper"
	"trata/internal/logging"
	"trata/internal/storage"
	"trata/internal/ui/preferences"
	"trata/internal/ui/terminal"
)

const appName = "trata"

// Version is set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}
	runCmd := newRunCommand(options)

	root := &cobra.Command{
		Use:           appName,
		Short:         "Pomodoro timer for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		Args:          cobra.NoArgs,
		RunE:          runCmd.RunE,
	}
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	root.PersistentFlags().StringVar(&options.configPath, "config", "", "settings file (.yaml or .toml); defaults to the user config dir")
	root.PersistentFlags().StringVar(&options.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.Flags().AddFlagSet(runCmd.Flags())

	root.AddCommand(runCmd, newConfigCommand(options))
	return root
}

func (options *rootOptions) resolveConfigPath() (string, error) {
	if options.configPath != "" {
		return options.configPath, nil
	}
	return storage.ResolveConfigPath(appName)
}

func (options *rootOptions) loadSettings() (preferences.Settings, string, error) {
	path, err := options.resolveConfigPath()
	if err != nil {
		return preferences.Settings{}, "", err
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		return preferences.Settings{}, "", fmt.Errorf("load settings: %w", err)
	}
	return settings, path, nil
}

func newRunCommand(options *rootOptions) *cobra.Command {
	overrides := preferences.DefaultSettings()
	var noLongBreak, noBell bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, path, err := options.loadSettings()
			if err != nil {
				return err
			}
			applyOverrides(cmd, &settings, overrides, noLongBreak, noBell)

			keeper, err := timekeeper.New(settings.TimeKeeperConfig(), timekeeper.Config{})
			if err != nil {
				return fmt.Errorf("configure timer: %w", err)
			}

			level, err := log.ParseLevel(options.logLevel)
			if err != nil {
				return fmt.Errorf("parse log level: %w", err)
			}
			logDir, err := logging.DefaultDir(appName)
			if err != nil {
				return err
			}
			runtimeLogger, err := logging.New(logDir, appName, level)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			defer func() {
				if closeErr := runtimeLogger.Close(); closeErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed to close logger: %v\n", closeErr)
				}
			}()
			runtimeLogger.Logger.With("settings", path, "work", settings.Work, "auto_continue", settings.AutoContinue).Info("timer starting")

			return terminal.Run(cmd.Context(), keeper, cmd.InOrStdin(), cmd.OutOrStdout(), terminal.Options{
				TickInterval: settings.TickInterval,
				Bell:         settings.Bell,
				Logger:       runtimeLogger.Logger,
			})
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&overrides.Work, "work", overrides.Work, "work phase length")
	flags.DurationVar(&overrides.ShortBreak, "short-break", overrides.ShortBreak, "short break length")
	flags.DurationVar(&overrides.LongBreak, "long-break", overrides.LongBreak, "long break length")
	flags.IntVar(&overrides.SessionsBeforeLongBreak, "sessions", overrides.SessionsBeforeLongBreak, "work sessions before a long break")
	flags.BoolVar(&noLongBreak, "no-long-break", false, "never take long breaks")
	flags.BoolVar(&overrides.AutoContinue, "auto-continue", overrides.AutoContinue, "start the next phase without waiting")
	flags.DurationVar(&overrides.TickInterval, "tick", overrides.TickInterval, "display refresh interval")
	flags.BoolVar(&noBell, "no-bell", false, "do not ring the terminal bell between phases")
	return cmd
}

// applyOverrides copies only the flags the user actually set.
func applyOverrides(cmd *cobra.Command, settings *preferences.Settings, overrides preferences.Settings, noLongBreak, noBell bool) {
	flags := cmd.Flags()
	if flags.Changed("work") {
		settings.Work = overrides.Work
	}
	if flags.Changed("short-break") {
		settings.ShortBreak = overrides.ShortBreak
	}
	if flags.Changed("long-break") {
		settings.LongBreak = overrides.LongBreak
	}
	if flags.Changed("sessions") {
		settings.SessionsBeforeLongBreak = overrides.SessionsBeforeLongBreak
	}
	if flags.Changed("auto-continue") {
		settings.AutoContinue = overrides.AutoContinue
	}
	if flags.Changed("tick") {
		settings.TickInterval = overrides.TickInterval
	}
	if noLongBreak {
		settings.LongBreakEnabled = false
	}
	if noBell {
		settings.Bell = false
	}
}
