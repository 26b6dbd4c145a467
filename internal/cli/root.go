package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todos/internal/config"
	"github.com/idilsaglam/todos/internal/ui"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// App carries the root flags and the resolved configuration.
type App struct {
	ConfigPath string
	Theme      string
	Align      string
	LogLevel   string
	LogFile    string
	NoColor    bool

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todos",
		Short:        "todos - a tiny in-memory todo list",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  todos

  # Replay a script and print the result
  printf 'add Buy milk\nadd Walk dog\nrm 0\n' | todos run

  # Same, as JSON
  todos run --format json script.txt
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolve(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to a YAML config file (default: $"+config.EnvVar+")")
	cmd.PersistentFlags().StringVar(&app.Theme, "theme", "", "Theme (classic|neon|mono)")
	cmd.PersistentFlags().StringVar(&app.Align, "align", "", "List alignment (top|bottom)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Append JSON logs to this file")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colour output")

	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// resolve layers defaults, the config file and the flags that were set.
func (app *App) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = strings.ToLower(app.Theme)
	}
	if flags.Changed("align") {
		cfg.Align = strings.ToLower(app.Align)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(app.LogLevel)
	}
	if flags.Changed("log-file") {
		cfg.Log.File = app.LogFile
	}
	if flags.Changed("no-color") {
		cfg.NoColor = app.NoColor
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(false, cfg.NoColor)
	app.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "todos "+Version)
			return err
		},
	}
}
