package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todos/internal/logging"
	"github.com/idilsaglam/todos/internal/store"
	"github.com/idilsaglam/todos/internal/tui"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive list (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	cfg := app.cfg

	// The alt screen owns stdout and stderr, so logs go to the file when
	// one is configured and to the status bar otherwise.
	var (
		logger *slog.Logger
		logs   *tui.LogHandler
	)
	if cfg.Log.File != "" {
		l, closeLog, err := logging.OpenFile(cfg.Log.File, cfg.LogLevel())
		if err != nil {
			return err
		}
		defer closeLog()
		logger = l
	} else {
		logs = tui.NewLogHandler(max(cfg.LogLevel(), slog.LevelWarn))
		logger = slog.New(logs)
	}

	s := store.New(store.WithLogger(logger))
	m := tui.New(s, tui.Options{
		Align:       cfg.Alignment(),
		Placeholder: cfg.Input.Placeholder,
		CharLimit:   cfg.Input.CharLimit,
		Logger:      logger,
	})
	logger.Debug("tui starting", "align", cfg.Alignment().String(), "theme", cfg.Theme)
	return tui.Run(cmd.Context(), m, logs)
}
