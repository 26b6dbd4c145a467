package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todos/internal/controller"
	"github.com/idilsaglam/todos/internal/export"
	"github.com/idilsaglam/todos/internal/listwindow"
	"github.com/idilsaglam/todos/internal/logging"
	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/store"
	"github.com/idilsaglam/todos/internal/ui"
)

type runOptions struct {
	format string
	strict bool
}

func newRunCmd(app *App) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Replay a script of add/rm/ls commands against a fresh list",
		Long: strings.TrimSpace(`
Reads one command per line from file, or stdin when file is omitted or "-":

  add <title...>   Add a new item (title can be multiple words)
  rm <id>          Remove the item with this id
  ls               Print the current list

Blank lines and lines starting with # are ignored. The final list is
printed when the script ends.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			logger := logging.Text(cmd.ErrOrStderr(), app.cfg.LogLevel())
			if app.cfg.Log.File != "" {
				l, closeLog, err := logging.OpenFile(app.cfg.Log.File, app.cfg.LogLevel())
				if err != nil {
					return err
				}
				defer closeLog()
				logger = l
			}

			// Keep stdout clean for machine-readable output.
			progress := cmd.OutOrStdout()
			if format != export.Text {
				progress = cmd.ErrOrStderr()
			}
			ui.SetOutput(progress, cmd.ErrOrStderr())
			r := newRunner(logger, opts.strict)
			defer r.close()
			if err := r.exec(in); err != nil {
				return err
			}
			return r.finish(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format for the final list (text|json|yaml)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Stop at the first rm of an unknown id")
	return cmd
}

// runner replays a script. It mounts a list window like the interactive
// view does, so ls and the final listing read the rebuilt rows.
type runner struct {
	store    *store.Store
	ctrl     *controller.Controller
	window   *listwindow.Window
	logger   *slog.Logger
	strict   bool
	rebuilds int
}

func newRunner(logger *slog.Logger, strict bool) *runner {
	s := store.New(store.WithLogger(logger))
	r := &runner{
		store:  s,
		ctrl:   controller.New(s),
		logger: logger,
		strict: strict,
	}
	r.window = listwindow.New(s,
		listwindow.WithRender(func(it model.Item) string { return it.Label() }),
		listwindow.WithRedraw(func() { r.rebuilds++ }),
	)
	r.window.Mount(s.Bus())
	return r
}

func (r *runner) close() {
	r.window.Close()
	r.logger.Debug("script finished", "items", r.store.Len(), "next_id", r.store.NextID(), "rebuilds", r.rebuilds)
}

// exec runs every line of in. Malformed lines stop the script; an rm of an
// unknown id is reported and skipped unless strict.
func (r *runner) exec(in io.Reader) error {
	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := r.step(text); err != nil {
			var nf *store.NotFoundError
			if errors.As(err, &nf) && !r.strict {
				ui.Fail(fmt.Sprintf("line %d: rm: %v", line, err))
				continue
			}
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

func (r *runner) step(text string) error {
	cmd, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "add":
		id, err := r.ctrl.Submit(rest)
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		ui.OK(fmt.Sprintf("added #%d", id))
		return nil

	case "rm":
		if rest == "" || strings.Contains(rest, " ") {
			return errors.New("usage: rm <id>")
		}
		id, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return fmt.Errorf("rm: not a number: %q", rest)
		}
		if err := r.ctrl.Delete(id); err != nil {
			return err
		}
		ui.OK(fmt.Sprintf("removed #%d", id))
		return nil

	case "ls":
		if rest != "" {
			return errors.New("usage: ls")
		}
		ui.Panel(r.lines())
		return nil
	}
	return fmt.Errorf("unknown command: %s", cmd)
}

// lines renders the window rows under a count header.
func (r *runner) lines() []string {
	start, end := r.window.Visible()
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row, _ := r.window.Row(i)
		rows = append(rows, row)
	}
	return framed(rows)
}

func framed(rows []string) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d", t.Title.Render("Todos"), t.Accent.Render("Total"), len(rows)),
		"",
	}
	if len(rows) == 0 {
		return append(lines, t.Muted.Render("no items"))
	}
	for _, row := range rows {
		lines = append(lines, t.Accent.Render(t.Bullet)+" "+row)
	}
	return lines
}

// finish prints the final list. Text is the plain export framed in a panel.
func (r *runner) finish(w io.Writer, format export.Format) error {
	if format != export.Text {
		return export.Write(w, r.store.Snapshot(), format)
	}
	var body strings.Builder
	if err := export.Write(&body, r.store.Snapshot(), export.Text); err != nil {
		return err
	}
	var rows []string
	if text := strings.TrimSuffix(body.String(), "\n"); text != "" {
		rows = strings.Split(text, "\n")
	}
	_, err := io.WriteString(w, ui.PanelString(framed(rows), ui.TermWidth()))
	return err
}
