// Package tui is the interactive todo list: an input line that submits
// titles and a virtualized list that re-derives its rows from the store
// after every change.
//
// Everything runs inside bubbletea's Update loop, which gives the store
// the single writer it expects.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/todos/internal/controller"
	"github.com/idilsaglam/todos/internal/listwindow"
	"github.com/idilsaglam/todos/internal/logging"
	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/store"
	"github.com/idilsaglam/todos/internal/ui"
)

// Options tune the interactive list.
type Options struct {
	Align       listwindow.Alignment
	Placeholder string
	CharLimit   int
	Logger      *slog.Logger
}

// rows taken by everything except the list: frame (2), header (1),
// input box (3), help line (1).
const chromeHeight = 7

// Model is the bubbletea model. It is a pointer type because the list
// window calls back into it when it rebuilds.
type Model struct {
	ctrl   *controller.Controller
	window *listwindow.Window
	logger *slog.Logger

	input  textinput.Model
	keys   keyMap
	help   help.Model
	typing bool

	header    string
	status    string
	statusErr bool

	width, height int
}

// New builds the model and mounts its list window on the store's bus.
// Callers must Close it when the program exits.
func New(s *store.Store, opts Options) *Model {
	m := &Model{
		ctrl:   controller.New(s),
		logger: opts.Logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = opts.Placeholder
	if m.input.Placeholder == "" {
		m.input.Placeholder = "Add todo..."
	}
	m.input.CharLimit = opts.CharLimit

	m.window = listwindow.New(s,
		listwindow.WithAlignment(opts.Align),
		listwindow.WithHeight(m.listHeight()),
		listwindow.WithRender(m.renderRow(m.width)),
		listwindow.WithRedraw(m.refreshHeader),
	)
	m.window.Mount(s.Bus())
	m.focusInput()
	return m
}

// Close unmounts the list window.
func (m *Model) Close() { m.window.Close() }

// Window exposes the list bookkeeping, mainly for tests.
func (m *Model) Window() *listwindow.Window { return m.window }

func (m *Model) listHeight() int { return max(1, m.height-chromeHeight) }

// renderRow is bound to a width; a resize swaps in a new renderer and the
// window drops every cached row.
func (m *Model) renderRow(width int) listwindow.RenderFunc {
	return func(it model.Item) string {
		t := ui.Current()
		id := fmt.Sprintf(" #%d", it.ID)
		avail := width - 4 - ansi.StringWidth(t.Cursor) - len(id) - 2
		title := it.Title
		if title == "" {
			title = t.Muted.Render("(untitled)")
		}
		return t.Accent.Render(t.Bullet) + " " + ui.Truncate(title, avail) + t.Muted.Render(id)
	}
}

func (m *Model) refreshHeader() {
	t := ui.Current()
	n := m.window.RowCount()
	noun := "items"
	if n == 1 {
		noun = "item"
	}
	m.header = fmt.Sprintf("%s   %s %d %s", t.Title.Render("Todos"), t.Accent.Render(t.Bullet), n, noun)
}

func (m *Model) focusInput() {
	m.typing = true
	m.input.Focus()
}

func (m *Model) blurInput() {
	m.typing = false
	m.input.Blur()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m *Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-14)
		m.window.SetRender(m.renderRow(msg.Width))
		m.window.SetHeight(m.listHeight())
		return m, nil

	case logRecordMsg:
		m.setStatus(msg.Summary, msg.Level >= slog.LevelWarn)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQ) {
			return m, tea.Quit
		}
		m.status = ""
		if m.typing {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	if m.typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		id, err := m.ctrl.Submit(m.input.Value())
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.window.SelectID(id)
		m.input.SetValue("")
		m.setStatus("added", false)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.blurInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.window.Height()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.focusInput()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Up):
		m.window.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.window.MoveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.window.MoveSelection(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.window.MoveSelection(page)
	case key.Matches(msg, m.keys.ScrollUp):
		m.window.Scroll(-max(1, page/2))
	case key.Matches(msg, m.keys.ScrollDn):
		m.window.Scroll(max(1, page/2))
	case key.Matches(msg, m.keys.Home):
		m.window.Select(0)
	case key.Matches(msg, m.keys.End):
		m.window.Select(m.window.RowCount() - 1)
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) deleteSelected() {
	it, ok := m.window.Selected()
	if !ok {
		return
	}
	if err := m.ctrl.Delete(it.ID); err != nil {
		// Only reachable if the window and store disagree; the next
		// rebuild fixes the window.
		if errors.Is(err, store.ErrNotFound) {
			m.logger.Warn("delete of a stale row", "id", it.ID)
		}
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("removed "+it.Label(), false)
}

func (m *Model) View() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(m.header)
	if above := m.window.Offset(); above > 0 {
		b.WriteString(t.Muted.Render(fmt.Sprintf("   ↑ %d more", above)))
	}
	b.WriteString("\n")

	for i := 0; i < m.window.Padding(); i++ {
		b.WriteString("\n")
	}
	start, end := m.window.Visible()
	if start == end {
		b.WriteString(t.Muted.Render("no items"))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		row, _ := m.window.Row(i)
		prefix := strings.Repeat(" ", ansi.StringWidth(t.Cursor))
		if i == m.window.SelectedIndex() && !m.typing {
			prefix = t.Selected.Render(t.Cursor)
		}
		b.WriteString(prefix + row + "\n")
	}

	border := t.Border
	if m.typing {
		border = t.Accent
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border.GetForeground()).
		Padding(0, 1).
		Width(max(10, m.width-6))
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.footer())
	return panelString(b.String())
}

func (m *Model) footer() string {
	t := ui.Current()
	if m.status != "" {
		if m.statusErr {
			return t.Error.Render(t.SymCross + " " + m.status)
		}
		return t.Success.Render(t.SymCheck + " " + m.status)
	}
	if m.typing {
		return m.help.View(inputKeys{m.keys})
	}
	return m.help.View(listKeys{m.keys})
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Current().Border.GetForeground()).
		Padding(0, 1)
	return border.Render(inner)
}

// Run starts the program on the alt screen and unmounts the list window
// on every exit path.
func Run(ctx context.Context, m *Model, logs *LogHandler) error {
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if logs != nil {
		logs.SetProgram(p)
	}
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
