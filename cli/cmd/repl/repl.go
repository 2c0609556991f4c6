// Package repl runs an interactive evaluation session in the terminal.
package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/litcalc/log"
)

// Evaluator evaluates one statement at a time in a persistent session.
type Evaluator interface {
	Evaluate(ctx context.Context, code string) (string, error)
	Names() []string
}

const (
	prompt       = "» "
	defaultWidth = 80
)

func helpMessage() string {
	return `
Type a statement and press Enter to evaluate it.

Commands:
  :help    Print this help
  :names   List names in scope
  :clear   Clear the screen
  :quit    Exit

Keys:
  Tab / Shift-Tab   Cycle completion candidates
  Enter             Accept the selected candidate, or evaluate
  Esc               Cancel completion
  Up / Down         Browse history
  Ctrl-C            Clear the line, or exit on an empty line
  Ctrl-D            Exit on an empty line
`
}

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// Config holds the terminal and storage settings of a session.
type Config struct {
	CacheDir string // directory holding the history database
	In       io.Reader
	Out      io.Writer
	Logger   log.Logger
}

// IsTerminal reports whether r is attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run reads statements from the terminal and evaluates them with ev until
// the user exits or ctx is canceled.
func Run(ctx context.Context, ev Evaluator, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if !IsTerminal(cfg.In) {
		return ErrNotTerminal
	}

	history, err := OpenHistory(filepath.Join(cfg.CacheDir, baseHistory))
	if err != nil {
		cfg.Logger.WarnContext(ctx, "history not persisted", slog.Any("error", err))

		history = &History{}
	}

	defer func() { _ = history.Close() }()

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cfg.CacheDir),
		slog.Int("history", history.Len()),
	)

	p := tea.NewProgram(
		newModel(ctx, ev, history, cfg.Logger),
		tea.WithContext(ctx),
		tea.WithInput(cfg.In),
		tea.WithOutput(cfg.Out),
	)

	_, err = p.Run()

	return err
}

type model struct {
	ctx          context.Context
	eval         Evaluator
	input        textinput.Model
	logger       log.Logger
	history      *History
	historyIdx   int
	names        []string      // completion candidates
	matches      fuzzy.Matches // ranked matches for the current word
	wordStart    int
	wordEnd      int
	suggIdx      int  // selected candidate while tab-cycling
	tabActive    bool // whether the user is tab-cycling
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
}

func newModel(
	ctx context.Context,
	ev Evaluator,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctx:        ctx,
		eval:       ev,
		input:      ti,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		names:      ev.Names(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type a statement, or :help"))

	default:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		var cmd tea.Cmd

		m.tabActive = false

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		m.refreshMatches(true)

		return m, cmd
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(false)

	return m, cmd
}

// cycle moves the tab selection by step and writes the selected candidate
// into the input. A single candidate is accepted at once.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord substitutes s for the current word and moves the cursor after
// it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()
	end := min(m.wordEnd, len(input))
	start := min(m.wordStart, end)

	m.input.SetValue(input[:start] + s + input[end:])
	m.input.SetCursor(start + len(s))
	m.wordEnd = start + len(s)
}

// refreshMatches recomputes completion candidates. With autoConfirm, a word
// that already equals its only candidate closes the completion bar.
func (m *model) refreshMatches(autoConfirm bool) {
	if m.tabActive {
		return
	}

	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

func (m model) historyMove(step int) model {
	idx := m.historyIdx + step
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx
	m.tabActive = false

	line, err := m.history.At(idx)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.refreshMatches(false)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m.matches = nil
	m.tabActive = false

	if input == "" {
		return m, nil
	}

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctx, "history not saved", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(input))

	if name, ok := strings.CutPrefix(input, commandPrefix); ok {
		return m.executeCommand(strings.TrimSpace(name), echo)
	}

	m.logger.TraceContext(m.ctx, "repl eval", slog.String("input", input))

	result, err := m.eval.Evaluate(m.ctx, input)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	m.names = m.eval.Names()

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(result)))
}

func (m model) executeCommand(name string, echo tea.Cmd) (model, tea.Cmd) {
	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "n", "names":
		return m, tea.Sequence(echo, tea.Println(m.namesView()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("unknown command: "+name+" (try :help)"),
		))
	}
}

// namesView lays out the names in scope in columns that fit the width.
func (m model) namesView() string {
	names := slices.Sorted(slices.Values(m.names))
	if len(names) == 0 {
		return hintStyle.Render("(none)")
	}

	colWidth := 0
	for _, n := range names {
		colWidth = max(colWidth, lipgloss.Width(n))
	}

	colWidth += 2
	cols := max(m.width/colWidth, 1)

	var b strings.Builder

	for i, n := range names {
		b.WriteString(n)

		if (i+1)%cols == 0 || i == len(names)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(strings.Repeat(" ", colWidth-lipgloss.Width(n)))
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
