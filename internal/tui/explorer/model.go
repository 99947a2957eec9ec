// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     explorer
// Description: Bubbletea model that re-parses the edited source while typing
//              and shows the tree, the tokens or the error next to it
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package explorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/mote/foundation/mote"
	"github.com/msto63/mote/internal/frontend"
	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/internal/render"
)

// Mode selects what the output panel shows
type Mode int

const (
	ModeTree Mode = iota
	ModeSExpr
	ModeTokens
	ModeJSON
)

var modeNames = []string{"tree", "sexpr", "tokens", "json"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// DefaultDebounce is the pause after the last keystroke before re-parsing
const DefaultDebounce = 150 * time.Millisecond

// Config holds explorer configuration
type Config struct {
	Service  *frontend.Service
	Name     string
	Source   string
	Debounce time.Duration
}

// Model is the explorer's Bubbletea model
type Model struct {
	width  int
	height int
	ready  bool

	editor   textarea.Model
	viewport viewport.Model

	service  *frontend.Service
	name     string
	debounce time.Duration

	mode   Mode
	seq    int
	source string
	result *mote.Result
	err    error
	output string
	status string
}

// New creates an explorer model
func New(cfg Config) Model {
	editor := textarea.New()
	editor.Placeholder = "fib(10);"
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.SetValue(cfg.Source)
	editor.Focus()

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	name := cfg.Name
	if name == "" {
		name = "explorer"
	}

	return Model{
		editor:   editor,
		service:  cfg.Service,
		name:     name,
		debounce: debounce,
		source:   cfg.Source,
	}
}

// Init analyzes the initial source
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.analyze(m.seq, m.source),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.mode = (m.mode + 1) % Mode(len(modeNames))
			m.refreshOutput()
			return m, nil
		case tea.KeyCtrlS:
			return m, m.record(m.editor.Value())
		case tea.KeyPgUp:
			m.viewport.PageUp()
			return m, nil
		case tea.KeyPgDown:
			m.viewport.PageDown()
			return m, nil
		}

		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
		if value := m.editor.Value(); value != m.source {
			m.source = value
			m.seq++
			seq := m.seq
			cmds = append(cmds, tea.Tick(m.debounce, func(time.Time) tea.Msg {
				return analyzeTickMsg{seq: seq}
			}))
		}
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshOutput()

	case analyzeTickMsg:
		// Stale ticks belong to edits that were superseded
		if msg.seq == m.seq {
			cmds = append(cmds, m.analyze(msg.seq, m.source))
		}

	case analyzedMsg:
		if msg.seq == m.seq {
			m.result = msg.result
			m.err = msg.err
			m.refreshOutput()
		}

	case recordedMsg:
		switch {
		case msg.err != nil:
			m.status = "record failed: " + msg.err.Error()
		case msg.runID == "":
			m.status = "history disabled"
		default:
			m.status = fmt.Sprintf("recorded run %s at %s", shortID(msg.runID), msg.at.Format("15:04:05"))
		}
	}

	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3
	footerHeight := 2
	bodyHeight := height - headerHeight - footerHeight - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	editorWidth := width/2 - 2
	outputWidth := width - editorWidth - 6
	if editorWidth < 10 {
		editorWidth = 10
	}
	if outputWidth < 10 {
		outputWidth = 10
	}

	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(bodyHeight)
	if !m.ready {
		m.viewport = viewport.New(outputWidth, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = outputWidth
		m.viewport.Height = bodyHeight
	}
}

// analyze parses without recording; live edits are not history
func (m Model) analyze(seq int, source string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		result, _, err := service.Analyze(source)
		return analyzedMsg{seq: seq, result: result, err: err}
	}
}

// record parses source through the service so the run lands in the history
func (m Model) record(source string) tea.Cmd {
	service := m.service
	name := m.name
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		outcome, err := service.Parse(ctx, frontend.Request{
			Name:   name,
			Source: source,
			Origin: history.OriginExplore,
		})
		if err != nil {
			return recordedMsg{err: err}
		}
		return recordedMsg{runID: outcome.RunID, ok: outcome.OK(), at: time.Now()}
	}
}

// refreshOutput renders the current result for the active mode
func (m *Model) refreshOutput() {
	m.output = m.renderOutput()
	if m.ready {
		m.viewport.SetContent(m.output)
	}
}

func (m Model) renderOutput() string {
	if m.err != nil {
		return render.Diagnostic(m.name, m.source, frontend.Describe(m.err))
	}
	if m.result == nil {
		return ""
	}

	var out string
	var err error
	switch m.mode {
	case ModeTree:
		out, err = render.AST(m.result.Root, render.FormatTree)
	case ModeSExpr:
		out, err = render.AST(m.result.Root, render.FormatSExpr)
	case ModeTokens:
		out, err = render.Tokens(m.result.Tokens, render.FormatPlain)
	case ModeJSON:
		out, err = render.AST(m.result.Root, render.FormatJSON)
	}
	if err != nil {
		return err.Error()
	}
	return out
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading explorer..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		EditorPanelStyle.Render(m.editor.View()),
		OutputPanelStyle.Render(m.viewport.View()),
	))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	modes := make([]string, len(modeNames))
	for i, name := range modeNames {
		if Mode(i) == m.mode {
			modes[i] = ModeActiveStyle.Render("[" + name + "]")
		} else {
			modes[i] = ModeInactiveStyle.Render(name)
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		strings.Repeat(" ", 3),
		strings.Join(modes, " "),
	)
	return TitlePanelStyle.Width(max(m.width-2, 0)).Render(header)
}

func (m Model) renderStatusBar() string {
	var state string
	switch {
	case m.err != nil:
		info := frontend.Describe(m.err)
		state = StatusErrorStyle.Render(IconError + info.Code)
	case m.result != nil:
		state = StatusOKStyle.Render(IconOK+"ok") + "  " +
			HelpDescStyle.Render(render.Stats(m.result.Stats, len(m.result.Tokens)))
	}
	if m.status != "" {
		state += "  " + HelpDescStyle.Render(m.status)
	}
	return StatusBarStyle.Render(state)
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Tab", "Mode"),
		RenderKeyHint("Ctrl+S", "Record"),
		RenderKeyHint("PgUp/PgDn", "Scroll"),
		RenderKeyHint("Esc", "Quit"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// Mode returns the active output mode
func (m Model) Mode() Mode {
	return m.mode
}

// Output returns the rendered output panel content
func (m Model) Output() string {
	return m.output
}

// Source returns the source being explored
func (m Model) Source() string {
	return m.source
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the explorer on the terminal
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
