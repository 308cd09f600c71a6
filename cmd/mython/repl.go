package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mython/config"
	"mython/runtime"
)

var (
	accentColor = lipgloss.Color("#3B82F6")
	okColor     = lipgloss.Color("#10B981")
	errColor    = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	okStyle     = lipgloss.NewStyle().Foreground(okColor)
	errStyle    = lipgloss.NewStyle().Foreground(errColor)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1)
)

type entry struct {
	source string
	output string
	isErr  bool
}

type keyMap struct {
	Run  key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Run:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "run block")),
	Quit: key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
}

type replModel struct {
	input       textarea.Model
	sess        *session
	ctx         *runtime.DummyContext
	cfg         config.Config
	history     []entry
	width       int
	height      int
	initialized bool
	quitting    bool
}

func newREPLModel(cfg config.Config) replModel {
	ta := textarea.New()
	ta.Placeholder = "type a statement, ctrl+r to run"
	ta.ShowLineNumbers = false
	ta.Focus()
	ta.SetWidth(70)
	ta.SetHeight(4)

	return replModel{
		input: ta,
		sess:  newSession(),
		ctx:   runtime.NewDummyContext(),
		cfg:   cfg,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 6)
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Run):
			m = m.runBlock()
			return m, nil
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) runBlock() replModel {
	source := m.input.Value()
	if strings.TrimSpace(source) == "" {
		return m
	}

	var tokenTrace strings.Builder
	if m.cfg.EchoTokens {
		echoTokens(&tokenTrace, source)
	}

	m.ctx = runtime.NewDummyContext()
	result, err := m.sess.run(source, m.ctx)

	output := tokenTrace.String() + m.ctx.String()
	if err != nil {
		e := entry{source: source, output: output + err.Error(), isErr: true}
		m.history = append(m.history, e)
		m.input.Reset()
		return m
	}

	if m.cfg.ShowResult && result != nil {
		output += result.String() + "\n"
	}
	m.history = append(m.history, entry{source: source, output: output})
	m.input.Reset()
	return m
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("mython") + " " + mutedStyle.Render(m.cfg.Prompt) + "\n\n")

	for _, e := range m.history {
		b.WriteString(mutedStyle.Render(indent(e.source)) + "\n")
		if e.isErr {
			b.WriteString(errStyle.Render(e.output))
		} else if e.output != "" {
			b.WriteString(okStyle.Render(strings.TrimSuffix(e.output, "\n")))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n" + mutedStyle.Render("ctrl+r run  ctrl+c quit"))

	return b.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func runREPL(cfg config.Config) error {
	p := tea.NewProgram(newREPLModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
