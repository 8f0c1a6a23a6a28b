package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/hashclass/hashclass"
	"golang.org/x/term"
)

var (
	accentColor    = lipgloss.Color("#8B5CF6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(successColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(highlightColor)
	helpDescStyle = lipgloss.NewStyle().Foreground(mutedColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

var replKeywords = []string{
	"class", "extends", "static", "get", "set", "constructor", "new", "super",
	"this", "function", "return", "if", "else", "while", "let", "const",
	"true", "false", "null", "undefined", "typeof", "in",
}

var replBuiltins = []string{"print", "assert", "assertEqual", "assertThrows", "Object"}

type transcriptEntry struct {
	input  string
	output string
	result string
	isErr  bool
}

type replModel struct {
	input       textinput.Model
	engine      *hashclass.Engine
	globals     map[string]hashclass.Value
	transcript  []transcriptEntry
	submitted   []string
	recallIdx   int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type replKeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Submit     key.Binding
	Quit       key.Binding
	Clear      key.Binding
	Complete   key.Binding
	ToggleVars key.Binding
	ToggleHelp key.Binding
}

var replKeys = replKeyMap{
	Prev:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
	Next:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	ToggleVars: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "vars")),
	ToggleHelp: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "class Point { #x = 1; x() { return this.#x } }"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "hashclass> "

	return replModel{
		input:     ti,
		engine:    hashclass.MustNewEngine(hashclass.Config{}),
		globals:   make(map[string]hashclass.Value),
		recallIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-14, 10)
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, replKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, replKeys.Clear):
			m.transcript = nil
			return m, nil
		case key.Matches(msg, replKeys.ToggleVars):
			m.showVars = !m.showVars
			return m, nil
		case key.Matches(msg, replKeys.ToggleHelp):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, replKeys.Prev):
			return m.recall(-1), nil
		case key.Matches(msg, replKeys.Next):
			return m.recall(1), nil
		case key.Matches(msg, replKeys.Complete):
			return m.complete(), nil
		case key.Matches(msg, replKeys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	m.input.SetValue("")
	m.recallIdx = -1

	if strings.HasPrefix(line, ":") {
		return m.command(line)
	}

	m.transcript = append(m.transcript, m.evaluate(line))
	m.submitted = append(m.submitted, line)
	return m, nil
}

func (m replModel) recall(delta int) replModel {
	if len(m.submitted) == 0 {
		return m
	}
	switch {
	case delta < 0 && m.recallIdx == -1:
		m.recallIdx = len(m.submitted) - 1
	case delta < 0 && m.recallIdx > 0:
		m.recallIdx--
	case delta > 0 && m.recallIdx == -1:
		return m
	case delta > 0 && m.recallIdx >= len(m.submitted)-1:
		m.recallIdx = -1
		m.input.SetValue("")
		return m
	case delta > 0:
		m.recallIdx++
	}
	m.input.SetValue(m.submitted[m.recallIdx])
	m.input.CursorEnd()
	return m
}

func (m replModel) command(line string) (tea.Model, tea.Cmd) {
	name := strings.Fields(line)[0]
	switch name {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":clear", ":c":
		m.transcript = nil
	case ":reset", ":r":
		m.globals = make(map[string]hashclass.Value)
		m.transcript = append(m.transcript, transcriptEntry{input: line, result: "bindings cleared"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.transcript = append(m.transcript, transcriptEntry{
			input:  line,
			result: fmt.Sprintf("unknown command %s", name),
			isErr:  true,
		})
	}
	return m, nil
}

// evaluate runs line as a complete program. Top-level bindings are written
// back into m.globals so later inputs can use them.
func (m replModel) evaluate(line string) transcriptEntry {
	entry := transcriptEntry{input: line}
	script, err := m.engine.Compile(line)
	if err != nil {
		entry.result = err.Error()
		entry.isErr = true
		return entry
	}

	var out bytes.Buffer
	result, err := script.Run(context.Background(), hashclass.CallOptions{
		Globals:       m.globals,
		ExportGlobals: true,
		Output:        &out,
	})
	entry.output = strings.TrimRight(out.String(), "\n")
	if err != nil {
		entry.result = err.Error()
		entry.isErr = true
		return entry
	}
	m.globals["_"] = result
	entry.result = result.String()
	return entry
}

func (m replModel) complete() replModel {
	value := m.input.Value()
	words := strings.Fields(value)
	if len(words) == 0 || strings.HasSuffix(value, " ") {
		return m
	}
	last := words[len(words)-1]

	var candidates []string
	for _, group := range [][]string{replBuiltins, replKeywords, m.globalNames()} {
		for _, word := range group {
			if strings.HasPrefix(word, last) && !slices.Contains(candidates, word) {
				candidates = append(candidates, word)
			}
		}
	}

	switch len(candidates) {
	case 0:
	case 1:
		m.input.SetValue(strings.TrimSuffix(value, last) + candidates[0])
		m.input.CursorEnd()
	default:
		m.transcript = append(m.transcript, transcriptEntry{result: "completions: " + strings.Join(candidates, ", ")})
	}
	return m
}

func (m replModel) globalNames() []string {
	names := make([]string, 0, len(m.globals))
	for name := range m.globals {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (m replModel) View() string {
	if m.quitting {
		return mutedStyle.Render("bye") + "\n"
	}
	if !m.initialized {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("HashClass REPL") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reserved := 8
	if m.showHelp {
		reserved += 10
	}
	if m.showVars {
		reserved += len(m.globals) + 3
	}
	start := 0
	if visible := m.height - reserved; visible > 0 && len(m.transcript) > visible {
		start = len(m.transcript) - visible
	}
	for _, entry := range m.transcript[start:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.output != "" {
			for _, line := range strings.Split(entry.output, "\n") {
				b.WriteString("    " + outputStyle.Render(line) + "\n")
			}
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.result) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.result) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(m.varsPanel() + "\n")
	}
	if m.showHelp {
		b.WriteString(helpPanel() + "\n")
	}

	b.WriteString(m.input.View() + "\n\n")
	for _, binding := range []key.Binding{replKeys.ToggleHelp, replKeys.ToggleVars, replKeys.Clear, replKeys.Quit} {
		h := binding.Help()
		b.WriteString(helpKeyStyle.Render(h.Key) + helpDescStyle.Render(" "+h.Desc+"  "))
	}
	return b.String()
}

func (m replModel) varsPanel() string {
	if len(m.globals) == 0 {
		return panelStyle.Render(mutedStyle.Render("no bindings yet"))
	}
	nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Bindings")}
	for _, name := range m.globalNames() {
		lines = append(lines, fmt.Sprintf("  %s = %s", nameStyle.Render(name), m.globals[name].String()))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func helpPanel() string {
	rows := [][2]string{
		{"↑/↓", "recall previous inputs"},
		{"tab", "complete a keyword or binding"},
		{"enter", "evaluate the input"},
		{":help", "toggle this panel"},
		{":vars", "toggle the bindings panel"},
		{":clear", "clear the transcript"},
		{":reset", "drop every binding"},
		{":quit", "leave the REPL"},
	}
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help")}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", row[0])),
			helpDescStyle.Render(row[1])))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("hashclass repl: stdin is not a terminal")
	}
	_, err := tea.NewProgram(newREPLModel(), tea.WithAltScreen()).Run()
	return err
}
