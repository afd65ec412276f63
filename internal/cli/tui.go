package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompt styles
var (
	promptSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	promptNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	promptDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Prompter asks the user questions during an interactive run.
type Prompter interface {
	// Confirm asks a yes/no question. Yes is the default answer.
	Confirm(title string) (bool, error)
	// Input asks for a line of text, returning def when nothing is entered.
	Input(title, def string) (string, error)
}

// =============================================================================
// ConfirmModel - Yes/No prompt
// =============================================================================

// ConfirmModel is the bubbletea model for a yes/no question.
type ConfirmModel struct {
	Title    string
	Value    bool
	Done     bool
	Canceled bool
}

// NewConfirmModel creates a confirm prompt that defaults to Yes.
func NewConfirmModel(title string) ConfirmModel {
	return ConfirmModel{Title: title, Value: true}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.Canceled = true
		return m, tea.Quit
	case "y", "Y", "1":
		m.Value, m.Done = true, true
		return m, tea.Quit
	case "n", "N", "0":
		m.Value, m.Done = false, true
		return m, tea.Quit
	case "left", "right", "h", "l", "tab":
		m.Value = !m.Value
	case "enter":
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	yes, no := promptNormalStyle.Render(" Yes "), promptNormalStyle.Render(" No ")
	if m.Value {
		yes = promptSelectedStyle.Render("[Yes]")
	} else {
		no = promptSelectedStyle.Render("[No]")
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(" ")
	b.WriteString(yes + " " + no)
	if !m.Done && !m.Canceled {
		b.WriteString("  " + promptDimStyle.Render("y/n  ⏎ confirm"))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// InputModel - Single line text prompt
// =============================================================================

// InputModel is the bubbletea model for a single line of text.
type InputModel struct {
	Title    string
	Default  string
	Value    string
	Done     bool
	Canceled bool
}

// NewInputModel creates a text prompt with a default value.
func NewInputModel(title, def string) InputModel {
	return InputModel{Title: title, Default: def}
}

// Result is the entered text, or the default when nothing was entered.
func (m InputModel) Result() string {
	if v := strings.TrimSpace(m.Value); v != "" {
		return v
	}
	return m.Default
}

func (m InputModel) Init() tea.Cmd {
	return nil
}

func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Canceled = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.Done = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.Value); len(r) > 0 {
			m.Value = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Value += " "
	case tea.KeyRunes:
		m.Value += string(key.Runes)
	}
	return m, nil
}

func (m InputModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(" ")
	switch {
	case m.Value != "":
		b.WriteString(promptNormalStyle.Render(m.Value))
	case m.Default != "":
		b.WriteString(promptDimStyle.Render(m.Default))
	}
	if !m.Done && !m.Canceled {
		b.WriteString(promptSelectedStyle.Render("▏"))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Terminal Prompter
// =============================================================================

// teaPrompter runs each question as a bubbletea program.
type teaPrompter struct{}

func (teaPrompter) Confirm(title string) (bool, error) {
	final, err := tea.NewProgram(NewConfirmModel(title)).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	if !ok || m.Canceled {
		return false, context.Canceled
	}
	return m.Value, nil
}

func (teaPrompter) Input(title, def string) (string, error) {
	final, err := tea.NewProgram(NewInputModel(title, def)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(InputModel)
	if !ok || m.Canceled {
		return "", context.Canceled
	}
	return m.Result(), nil
}
