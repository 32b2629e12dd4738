package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// TUI prompts with bubbletea widgets on a terminal.
type TUI struct {
	opts []tea.ProgramOption
}

// NewTUI creates a TUI prompter reading from in and drawing to out.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{opts: []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}}
}

// Ask shows a text input.
func (t *TUI) Ask(ctx context.Context, title, placeholder string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	result, err := t.run(ctx, inputModel{textInput: ti, title: title})
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", ErrAborted
	}
	return rm.textInput.Value(), nil
}

// Choose shows a vertical menu of options.
func (t *TUI) Choose(ctx context.Context, title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options to choose from")
	}
	result, err := t.run(ctx, choiceModel{title: title, options: options})
	if err != nil {
		return "", err
	}
	rm := result.(choiceModel)
	if rm.aborted {
		return "", ErrAborted
	}
	return rm.options[rm.cursor], nil
}

// run drives model until it quits. A cancelled ctx kills the program and is
// reported as ErrAborted.
func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if ctx.Err() != nil {
		return nil, aborted(ctx)
	}
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.opts...)
	result, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil, fmt.Errorf("%w: %w", ErrAborted, err)
		}
		return nil, err
	}
	return result, nil
}

type inputModel struct {
	textInput textinput.Model
	title     string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return titleStyle.Render(m.title) + "\n" + m.textInput.View() + "\n"
}

type choiceModel struct {
	title   string
	options []string
	cursor  int
	done    bool
	aborted bool
}

func (m choiceModel) Init() tea.Cmd {
	return nil
}

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	default:
		// First letter jumps to the matching option.
		for i, opt := range m.options {
			if strings.HasPrefix(opt, key.String()) {
				m.cursor = i
				break
			}
		}
	}
	return m, nil
}

func (m choiceModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("up/down to move, enter to select, esc to cancel") + "\n")
	return b.String()
}
