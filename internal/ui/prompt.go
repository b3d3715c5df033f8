package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/folder-organizer/internal/security"
	"github.com/fenilsonani/folder-organizer/internal/ui/styles"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user leaves the prompt without a path
var ErrCancelled = errors.New("prompt cancelled")

// Validator checks a cleaned path and returns the form to use
type Validator func(path string) (string, error)

// PromptModel asks for a directory until the validator accepts one
type PromptModel struct {
	input     textinput.Model
	validate  Validator
	result    string
	lastError string
	cancelled bool
}

// NewPromptModel creates the prompt model
func NewPromptModel(validate Validator) PromptModel {
	ti := textinput.New()
	ti.Placeholder = "/path/to/folder"
	ti.Prompt = "📂 "
	ti.PromptStyle = styles.PromptStyle
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return PromptModel{
		input:    ti,
		validate: validate,
	}
}

// Init initializes the prompt
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			path := security.CleanInput(m.input.Value())
			validated, err := m.validate(path)
			if err != nil {
				m.lastError = err.Error()
				m.input.SetValue("")
				return m, nil
			}
			m.result = validated
			m.lastError = ""
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m PromptModel) View() string {
	if m.cancelled {
		return ""
	}
	if m.result != "" {
		return styles.SuccessStyle.Render("✅ Folder selected: ") + styles.FilePathStyle.Render(m.result) + "\n"
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🚀 Folder organizer"))
	b.WriteString("\n")
	b.WriteString("Enter the folder to organize:\n")
	b.WriteString(styles.PanelStyle.Render(m.input.View()))
	b.WriteString("\n")

	if m.lastError != "" {
		b.WriteString(styles.ErrorStyle.Render("❌ " + m.lastError + ", please try again"))
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("enter to confirm • esc to cancel"))
	b.WriteString("\n")

	return b.String()
}

// Result returns the accepted path, if any
func (m PromptModel) Result() string {
	return m.result
}

// Cancelled reports whether the user quit the prompt
func (m PromptModel) Cancelled() bool {
	return m.cancelled
}

// RunPrompt runs the interactive prompt as a Bubble Tea program
func RunPrompt(validate Validator) (string, error) {
	p := tea.NewProgram(NewPromptModel(validate))

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running prompt: %w", err)
	}

	m, ok := final.(PromptModel)
	if !ok || m.Cancelled() || m.Result() == "" {
		return "", ErrCancelled
	}
	return m.Result(), nil
}

// LinePrompt asks for a directory over plain line I/O, repeating until the
// validator accepts an answer. EOF cancels.
func LinePrompt(r io.Reader, w io.Writer, validate Validator) (string, error) {
	scanner := bufio.NewScanner(r)

	for {
		fmt.Fprint(w, "📂 Enter the folder to organize: ")

		if !scanner.Scan() {
			fmt.Fprintln(w)
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", ErrCancelled
		}

		path := security.CleanInput(scanner.Text())
		validated, err := validate(path)
		if err != nil {
			fmt.Fprintf(w, "❌ %v, please try again\n", err)
			continue
		}
		return validated, nil
	}
}

// PromptForDirectory uses the interactive prompt on a terminal and the line
// prompt otherwise
func PromptForDirectory(validate Validator) (string, error) {
	if IsTerminal(os.Stdin) && IsTerminal(os.Stdout) {
		return RunPrompt(validate)
	}
	return LinePrompt(os.Stdin, os.Stdout, validate)
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
