// Package tui holds the interactive prompts for the experiment runner: a
// single-choice list and a validated positive-float input.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrCancelled = errors.New("cancelled by user")

var (
	highlightColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	titleStyle     = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(highlightColor)
	hintStyle      = lipgloss.NewStyle().Faint(true)
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type chooseModel struct {
	title     string
	options   []string
	cursor    int
	choice    string
	cancelled bool
}

func (m *chooseModel) Init() tea.Cmd { return nil }

func (m *chooseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.choice = m.options[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *chooseModel) View() string {
	b := strings.Builder{}
	b.WriteString(titleStyle.Render(m.title) + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter to select, q to cancel") + "\n")
	return b.String()
}

// Choose shows a single-choice list and returns the selected option.
func Choose(title string, options []string) (string, error) {
	m := &chooseModel{title: title, options: options}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return "", err
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.choice, nil
}

type floatModel struct {
	prompt    string
	def       float64
	input     string
	errMsg    string
	value     float64
	cancelled bool
}

func (m *floatModel) Init() tea.Cmd { return nil }

func (m *floatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		text := m.input
		if text == "" {
			m.value = m.def
			return m, tea.Quit
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || v <= 0 {
			m.errMsg = fmt.Sprintf("%q is not a positive number", text)
			m.input = ""
			return m, nil
		}
		m.value = v
		return m, tea.Quit
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		s := key.String()
		if len(s) == 1 && (s[0] == '.' || (s[0] >= '0' && s[0] <= '9')) {
			m.input += s
		}
	}
	return m, nil
}

func (m *floatModel) View() string {
	b := strings.Builder{}
	b.WriteString(titleStyle.Render(m.prompt))
	b.WriteString(hintStyle.Render(fmt.Sprintf(" (default %s)", strconv.FormatFloat(m.def, 'f', -1, 64))))
	b.WriteString(" " + cursorStyle.Render(">") + " " + m.input + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// Float prompts for a positive float, re-prompting until the input parses.
// An empty input takes the default.
func Float(prompt string, def float64) (float64, error) {
	m := &floatModel{prompt: prompt, def: def}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return 0, err
	}
	if m.cancelled {
		return 0, ErrCancelled
	}
	return m.value, nil
}
