package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/prefscan/internal/config"
)

var (
	promptTitleStyle = lipgloss.NewStyle().Bold(true)
	promptLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	promptHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// promptModel is the Bubble Tea model for collecting the two run
// inputs. Values already resolved from flags, env, or file are
// prefilled and just confirmed.
type promptModel struct {
	inputs    []textinput.Model
	focus     int
	done      bool
	cancelled bool
}

func newPromptModel(folder, name string) promptModel {
	fields := make([]textinput.Model, 2)

	fields[0] = textinput.New()
	fields[0].Placeholder = "."
	fields[0].SetValue(folder)
	fields[0].Width = 48
	fields[0].Focus()

	fields[1] = textinput.New()
	fields[1].Placeholder = config.DefaultReportName
	fields[1].SetValue(name)
	fields[1].Width = 48

	return promptModel{inputs: fields}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.focus == len(m.inputs)-1 {
				m.done = true
				return m, tea.Quit
			}
			m.setFocus(m.focus + 1)
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *promptModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return promptTitleStyle.Render("prefscan") + "\n\n" +
		promptLabelStyle.Render("Export folder") + "\n" + m.inputs[0].View() + "\n\n" +
		promptLabelStyle.Render("Report name") + "\n" + m.inputs[1].View() + "\n\n" +
		promptHelpStyle.Render("enter: confirm · tab: next field · esc: cancel") + "\n"
}

// values applies the prompt defaults for fields left blank.
func (m promptModel) values() (string, string) {
	folder := m.inputs[0].Value()
	if folder == "" {
		folder = "."
	}
	name := m.inputs[1].Value()
	if name == "" {
		name = config.DefaultReportName
	}
	return folder, name
}

// promptForInputs runs the interactive form and returns the confirmed
// folder and report name.
func promptForInputs(folder, name string) (string, string, error) {
	final, err := tea.NewProgram(newPromptModel(folder, name)).Run()
	if err != nil {
		return "", "", fmt.Errorf("running prompt: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok || m.cancelled {
		return "", "", fmt.Errorf("cancelled")
	}
	folder, name = m.values()
	return folder, name, nil
}
