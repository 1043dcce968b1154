// Package tui is the interactive converter: type Ainu in any script and
// watch it in all three.
package tui

import (
	"io"
	"strings"

	"github.com/ainutools/ainconv/internal/transliteration"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const historySize = 5

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Width(10)

	scriptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

var targets = []struct {
	label  string
	script transliteration.Script
}{
	{"Latin", transliteration.Latn},
	{"Katakana", transliteration.Kana},
	{"Cyrillic", transliteration.Cyrl},
}

type Model struct {
	input   textinput.Model
	history []string
	width   int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "aynu itak / アイヌ イタㇰ / айну итак"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	return Model{input: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if text := strings.TrimSpace(m.input.Value()); text != "" {
				m.history = append(m.history, text)
				if len(m.history) > historySize {
					m.history = m.history[len(m.history)-historySize:]
				}
				m.input.SetValue("")
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-20, 20)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Ainu script converter"))
	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(boxStyle.Render(Render(m.input.Value())))
	s.WriteString("\n")

	if len(m.history) > 0 {
		s.WriteString(subtleStyle.Render("history: " + strings.Join(m.history, " · ")))
		s.WriteString("\n")
	}
	s.WriteString(subtleStyle.Render("enter: keep · esc: quit"))
	s.WriteString("\n")

	return s.String()
}

// Render shows text in every script along with its syllables.
func Render(text string) string {
	from := transliteration.Detect(text)

	var s strings.Builder
	s.WriteString(labelStyle.Render("Script"))
	switch from {
	case transliteration.Unknown:
		s.WriteString(subtleStyle.Render("type something"))
		return s.String()
	case transliteration.Mixed:
		s.WriteString(warnStyle.Render("Mixed, convert one script at a time"))
		return s.String()
	}
	s.WriteString(scriptStyle.Render(from.String()))
	s.WriteString("\n")

	for _, t := range targets {
		s.WriteString(labelStyle.Render(t.label))
		s.WriteString(transliteration.ConvertFrom(text, from, t.script))
		s.WriteString("\n")
	}

	latn := text
	if from != transliteration.Latn {
		latn = transliteration.ConvertFrom(text, from, transliteration.Latn)
	}
	words := transliteration.Syllabify(latn)
	syllables := make([]string, len(words))
	for i, w := range words {
		syllables[i] = strings.Join(w, "-")
	}
	s.WriteString(labelStyle.Render("Syllables"))
	s.WriteString(strings.Join(syllables, " "))

	return s.String()
}

// Run blocks until the user quits.
func Run(in io.Reader, out io.Writer) error {
	_, err := tea.NewProgram(New(), tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}
