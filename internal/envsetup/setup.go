// envsetup provides a lightweight .env configuration wizard for the bot.
// It runs on first bot startup when neither a .env file nor a Discord
// token is present.
package envsetup

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type step int

const (
	stepWelcome step = iota
	stepDiscord
	stepGuild
	stepDatabase
	stepConfirm
)

const defaultDatabaseURL = "sqlite://ainconv.db"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type model struct {
	path         string
	step         step
	discordToken string
	guildID      string
	databaseURL  string
	input        string
	saved        bool
	err          error
}

func newModel(path string) model {
	return model{path: path, step: stepWelcome}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEnter:
			return m.handleEnter()

		case tea.KeyBackspace:
			if len(m.input) > 0 {
				r := []rune(m.input)
				m.input = string(r[:len(r)-1])
			}

		case tea.KeyRunes:
			m.input += string(msg.Runes)

		case tea.KeySpace:
			m.input += " "
		}
	}
	return m, nil
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	m.err = nil
	value := strings.TrimSpace(m.input)

	switch m.step {
	case stepWelcome:
		m.step = stepDiscord

	case stepDiscord:
		if value == "" {
			m.err = errors.New("Discord token is required")
			return m, nil
		}
		m.discordToken = value
		m.step = stepGuild

	case stepGuild:
		m.guildID = value
		m.step = stepDatabase

	case stepDatabase:
		switch strings.ToLower(value) {
		case "":
			m.databaseURL = defaultDatabaseURL
		case "none", "-":
			m.databaseURL = ""
		default:
			m.databaseURL = value
		}
		m.step = stepConfirm

	case stepConfirm:
		switch strings.ToLower(value) {
		case "", "y", "yes":
			if err := m.writeEnvFile(); err != nil {
				m.err = err
				return m, nil
			}
			m.saved = true
			return m, tea.Quit
		case "n", "no":
			m = newModel(m.path)
		default:
			m.err = errors.New("Please answer y or n")
			return m, nil
		}
	}

	m.input = ""
	return m, nil
}

func (m model) writeEnvFile() error {
	var s strings.Builder
	fmt.Fprintf(&s, "DISCORD_TOKEN=%s\n", m.discordToken)
	if m.guildID != "" {
		fmt.Fprintf(&s, "GUILD_ID=%s\n", m.guildID)
	}
	if m.databaseURL != "" {
		fmt.Fprintf(&s, "DATABASE_URL=%s\n", m.databaseURL)
	}
	return os.WriteFile(m.path, []byte(s.String()), 0600)
}

func (m model) View() string {
	var s strings.Builder

	switch m.step {
	case stepWelcome:
		s.WriteString(titleStyle.Render("ainconv bot - Env Setup"))
		s.WriteString("\n\n")
		s.WriteString("This wizard will help you configure the bot.\n")
		s.WriteString("You'll need a Discord bot token. A test server ID and a lexicon\n")
		s.WriteString("database are optional.\n\n")
		s.WriteString(dimStyle.Render("Press Enter to continue, Ctrl+C to exit"))

	case stepDiscord:
		s.WriteString(titleStyle.Render("Step 1: Discord Bot Token"))
		s.WriteString("\n\n")
		s.WriteString("  1. Go to " + linkStyle.Render("https://discord.com/developers/applications") + "\n")
		s.WriteString("  2. Create a new application (or select existing)\n")
		s.WriteString("  3. Go to the Bot section and click 'Reset Token'\n\n")
		s.WriteString(labelStyle.Render("Paste your Discord token here:"))
		s.WriteString("\n> " + inputStyle.Render(maskToken(m.input)))

	case stepGuild:
		s.WriteString(titleStyle.Render("Step 2: Guild ID (optional)"))
		s.WriteString("\n\n")
		s.WriteString("Commands register instantly in a single guild; leave empty to\n")
		s.WriteString("register them globally.\n\n")
		s.WriteString(labelStyle.Render("Guild ID:"))
		s.WriteString("\n> " + inputStyle.Render(m.input))

	case stepDatabase:
		s.WriteString(titleStyle.Render("Step 3: Lexicon Database"))
		s.WriteString("\n\n")
		s.WriteString("The lexicon enables the /lookup command.\n\n")
		s.WriteString(labelStyle.Render("Database URL [" + defaultDatabaseURL + "], or 'none':"))
		s.WriteString("\n> " + inputStyle.Render(m.input))

	case stepConfirm:
		s.WriteString(titleStyle.Render("Configuration Complete"))
		s.WriteString("\n\n")
		s.WriteString("  Discord:  " + successStyle.Render(maskToken(m.discordToken)) + "\n")
		s.WriteString("  Guild:    " + successStyle.Render(orNone(m.guildID)) + "\n")
		s.WriteString("  Lexicon:  " + successStyle.Render(orNone(m.databaseURL)) + "\n\n")
		s.WriteString(labelStyle.Render("Save this configuration to " + m.path + "? [Y/n]:"))
		s.WriteString("\n> " + inputStyle.Render(m.input))
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	s.WriteString("\n")
	return s.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// Run starts the setup wizard and reports whether the configuration was
// written to path.
func Run(path string) (bool, error) {
	finalModel, err := tea.NewProgram(newModel(path)).Run()
	if err != nil {
		return false, err
	}
	return finalModel.(model).saved, nil
}

// NeedsSetup reports whether the env file at path is missing.
func NeedsSetup(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}
