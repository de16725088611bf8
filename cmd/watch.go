package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dugoutlab/dugout/internal/sim"
)

var (
	watchTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1E6B3A")).
			Padding(0, 1).
			MarginBottom(1)

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F2C14E"))

	playBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2E8B57")).
			Padding(0, 1)

	watchHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))
)

type watchModel struct {
	result   *sim.GameResult
	viewport viewport.Model
	cursor   int // plays revealed so far
	width    int
	height   int
	done     bool
}

func newWatchModel(result *sim.GameResult) watchModel {
	vp := viewport.New(0, 0)
	vp.SetContent("Press space to start the game.")
	return watchModel{result: result, viewport: vp}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "n", "j", "enter":
			if m.cursor < len(m.result.Log) {
				m.cursor++
				m.refresh()
			} else {
				m.done = true
			}
		case "b", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
		case "e":
			m.cursor = len(m.result.Log)
			m.refresh()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *watchModel) refresh() {
	var sb strings.Builder
	for _, p := range m.result.Log[:m.cursor] {
		sb.WriteString(p.Line())
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m watchModel) View() string {
	title := watchTitleStyle.Render(fmt.Sprintf(" %s @ %s  (seed %d) ", m.result.Away, m.result.Home, m.result.Seed))

	score := "0 - 0"
	state := "pregame"
	if m.cursor > 0 {
		p := m.result.Log[m.cursor-1]
		score = fmt.Sprintf("%s %d - %s %d", m.result.Away, p.AwayScore, m.result.Home, p.HomeScore)
		state = fmt.Sprintf("%s%d, %d out, bases %s", p.Half.Letter(), p.Inning, p.OutsAfter, p.Resolution.Bases)
		if p.WalkOff {
			state += "  WALK-OFF"
		}
	}
	if m.cursor == len(m.result.Log) {
		state += "  FINAL"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, scoreStyle.Render(score), "   ", state)
	help := watchHelpStyle.Render("space/n: next play  b: back  e: end  q: quit")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n", title, header, playBoxStyle.Render(m.viewport.View()), help)
}

var watchCmd = &cobra.Command{
	Use:   "watch [away] [home]",
	Short: "Replay a simulated game play by play in the terminal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetInt64("seed")

		cfg, err := buildConfig(cmd, args[0], args[1], seed)
		if err != nil {
			return err
		}
		game, err := sim.New(cfg)
		if err != nil {
			return err
		}
		result, err := game.Run()
		if err != nil {
			return err
		}

		p := tea.NewProgram(newWatchModel(result), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Int64("seed", 1, "Simulation seed (must be positive)")
}
