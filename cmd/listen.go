/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/allbin/go-dcserial/internal/tui/components"
	"github.com/allbin/go-dcserial/internal/tui/keys"
	"github.com/allbin/go-dcserial/internal/tui/models"
	"github.com/allbin/go-dcserial/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// stopGrace bounds how long quitting waits for a blocked read.
const stopGrace = 250 * time.Millisecond

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Watch what the cable delivers with a real-time display",
	Long: `Open the cable and show every read result in a terminal UI.

Reads are issued back to back with --size bytes requested each time, the
way a decoder polls while downloading. Each line shows the count delivered
against the count requested, or the status code of a failed read.

Example usage:
  dcserial listen
  dcserial listen --size 256 --dtr --rts=false`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		size, _ := cmd.Flags().GetInt("size")
		dtr, _ := cmd.Flags().GetBool("dtr")
		rts, _ := cmd.Flags().GetBool("rts")

		if err := runListenTUI(cmd, size, dtr, rts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().Int("size", 64, "Bytes requested per read")
	listenCmd.Flags().Bool("dtr", true, "DTR level while listening")
	listenCmd.Flags().Bool("rts", false, "RTS level while listening")
}

// listenModel represents the Bubble Tea model for the listen command
type listenModel struct {
	session   *models.Session
	connected bool
	terminal  *components.Terminal
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.ListenKeys
}

func runListenTUI(cmd *cobra.Command, size int, dtr, rts bool) error {
	if size <= 0 {
		return fmt.Errorf("read size must be positive, got %d", size)
	}

	device := "(auto)"
	if candidates, err := listCandidates(); err == nil && len(candidates) > 0 {
		device = candidates[0].Path
	}

	port, line, err := openPort(cmd.Context())
	if err != nil {
		return err
	}
	if err := port.SetDTR(dtr); err != nil {
		port.Close()
		return err
	}
	if err := port.SetRTS(rts); err != nil {
		port.Close()
		return err
	}

	m := &listenModel{
		session:   models.NewSession(size),
		connected: true,
		terminal:  components.NewTerminal(80, 20),
		statusBar: components.NewStatusBar("listen", device),
		help:      help.New(),
		keys:      keys.NewListenKeys(),
	}
	m.statusBar.SetConnectionInfo(&components.ConnectionInfo{Line: line, DTR: dtr, RTS: rts})
	m.statusBar.SetConnected()

	p := tea.NewProgram(m, tea.WithAltScreen())
	m.session.Start(port, p.Send)

	_, err = p.Run()
	if stopErr := m.session.Stop(stopGrace); err == nil {
		err = stopErr
	}
	return err
}

func (m *listenModel) Init() tea.Cmd {
	return nil
}

func (m *listenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Status bar is single line, plus the content border.
		m.terminal.SetSize(msg.Width, msg.Height-2)
		m.statusBar.SetWidth(msg.Width)
		m.session.SetReady(true)
		return m, m.terminal.Update(msg)

	case models.ConnectionStatusMsg:
		m.connected = msg.Connected
		if !msg.Connected {
			m.statusBar.SetDisconnected(msg.Error)
		}

	case components.ReadResultMsg:
		m.statusBar.Record(msg)
		m.session.AddResult(msg)
		if !m.session.IsPaused() {
			m.terminal.AddMessage(msg)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			m.session.ClearResults()
			m.statusBar.ResetCounters()
			m.terminal.Clear()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Pause):
			if !m.session.TogglePause() {
				m.terminal.Refresh(m.session.Results())
			}

		case key.Matches(msg, m.keys.ToggleHex):
			m.terminal.ToggleHex()
			m.terminal.Refresh(m.session.Results())

		case key.Matches(msg, m.keys.ToggleASCII):
			m.terminal.ToggleASCII()
			m.terminal.Refresh(m.session.Results())
		}
	}

	return m, nil
}

func (m *listenModel) View() string {
	content := "Initializing..."
	if m.session.IsReady() {
		content = m.terminal.View()
	}

	mode := "LISTEN"
	if m.session.IsPaused() {
		mode = "PAUSED"
	}
	statusBar := m.statusBar.View(mode, m.connected, time.Now().Format("15:04:05"))

	sections := []string{styles.ContentBorderStyle.Render(content)}
	if m.help.ShowAll {
		sections = append(sections, styles.HelpStyle.Render(m.help.View(m.keys)))
	}
	sections = append(sections, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
