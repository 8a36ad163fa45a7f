package components

import (
	"fmt"

	"github.com/allbin/go-dcserial"
	"github.com/allbin/go-dcserial/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

// ConnectionInfo is what the status bar shows about the open port.
type ConnectionInfo struct {
	Line dcserial.LineConfig
	DTR  bool
	RTS  bool
}

type StatusBar struct {
	title          string
	device         string
	status         string
	err            error
	width          int
	connectionInfo *ConnectionInfo

	reads   int
	bytes   int
	lastErr int
}

func NewStatusBar(title, device string) *StatusBar {
	return &StatusBar{
		title:  title,
		device: device,
		status: "Initializing...",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetDevice(device string) {
	sb.device = device
}

func (sb *StatusBar) SetConnectionInfo(info *ConnectionInfo) {
	sb.connectionInfo = info
}

func (sb *StatusBar) SetConnecting() {
	sb.status = "Connecting..."
	sb.err = nil
}

func (sb *StatusBar) SetConnected() {
	sb.status = "Connected"
	sb.err = nil
}

func (sb *StatusBar) SetDisconnected(err error) {
	sb.status = "Disconnected"
	sb.err = err
}

// Record counts one read result.
func (sb *StatusBar) Record(msg ReadResultMsg) {
	sb.reads++
	if msg.Code < 0 {
		sb.lastErr = msg.Code
		return
	}
	sb.bytes += msg.Code
}

func (sb *StatusBar) Counters() (reads, bytes, lastErr int) {
	return sb.reads, sb.bytes, sb.lastErr
}

func (sb *StatusBar) ResetCounters() {
	sb.reads, sb.bytes, sb.lastErr = 0, 0, 0
}

func signal(name string, on bool) string {
	if on {
		return name + ":↑"
	}
	return name + ":↓"
}

// View renders the single line bar: mode, device and state on the left,
// line settings, counters and the clock on the right.
func (sb *StatusBar) View(mode string, connected bool, timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	modeView := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(colors.Blue).
		Bold(true).
		Padding(0, 1).
		Render(mode)

	device := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1).
		Render(sb.device)

	var indicator lipgloss.Style
	var symbol string
	switch {
	case sb.err != nil:
		indicator, symbol = lipgloss.NewStyle().Foreground(colors.Red), "✗"
	case connected:
		indicator, symbol = lipgloss.NewStyle().Foreground(colors.Green), "●"
	case sb.status == "Connecting...":
		indicator, symbol = lipgloss.NewStyle().Foreground(colors.Yellow), "○"
	default:
		indicator, symbol = lipgloss.NewStyle().Foreground(colors.Red), "○"
	}

	divider := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1).
		Render("│")

	details := "⚡ " + sb.title
	if sb.connectionInfo != nil {
		details = fmt.Sprintf("⚡ %s %s %s",
			sb.connectionInfo.Line,
			signal("DTR", sb.connectionInfo.DTR),
			signal("RTS", sb.connectionInfo.RTS))
	}
	detailsView := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1).
		Render(details)

	counters := fmt.Sprintf("%d reads %d B", sb.reads, sb.bytes)
	countersStyle := lipgloss.NewStyle().Foreground(colors.Subtext1).Padding(0, 1)
	if sb.lastErr < 0 {
		counters += fmt.Sprintf(" last %d", sb.lastErr)
		countersStyle = countersStyle.Foreground(colors.Peach)
	}

	clock := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1).
		Render(timestamp)

	left := lipgloss.JoinHorizontal(lipgloss.Left, modeView, device, indicator.Render(symbol), divider)
	right := lipgloss.JoinHorizontal(lipgloss.Left, detailsView, divider, countersStyle.Render(counters), divider, clock)

	spacerWidth := terminalWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, left, spacer, right))
}
