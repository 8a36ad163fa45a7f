package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/allbin/go-dcserial"
	"github.com/allbin/go-dcserial/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

// ReadResultMsg carries the outcome of one Read call on the port. Code uses
// the callback convention: a byte count when non-negative, a status otherwise.
type ReadResultMsg struct {
	Timestamp time.Time
	Requested int
	Data      []byte
	Code      int
}

type DisplayMode struct {
	ShowHex   bool
	ShowASCII bool
}

type DataFormatter struct {
	mode DisplayMode
}

func NewDataFormatter(showHex, showASCII bool) *DataFormatter {
	return &DataFormatter{
		mode: DisplayMode{
			ShowHex:   showHex,
			ShowASCII: showASCII,
		},
	}
}

func (df *DataFormatter) GetDisplayMode() DisplayMode {
	return df.mode
}

func (df *DataFormatter) ToggleHex() {
	df.mode.ShowHex = !df.mode.ShowHex
}

func (df *DataFormatter) ToggleASCII() {
	df.mode.ShowASCII = !df.mode.ShowASCII
}

// FormatMessage renders one read as "[time] ↙ RX n/req: payload", or the
// status name for a failed read.
func (df *DataFormatter) FormatMessage(msg ReadResultMsg) string {
	timestamp := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Render(fmt.Sprintf("[%s]", msg.Timestamp.Format("15:04:05.000")))

	if msg.Code < 0 {
		indicator := lipgloss.NewStyle().Foreground(colors.Red).Bold(true).Render("✗ RX")
		return fmt.Sprintf("%s %s: %d %s", timestamp, indicator, msg.Code, dcserial.Status(msg.Code))
	}

	indicator := lipgloss.NewStyle().
		Foreground(colors.Sky).
		Bold(true).
		Render(fmt.Sprintf("↙ RX %d/%d", msg.Code, msg.Requested))

	var parts []string
	if df.mode.ShowHex {
		parts = append(parts, fmt.Sprintf("HEX: % X", msg.Data))
	}
	if df.mode.ShowASCII {
		parts = append(parts, "ASCII: "+printable(msg.Data))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("BYTES: %d", len(msg.Data)))
	}

	return fmt.Sprintf("%s %s: %s", timestamp, indicator, strings.Join(parts, "  "))
}

func (df *DataFormatter) FormatMessages(messages []ReadResultMsg) []string {
	formatted := make([]string, len(messages))
	for i, msg := range messages {
		formatted[i] = df.FormatMessage(msg)
	}
	return formatted
}

// printable replaces everything outside printable ASCII with a dot so no
// control sequence reaches the terminal.
func printable(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if c >= 32 && c <= 126 {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
