/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/allbin/go-dcserial/internal/tui/colors"
	"github.com/allbin/go-dcserial/usbserial"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// candidate is one device the configured driver would consider.
type candidate struct {
	Path    string
	VID     string
	PID     string
	Serial  string
	Product string
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidate dive computer cables",
	Long: `List the serial devices the configured driver would pick from.

The first entry is the one every other command opens. With the usb driver
the list is filtered by --vid and --pid; the tty driver lists ttyUSB* and
ttyACM* devices, filtered by the IDs sysfs reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		candidates, err := listCandidates()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing devices: %v\n", err)
			os.Exit(1)
		}

		if len(candidates) == 0 {
			fmt.Println("No dive computer cables found")
			return
		}

		tableFormat, _ := cmd.Flags().GetBool("table")
		if tableFormat {
			fmt.Println(renderTable(candidates))
		} else {
			renderSimple(candidates)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

func listCandidates() ([]candidate, error) {
	switch strings.ToLower(viper.GetString("driver")) {
	case "tty":
		scanner := newScanner()
		ports, err := scanner.ListPorts()
		if err != nil {
			return nil, err
		}
		candidates := make([]candidate, 0, len(ports))
		for _, port := range ports {
			info := scanner.Describe(port)
			candidates = append(candidates, candidate{
				Path:    port,
				VID:     info.VendorID,
				PID:     info.ProductID,
				Serial:  info.SerialNumber,
				Product: info.Product,
			})
		}
		return candidates, nil
	default:
		details, err := usbserial.NewProber(viper.GetString("vid"), viper.GetString("pid")).Candidates()
		if err != nil {
			return nil, err
		}
		candidates := make([]candidate, 0, len(details))
		for _, d := range details {
			candidates = append(candidates, candidate{
				Path:    d.Name,
				VID:     d.VID,
				PID:     d.PID,
				Serial:  d.SerialNumber,
				Product: d.Product,
			})
		}
		return candidates, nil
	}
}

const (
	columnKeyPath    = "path"
	columnKeyVID     = "vid"
	columnKeyPID     = "pid"
	columnKeySerial  = "serial"
	columnKeyProduct = "product"
)

// renderTable renders the candidates as a static bordered table
func renderTable(candidates []candidate) string {
	columns := []table.Column{
		table.NewColumn(columnKeyPath, "Device", 16),
		table.NewColumn(columnKeyVID, "VID", 6),
		table.NewColumn(columnKeyPID, "PID", 6),
		table.NewColumn(columnKeySerial, "Serial", 14),
		table.NewColumn(columnKeyProduct, "Product", 28),
	}

	rows := make([]table.Row, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPath:    c.Path,
			columnKeyVID:     orDash(c.VID),
			columnKeyPID:     orDash(c.PID),
			columnKeySerial:  orDash(c.Serial),
			columnKeyProduct: orDash(c.Product),
		}))
	}

	t := table.New(columns).
		WithRows(rows).
		BorderRounded().
		HeaderStyle(lipgloss.NewStyle().Bold(true).Foreground(colors.Mauve)).
		WithBaseStyle(lipgloss.NewStyle().Foreground(colors.Text).BorderForeground(colors.Surface2))

	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Found %d device(s):", len(candidates)))
	return header + "\n" + t.View()
}

// renderSimple renders the device paths, one per line
func renderSimple(candidates []candidate) {
	for _, c := range candidates {
		fmt.Println(c.Path)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
