/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// rtsCmd represents the rts command
var rtsCmd = &cobra.Command{
	Use:   "rts <state>",
	Short: "Control RTS (Request To Send) signal",
	Long: `Set the RTS (Request To Send) line of the cable.

Some cables switch the dive computer into download mode with RTS. The line
is held for --hold before the port is closed.

Examples:
  dcserial rts high
  dcserial rts low --hold 500ms

Valid states: high, low, on, off, true, false, 1, 0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		state, err := parseSignalState(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		hold, _ := cmd.Flags().GetDuration("hold")
		if err := setSignal(cmd, "RTS", state, hold); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting RTS: %v\n", err)
			os.Exit(1)
		}
	},
}

func parseSignalState(state string) (bool, error) {
	switch strings.ToLower(state) {
	case "high", "on", "true", "1":
		return true, nil
	case "low", "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid state: %s (valid: high, low, on, off, true, false, 1, 0)", state)
	}
}

func init() {
	rootCmd.AddCommand(rtsCmd)

	rtsCmd.Flags().Duration("hold", 0, "Keep the port open with the line set for this long")
}
