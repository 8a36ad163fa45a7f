/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// dtrCmd represents the dtr command
var dtrCmd = &cobra.Command{
	Use:   "dtr <state>",
	Short: "Control DTR (Data Terminal Ready) signal",
	Long: `Set the DTR (Data Terminal Ready) line of the cable.

Many interface cables draw power from DTR or use it to wake the dive
computer. The line is held for --hold before the port is closed.

Examples:
  dcserial dtr high
  dcserial dtr off --hold 2s

Valid states: high, low, on, off, true, false, 1, 0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		state, err := parseSignalState(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		hold, _ := cmd.Flags().GetDuration("hold")
		if err := setSignal(cmd, "DTR", state, hold); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting DTR: %v\n", err)
			os.Exit(1)
		}
	},
}

func formatSignalState(state bool) string {
	if state {
		return "HIGH"
	}
	return "LOW"
}

// setSignal opens the port, drives one control line and holds it.
func setSignal(cmd *cobra.Command, name string, state bool, hold time.Duration) error {
	port, _, err := openPort(cmd.Context())
	if err != nil {
		return err
	}
	defer port.Close()

	switch name {
	case "DTR":
		err = port.SetDTR(state)
	case "RTS":
		err = port.SetRTS(state)
	default:
		err = fmt.Errorf("unknown signal %s", name)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s set to %s\n", name, formatSignalState(state))
	if hold > 0 {
		time.Sleep(hold)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dtrCmd)

	dtrCmd.Flags().Duration("hold", 0, "Keep the port open with the line set for this long")
}
