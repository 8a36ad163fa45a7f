/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/allbin/go-dcserial"
	"github.com/spf13/cobra"
)

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge [direction]",
	Short: "Discard pending data in the cable",
	Long: `Discard data pending in the cable's hardware buffers.

Purging input also drops anything the adapter has buffered but not yet
delivered.

Examples:
  dcserial purge
  dcserial purge input
  dcserial purge output

Valid directions: input, output, all (default)`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		direction := dcserial.DirectionAll
		if len(args) == 1 {
			d, err := parseDirection(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			direction = d
		}

		port, _, err := openPort(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer port.Close()

		err = port.Purge(direction)
		fmt.Printf("purge %s -> %s\n", direction, formatCode(dcserial.Code(0, err)))
		if err != nil {
			port.Close()
			os.Exit(1)
		}
	},
}

func parseDirection(s string) (dcserial.Direction, error) {
	switch strings.ToLower(s) {
	case "input", "in", "rx":
		return dcserial.DirectionInput, nil
	case "output", "out", "tx":
		return dcserial.DirectionOutput, nil
	case "all", "both":
		return dcserial.DirectionAll, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (valid: input, output, all)", s)
	}
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
