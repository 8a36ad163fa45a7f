/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display the device and settings other commands will use",
	Long: `Open the first matching cable with the configured settings and show
what the adapter reports about it.

For USB devices this includes the vendor/product IDs, serial number and
product string reported by the enumerator.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		candidates, err := listCandidates()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing devices: %v\n", err)
			os.Exit(1)
		}
		if len(candidates) == 0 {
			fmt.Fprintln(os.Stderr, "No dive computer cables found")
			os.Exit(1)
		}

		c := candidates[0]
		fmt.Printf("Device Information: %s\n\n", c.Path)
		if c.VID != "" || c.PID != "" {
			fmt.Printf("  Vendor ID:    %s\n", c.VID)
			fmt.Printf("  Product ID:   %s\n", c.PID)
		}
		if c.Serial != "" {
			fmt.Printf("  Serial:       %s\n", c.Serial)
		}
		if c.Product != "" {
			fmt.Printf("  Product:      %s\n", c.Product)
		}

		port, line, err := openPort(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer port.Close()

		fmt.Println("\nAdapter:")
		fmt.Printf("  Line:         %s\n", line)
		fmt.Printf("  Timeout:      %v\n", port.Timeout())
		fmt.Printf("  Read timeout: %v\n", port.ReadHonorsTimeout())
		fmt.Printf("  Buffered:     %d\n", port.Buffered())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
