/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/allbin/go-dcserial"
	"github.com/allbin/go-dcserial/internal/tui/styles"
	"github.com/spf13/cobra"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [data]",
	Short: "Write a command to the cable and read the reply",
	Long: `Write bytes to the dive computer and read back the reply through the
same callbacks a decoder uses. Every result is printed in the callback
convention: a byte count, or a negative status code.

Data can be provided as:
- Command line argument: dcserial send --hex "A5 01"
- From stdin (pipe): printf 'M' | dcserial send
- Interactive mode: dcserial send (prompts for input)

Example usage:
  dcserial send --hex 0xA5 --read 64
  dcserial send --hex "50 51" --read 32 --reads 4 --purge
  dcserial send "HELLO" --newline`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var data string
		if len(args) == 1 {
			data = args[0]
		} else {
			input, err := readInput()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
				os.Exit(1)
			}
			data = input
		}

		addNewline, _ := cmd.Flags().GetBool("newline")
		hexMode, _ := cmd.Flags().GetBool("hex")
		readSize, _ := cmd.Flags().GetInt("read")
		reads, _ := cmd.Flags().GetInt("reads")
		purgeFirst, _ := cmd.Flags().GetBool("purge")

		payload := []byte(data)
		if hexMode {
			decoded, err := parseHexString(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid hex data: %v\n", err)
				os.Exit(1)
			}
			payload = decoded
		} else if addNewline {
			payload = append(payload, '\n')
		}

		if err := runSend(cmd.Context(), payload, purgeFirst, readSize, reads); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolP("newline", "n", false, "Add newline character to the end of text data")
	sendCmd.Flags().BoolP("hex", "x", false, "Interpret data as hexadecimal (e.g. 'A5 01' or '0xA501')")
	sendCmd.Flags().IntP("read", "r", 0, "Bytes to request per read after writing (0 = no read)")
	sendCmd.Flags().Int("reads", 1, "Number of read calls to make")
	sendCmd.Flags().BoolP("purge", "p", false, "Purge both directions before writing")
}

// readInput takes data from a pipe, or prompts for one line.
func readInput() (string, error) {
	stat, err := os.Stdin.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		piped, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(piped), "\r\n"), nil
	}

	fmt.Print(styles.InfoStyle.Render("Enter data to send: "))
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	return "", scanner.Err()
}

func parseHexString(hexStr string) ([]byte, error) {
	hexStr = strings.ReplaceAll(hexStr, " ", "")
	hexStr = strings.ReplaceAll(hexStr, "0x", "")
	hexStr = strings.ReplaceAll(hexStr, "0X", "")

	if len(hexStr)%2 != 0 {
		return nil, fmt.Errorf("hex string must have even length")
	}

	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return data, nil
}

// formatCode renders a callback result with its status name when negative.
func formatCode(code int) string {
	if code < 0 {
		return styles.CodeStyle(code).Render(fmt.Sprintf("%d (%s)", code, dcserial.Status(code)))
	}
	return styles.CodeStyle(code).Render(fmt.Sprintf("%d", code))
}

func runSend(ctx context.Context, payload []byte, purgeFirst bool, readSize, reads int) error {
	port, line, err := openPort(ctx)
	if err != nil {
		return err
	}
	cb := dcserial.NewCallbacks(port)
	defer cb.Close()

	fmt.Printf("%s Opened at %s\n", styles.SuccessStyle.Render("✓"), line)

	if purgeFirst {
		fmt.Printf("purge %-6s -> %s\n", dcserial.DirectionAll, formatCode(cb.Purge(dcserial.DirectionAll)))
	}

	code := cb.Write(payload)
	fmt.Printf("write %-6d -> %s  % X\n", len(payload), formatCode(code), payload)
	if code < 0 {
		return dcserial.Status(code)
	}

	if readSize <= 0 {
		return nil
	}

	buf := make([]byte, readSize)
	for i := 1; i <= reads; i++ {
		code := cb.Read(buf)
		if code < 0 {
			fmt.Printf("read  %-6d -> %s\n", readSize, formatCode(code))
			return dcserial.Status(code)
		}
		fmt.Printf("read  %-6d -> %s  % X  (%d buffered)\n", readSize, formatCode(code), buf[:code], port.Buffered())
	}
	return nil
}
