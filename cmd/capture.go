/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture <output-file>",
	Short: "Capture cable data to a file",
	Long: `Capture what the dive computer sends to a file for later decoding.

Data is read in --size requests through the buffered adapter and appended
to the output file. Runs until --reads requests have completed, a read
fails, or the capture is interrupted (Ctrl+C).

Example usage:
  dcserial capture dump.bin
  dcserial capture dump.bin --size 256 --reads 100
  dcserial capture dump.bin --console`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		size, _ := cmd.Flags().GetInt("size")
		reads, _ := cmd.Flags().GetInt("reads")
		showConsole, _ := cmd.Flags().GetBool("console")

		if err := runCapture(cmd.Context(), args[0], size, reads, showConsole); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().Int("size", 64, "Bytes requested per read")
	captureCmd.Flags().Int("reads", 0, "Stop after this many reads (0 = until interrupted)")
	captureCmd.Flags().BoolP("console", "c", false, "Also print captured bytes as hex on the console")
}

func runCapture(ctx context.Context, outputPath string, size, reads int, showConsole bool) error {
	if size <= 0 {
		return fmt.Errorf("read size must be positive, got %d", size)
	}

	port, line, err := openPort(ctx)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		port.Close()
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer file.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Capturing at %s to %s\n", line, outputPath)
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop\n\n")

	var captured atomic.Int64
	startTime := time.Now()
	done := make(chan error, 1)

	// The port belongs to this goroutine; a read blocked on a silent line is
	// abandoned on interrupt and released with the process.
	go func() {
		defer port.Close()

		buffer := make([]byte, size)
		for i := 0; reads == 0 || i < reads; i++ {
			if ctx.Err() != nil {
				done <- nil
				return
			}
			n, err := port.Read(buffer)
			if err != nil {
				done <- fmt.Errorf("read error: %w", err)
				return
			}
			if n == 0 {
				continue
			}
			if _, err := file.Write(buffer[:n]); err != nil {
				done <- fmt.Errorf("write error: %w", err)
				return
			}
			captured.Add(int64(n))
			if showConsole {
				fmt.Printf("% X\n", buffer[:n])
			}
		}
		done <- nil
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, shutting down...\n")
	}

	fmt.Fprintf(os.Stderr, "Capture complete: %d bytes written in %v\n",
		captured.Load(), time.Since(startTime).Round(time.Millisecond))
	return err
}
