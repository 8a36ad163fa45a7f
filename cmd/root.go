/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/allbin/go-dcserial"
	"github.com/allbin/go-dcserial/termios"
	"github.com/allbin/go-dcserial/usbserial"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dcserial",
	Short: "Blocking serial port adapter for dive computer cables",
	Long: `dcserial drives USB serial dive computer cables through the same
buffered read/write/purge adapter a dive log decoder uses.

Devices are discovered automatically: the first USB serial adapter that
matches --vid/--pid is used, found through the go.bug.st enumerator (usb)
or by scanning /dev and sysfs (tty). Settings can also come from $HOME/.dcserial.yaml
or DCSERIAL_* environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dcserial.yaml)")
	flags.String("driver", "usb", "Hardware driver: usb (go.bug.st enumerator) or tty (linux termios)")
	flags.String("vid", "", "USB vendor ID filter, e.g. 0403")
	flags.String("pid", "", "USB product ID filter, e.g. 6015")
	flags.String("line", "9600/8N1", "Line settings as baud/databits parity stopbits")
	flags.Duration("timeout", time.Second, "Write timeout")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn, error")

	for _, name := range []string{"driver", "vid", "pid", "line", "timeout", "log-level"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dcserial")
	}

	viper.SetEnvPrefix("dcserial")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the console logger used by every command.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// newAcquirer selects the device discovery configured by --driver.
func newAcquirer() (dcserial.Acquirer, error) {
	switch strings.ToLower(viper.GetString("driver")) {
	case "usb", "":
		return usbserial.NewProber(viper.GetString("vid"), viper.GetString("pid")), nil
	case "tty":
		return newScanner(), nil
	default:
		return nil, fmt.Errorf("unknown driver %q (valid: usb, tty)", viper.GetString("driver"))
	}
}

// newScanner builds the linux tty scanner with the --vid/--pid filter.
func newScanner() *termios.Scanner {
	s := termios.NewScanner(true)
	s.VendorID = viper.GetString("vid")
	s.ProductID = viper.GetString("pid")
	return s
}

// openPort opens and configures the first matching device.
func openPort(ctx context.Context) (*dcserial.Port, dcserial.LineConfig, error) {
	line, err := dcserial.ParseLineConfig(viper.GetString("line"))
	if err != nil {
		return nil, line, err
	}

	acq, err := newAcquirer()
	if err != nil {
		return nil, line, err
	}

	port, err := dcserial.Open(ctx, acq,
		dcserial.WithLogger(newLogger()),
		dcserial.WithTimeout(viper.GetDuration("timeout")),
		dcserial.WithInitialConfig(line),
	)
	if err != nil {
		if dcserial.IsAbsent(err) {
			return nil, line, fmt.Errorf("%w (connect the cable or grant access, then retry)", err)
		}
		return nil, line, err
	}
	return port, line, nil
}
