//go:build linux

package termios

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/allbin/go-dcserial"
	"golang.org/x/sys/unix"
)

// Patterns for tty devices that dive computer cables show up as
var devicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
	regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
	regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
}

// Scanner finds tty devices under Dir and opens the first one. With USBOnly
// set, built-in UARTs are skipped. A non-empty VendorID or ProductID keeps
// only USB devices whose sysfs IDs match.
type Scanner struct {
	Dir       string
	SysfsDir  string
	USBOnly   bool
	VendorID  string
	ProductID string

	open func(device string) (dcserial.Driver, error)
}

var _ dcserial.Acquirer = (*Scanner)(nil)

// NewScanner scans /dev.
func NewScanner(usbOnly bool) *Scanner {
	return &Scanner{
		Dir:      "/dev",
		SysfsDir: "/sys",
		USBOnly:  usbOnly,
		open: func(device string) (dcserial.Driver, error) {
			return Open(device)
		},
	}
}

// ListPorts returns candidate device paths, sorted.
func (s *Scanner) ListPorts() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()
		if !matchesDevice(name, s.USBOnly) {
			continue
		}
		fullPath := filepath.Join(s.Dir, name)
		if isCharacterDevice(fullPath) && s.matchesUSB(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	sort.Strings(ports)
	return ports, nil
}

// Acquire opens the first port found.
func (s *Scanner) Acquire(ctx context.Context) (dcserial.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ports, err := s.ListPorts()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	if len(ports) == 0 {
		return nil, dcserial.ErrDeviceNotFound
	}

	drv, err := s.open(ports[0])
	if err != nil {
		return nil, mapOpenError(ports[0], err)
	}
	return drv, nil
}

func matchesDevice(name string, usbOnly bool) bool {
	for i, pattern := range devicePatterns {
		if usbOnly && i > 1 {
			break
		}
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

func mapOpenError(device string, err error) error {
	switch {
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("%w: %s", dcserial.ErrPermissionPending, device)
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ENODEV), errors.Is(err, unix.ENXIO):
		return fmt.Errorf("%w: %s", dcserial.ErrDeviceNotFound, device)
	default:
		return fmt.Errorf("failed to open %s: %w", device, err)
	}
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
