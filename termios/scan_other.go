//go:build !linux

package termios

import (
	"context"
	"errors"

	"github.com/allbin/go-dcserial"
)

var errUnsupported = errors.New("termios driver is only available on linux")

// Scanner is unavailable outside linux; every call fails.
type Scanner struct {
	Dir       string
	SysfsDir  string
	USBOnly   bool
	VendorID  string
	ProductID string
}

type PortInfo struct {
	Name         string
	Path         string
	Description  string
	VendorID     string
	ProductID    string
	SerialNumber string
	Manufacturer string
	Product      string
}

func NewScanner(usbOnly bool) *Scanner {
	return &Scanner{Dir: "/dev", SysfsDir: "/sys", USBOnly: usbOnly}
}

func (s *Scanner) Describe(path string) PortInfo {
	return PortInfo{Path: path}
}

func (s *Scanner) ListPorts() ([]string, error) {
	return nil, errUnsupported
}

func (s *Scanner) Acquire(context.Context) (dcserial.Driver, error) {
	return nil, errUnsupported
}
