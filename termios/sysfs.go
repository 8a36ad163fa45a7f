//go:build linux

package termios

import (
	"os"
	"path/filepath"
	"strings"
)

// maxSysfsDepth bounds the walk from the tty's device node up to the USB
// device that owns it (tty, interface, device).
const maxSysfsDepth = 4

// PortInfo describes a tty device using what sysfs reports about it.
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

// Describe looks the device up under SysfsDir. Missing sysfs entries leave
// the USB fields empty.
func (s *Scanner) Describe(path string) PortInfo {
	name := filepath.Base(path)
	info := PortInfo{
		Name:        name,
		Path:        path,
		Description: portDescription(name),
	}
	if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
		s.enrichUSBInfo(&info)
	}
	return info
}

// enrichUSBInfo follows /sys/class/tty/<name>/device up to the directory
// carrying idVendor.
func (s *Scanner) enrichUSBInfo(info *PortInfo) {
	devicePath, err := filepath.EvalSymlinks(filepath.Join(s.SysfsDir, "class", "tty", info.Name, "device"))
	if err != nil {
		return
	}

	dir := devicePath
	for i := 0; i < maxSysfsDepth; i++ {
		if vendor := readSysfsFile(filepath.Join(dir, "idVendor")); vendor != "" {
			info.VendorID = vendor
			info.ProductID = readSysfsFile(filepath.Join(dir, "idProduct"))
			info.SerialNumber = readSysfsFile(filepath.Join(dir, "serial"))
			info.Manufacturer = readSysfsFile(filepath.Join(dir, "manufacturer"))
			info.Product = readSysfsFile(filepath.Join(dir, "product"))
			return
		}
		dir = filepath.Dir(dir)
	}
}

// matchesUSB reports whether the device passes the scanner's VID/PID filter.
func (s *Scanner) matchesUSB(path string) bool {
	if s.VendorID == "" && s.ProductID == "" {
		return true
	}
	info := s.Describe(path)
	if s.VendorID != "" && !strings.EqualFold(s.VendorID, info.VendorID) {
		return false
	}
	if s.ProductID != "" && !strings.EqualFold(s.ProductID, info.ProductID) {
		return false
	}
	return true
}

// readSysfsFile returns the trimmed content, or "" when unreadable.
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// portDescription provides human-readable descriptions for different port types
func portDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}
