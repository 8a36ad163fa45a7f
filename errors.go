package dcserial

import "errors"

// Predefined error types for robust error handling
var (
	// Acquisition outcomes that mean "no port yet, retry later"
	ErrDeviceNotFound    = errors.New("serial device not found")
	ErrPermissionPending = errors.New("permission to access serial device not granted yet")

	ErrInvalidConfig   = errors.New("invalid serial configuration")
	ErrInvalidBaudRate = errors.New("invalid baud rate")
	ErrPortClosed      = errors.New("serial port is closed")
	ErrPurgeRejected   = errors.New("hardware rejected purge request")
)

// IsAbsent reports whether err from Open means that no port could be produced
// because there is no device or permission has not been granted yet.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrDeviceNotFound) || errors.Is(err, ErrPermissionPending)
}
