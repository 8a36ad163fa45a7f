package usbserial

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/allbin/go-dcserial"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Prober finds USB serial adapters and opens the first one that matches.
// Empty VendorID/ProductID match any adapter.
type Prober struct {
	VendorID  string
	ProductID string

	list func() ([]*enumerator.PortDetails, error)
	open func(name string, mode *serial.Mode) (serial.Port, error)
}

var _ dcserial.Acquirer = (*Prober)(nil)

// NewProber returns a prober filtering on the given USB IDs.
func NewProber(vendorID, productID string) *Prober {
	return &Prober{
		VendorID:  vendorID,
		ProductID: productID,
		list:      enumerator.GetDetailedPortsList,
		open:      serial.Open,
	}
}

// Candidates lists the USB serial ports that pass the ID filter, in
// enumeration order.
func (p *Prober) Candidates() ([]*enumerator.PortDetails, error) {
	ports, err := p.list()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	var matched []*enumerator.PortDetails
	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		if p.VendorID != "" && !strings.EqualFold(port.VID, p.VendorID) {
			continue
		}
		if p.ProductID != "" && !strings.EqualFold(port.PID, p.ProductID) {
			continue
		}
		matched = append(matched, port)
	}
	return matched, nil
}

// Acquire opens the first candidate. Most adapters expose a single port, so
// later candidates are only used by listing.
func (p *Prober) Acquire(ctx context.Context) (dcserial.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates, err := p.Candidates()
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, dcserial.ErrDeviceNotFound
	}

	name := candidates[0].Name
	port, err := p.open(name, &serial.Mode{BaudRate: 9600, DataBits: 8})
	if err != nil {
		return nil, mapOpenError(name, err)
	}
	return NewDriver(port, name), nil
}

func mapOpenError(name string, err error) error {
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortNotFound:
			return fmt.Errorf("%w: %s", dcserial.ErrDeviceNotFound, name)
		case serial.PermissionDenied:
			return fmt.Errorf("%w: %s", dcserial.ErrPermissionPending, name)
		}
	}
	return fmt.Errorf("failed to open %s: %w", name, err)
}
