package hidmux

import (
	"fmt"

	"github.com/sstallion/go-hid"
)

// HIDFactory opens real USB HID devices via hidapi.
type HIDFactory struct{}

// Open opens the first attached device matching info and switches it to
// non-blocking reads so the decoder poll loop can sleep between reports.
func (HIDFactory) Open(info DeviceInfo) (DevicePorter, error) {
	dev, err := hid.OpenFirst(info.VendorID, info.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to open device %04x:%04x: %w", info.VendorID, info.ProductID, err)
	}
	if err := dev.SetNonblock(true); err != nil {
		dev.Close()
		return nil, fmt.Errorf("failed to set non-blocking mode: %w", err)
	}
	return dev, nil
}
