// Package hidmux provides an abstraction over a USB HID device so the
// protocol decoder can be exercised against real hardware, a scriptable
// fake, or anything else that can produce fixed-size input reports.
package hidmux

import "io"

// DevicePorter defines the minimal interface needed for an HID device.
// Reads are non-blocking: a device with no pending report returns n == 0
// and a nil error. This abstraction enables unit testing without real
// USB hardware.
type DevicePorter interface {
	io.ReadWriter
	io.Closer
}

// DeviceInfo identifies a USB device by its vendor/product pair.
type DeviceInfo struct {
	VendorID  uint16
	ProductID uint16
}

// DeviceFactory defines an interface for opening HID devices. This
// abstraction enables dependency injection of device creation.
type DeviceFactory interface {
	// Open opens the first device matching info and puts it in
	// non-blocking read mode.
	Open(info DeviceInfo) (DevicePorter, error)
}
