package hidmux

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

// ErrDeviceClosed is returned by reads and writes on a closed TestableDevice.
var ErrDeviceClosed = errors.New("hid device closed")

// TestableDevice implements DevicePorter with configurable behaviour for
// testing. HID semantics are preserved: each Read returns at most one
// queued input report, and an empty queue yields n == 0 with nil error
// (non-blocking mode) unless BlockReads is set.
type TestableDevice struct {
	mu sync.Mutex

	// reports holds queued input reports, one per Read call
	reports [][]byte

	// WriteBuffer captures data written to the device
	WriteBuffer *bytes.Buffer

	// ReadLatency adds a delay to each Read call
	ReadLatency time.Duration

	// ReadError is returned by the next Read call if set
	ReadError error

	// WriteError is returned by the next Write call if set
	WriteError error

	// CloseError is returned by Close if set
	CloseError error

	// Closed indicates whether Close was called
	Closed bool

	// ReadCalls records the number of Read calls
	ReadCalls int

	// WriteCalls records the number of Write calls
	WriteCalls int

	// BlockReads causes Read to block until a report is queued or the
	// device is closed
	BlockReads bool

	// readCond is used to signal blocked readers
	readCond *sync.Cond
}

// NewTestableDevice creates a new TestableDevice for testing.
func NewTestableDevice() *TestableDevice {
	d := &TestableDevice{
		WriteBuffer: bytes.NewBuffer(nil),
	}
	d.readCond = sync.NewCond(&d.mu)
	return d
}

// Read pops the next queued report into p, simulating latency and errors
// when configured.
func (d *TestableDevice) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ReadCalls++

	if d.Closed {
		return 0, ErrDeviceClosed
	}

	if d.ReadError != nil {
		err := d.ReadError
		d.ReadError = nil
		return 0, err
	}

	if d.ReadLatency > 0 {
		d.mu.Unlock()
		time.Sleep(d.ReadLatency)
		d.mu.Lock()
	}

	if len(d.reports) == 0 {
		if !d.BlockReads {
			return 0, nil
		}
		for !d.Closed && len(d.reports) == 0 {
			d.readCond.Wait()
		}
		if d.Closed {
			return 0, ErrDeviceClosed
		}
	}

	report := d.reports[0]
	d.reports = d.reports[1:]
	return copy(p, report), nil
}

// Write captures data written to the device.
func (d *TestableDevice) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.WriteCalls++

	if d.Closed {
		return 0, ErrDeviceClosed
	}

	if d.WriteError != nil {
		err := d.WriteError
		d.WriteError = nil
		return 0, err
	}

	return d.WriteBuffer.Write(p)
}

// Close marks the device as closed and wakes any blocked readers.
func (d *TestableDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Closed = true
	d.readCond.Broadcast()

	return d.CloseError
}

// QueueReport appends an input report to be returned by a subsequent Read.
func (d *TestableDevice) QueueReport(report []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reports = append(d.reports, append([]byte(nil), report...))
	d.readCond.Signal()
}

// Pending returns the number of queued, unread reports.
func (d *TestableDevice) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.reports)
}

// WrittenData returns all bytes written to the device so far.
func (d *TestableDevice) WrittenData() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]byte(nil), d.WriteBuffer.Bytes()...)
}

// Reset clears all buffers and state so the device can be reused.
func (d *TestableDevice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reports = nil
	d.WriteBuffer.Reset()
	d.ReadCalls = 0
	d.WriteCalls = 0
	d.Closed = false
	d.ReadError = nil
	d.WriteError = nil
	d.CloseError = nil
	d.ReadLatency = 0
}

// MockDeviceFactory implements DeviceFactory for testing.
type MockDeviceFactory struct {
	mu sync.Mutex

	// Device is returned from Open when Error is unset
	Device DevicePorter

	// Error is returned by Open if set
	Error error

	// OpenCalls records the info passed to every Open call
	OpenCalls []DeviceInfo
}

// NewMockDeviceFactory creates a factory that hands out the given device.
func NewMockDeviceFactory(device DevicePorter) *MockDeviceFactory {
	return &MockDeviceFactory{Device: device}
}

// Open records the call and returns the configured device or error.
func (f *MockDeviceFactory) Open(info DeviceInfo) (DevicePorter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.OpenCalls = append(f.OpenCalls, info)

	if f.Error != nil {
		return nil, f.Error
	}
	return f.Device, nil
}

// Opens returns how many times Open was called.
func (f *MockDeviceFactory) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.OpenCalls)
}
