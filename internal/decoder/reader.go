package decoder

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/ironsight-data/ironsight/internal/hidmux"
	"github.com/ironsight-data/ironsight/internal/monitoring"
	"github.com/ironsight-data/ironsight/internal/swing"
)

// Config carries all decoder tuning. Pass a value at construction time;
// the reader holds no process-wide state.
type Config struct {
	// Device identifies the pad on the USB bus.
	Device hidmux.DeviceInfo

	// Club is attached to emitted measurements until SetClub changes it.
	Club swing.ClubType

	// Cooldown is how long detection stays paused after a captured
	// swing before the queued reports are drained and detection rearms.
	Cooldown time.Duration

	// PollInterval is the sleep between empty non-blocking reads.
	PollInterval time.Duration

	// ReconnectWait is the initial delay before reopening a lost
	// device; it doubles per failed attempt up to MaxReconnectWait.
	ReconnectWait    time.Duration
	MaxReconnectWait time.Duration

	// ErrorWait is the fixed delay after a non-connectivity device error.
	ErrorWait time.Duration

	// EventBuffer is the capacity of the event channel.
	EventBuffer int
}

// DefaultConfig returns the production tuning for the swing pad.
func DefaultConfig() Config {
	return Config{
		Device:           hidmux.DeviceInfo{VendorID: VendorID, ProductID: ProductID},
		Club:             swing.Iron7,
		Cooldown:         2500 * time.Millisecond,
		PollInterval:     time.Millisecond,
		ReconnectWait:    time.Second,
		MaxReconnectWait: 30 * time.Second,
		ErrorWait:        time.Second,
		EventBuffer:      16,
	}
}

// Reader owns the pad connection lifecycle and the per-swing
// accumulation state. It implements swing.Source: Run drives a poll loop
// on the caller's goroutine and delivers events on the Events channel.
type Reader struct {
	cfg     Config
	factory hidmux.DeviceFactory
	events  chan swing.Event

	clubMu sync.Mutex
	club   swing.ClubType
}

// NewReader creates a Reader that opens devices through factory.
func NewReader(factory hidmux.DeviceFactory, cfg Config) *Reader {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 16
	}
	return &Reader{
		cfg:     cfg,
		factory: factory,
		events:  make(chan swing.Event, cfg.EventBuffer),
		club:    cfg.Club,
	}
}

// Events returns the channel on which the reader delivers events.
func (r *Reader) Events() <-chan swing.Event { return r.events }

// SetClub changes the club attached to subsequent measurements. Safe to
// call from any goroutine.
func (r *Reader) SetClub(c swing.ClubType) {
	r.clubMu.Lock()
	r.club = c
	r.clubMu.Unlock()
}

func (r *Reader) currentClub() swing.ClubType {
	r.clubMu.Lock()
	defer r.clubMu.Unlock()
	return r.club
}

// Run opens the device and polls it until ctx is cancelled. Connection
// loss is not fatal: the reader emits a disconnected event and retries
// with exponential backoff. Run returns ctx.Err() on cancellation.
func (r *Reader) Run(ctx context.Context) error {
	backoff := r.cfg.ReconnectWait

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		dev, err := r.factory.Open(r.cfg.Device)
		if err != nil {
			monitoring.Logf("decoder: device not found: %v", err)
			r.emit(ctx, swing.Event{Kind: swing.EventDisconnected})
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, r.cfg.MaxReconnectWait)
			continue
		}
		backoff = r.cfg.ReconnectWait

		monitoring.Logf("decoder: pad connected (%04x:%04x)",
			r.cfg.Device.VendorID, r.cfg.Device.ProductID)
		r.emit(ctx, swing.Event{Kind: swing.EventConnected})
		r.initDevice(ctx, dev)

		pollErr := r.poll(ctx, dev)

		// Best effort: tell the pad to shut down before closing.
		r.sendCommand(dev, CmdShutdown)
		dev.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		monitoring.Logf("decoder: connection lost: %v", pollErr)
		r.emit(ctx, swing.Event{Kind: swing.EventError, Err: pollErr})
		r.emit(ctx, swing.Event{Kind: swing.EventDisconnected})
		if !sleepCtx(ctx, r.cfg.ErrorWait) {
			return ctx.Err()
		}
	}
}

// initDevice replays the pad's power-on sequence: enable sensing, then
// cycle the indicator red/green to land in the armed state.
func (r *Reader) initDevice(ctx context.Context, dev hidmux.DevicePorter) {
	r.sendCommand(dev, CmdEnableSensors)
	sleepCtx(ctx, 50*time.Millisecond)
	r.sendCommand(dev, CmdLEDGreen)
	sleepCtx(ctx, 10*time.Millisecond)
	r.sendCommand(dev, CmdLEDRed)
	sleepCtx(ctx, 10*time.Millisecond)
	r.sendCommand(dev, CmdLEDGreen)
}

// poll reads reports until ctx is cancelled or the device errors. It is
// the only goroutine allowed to touch the accumulator.
func (r *Reader) poll(ctx context.Context, dev hidmux.DevicePorter) error {
	buf := make([]byte, ReportSize)
	var prev []byte
	acc := newAccumulator()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := dev.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			sleepCtx(ctx, r.cfg.PollInterval)
			continue
		}
		if n < ReportSize {
			monitoring.Logf("decoder: dropping short report (%d bytes)", n)
			continue
		}

		// The pad resends its last report while idle; only a
		// byte-for-byte change advances decoding.
		report := buf[:ReportSize]
		if prev != nil && bytes.Equal(report, prev) {
			continue
		}
		prev = append(prev[:0], report...)

		subs, err := ParseReport(report)
		if err != nil {
			monitoring.Logf("decoder: %v", err)
			continue
		}
		for _, sp := range subs {
			acc.ingest(sp)
		}

		if !acc.complete() {
			continue
		}

		// Swing captured: pause detection, compute, cool down, rearm.
		r.sendCommand(dev, CmdLEDRed)

		m, err := acc.compute(r.currentClub())
		if err != nil {
			monitoring.Logf("decoder: swing discarded: %v", err)
		} else {
			monitoring.Logf("decoder: swing detected: speed=%.1fmph face=%.1f path=%.1f contact=%.1f",
				m.SpeedMPH, m.FaceAngleDeg, m.PathDeg, m.ContactPoint)
			r.emit(ctx, swing.Event{Kind: swing.EventSwing, Swing: &m})
		}

		if !r.cooldown(ctx, dev) {
			return ctx.Err()
		}
		acc = newAccumulator()
		prev = nil
	}
}

// cooldown waits out the post-swing pause, drains any reports queued in
// the meantime, and rearms detection. Returns false if ctx was cancelled.
func (r *Reader) cooldown(ctx context.Context, dev hidmux.DevicePorter) bool {
	if !sleepCtx(ctx, r.cfg.Cooldown) {
		return false
	}

	// Drain whatever the pad queued while we were paused.
	buf := make([]byte, ReportSize)
	flushed := 0
	for {
		n, err := dev.Read(buf)
		if err != nil || n == 0 {
			break
		}
		flushed++
	}
	if flushed > 0 {
		monitoring.Logf("decoder: flushed %d reports after swing", flushed)
	}

	r.sendCommand(dev, CmdLEDGreen)
	return true
}

// sendCommand writes a control code as a padded output report. Failures
// are logged, not fatal: the pad works without indicator feedback.
func (r *Reader) sendCommand(dev hidmux.DevicePorter, cmd byte) {
	if _, err := dev.Write(CommandReport(cmd)); err != nil {
		monitoring.Logf("decoder: failed to send command 0x%02X: %v", cmd, err)
	}
}

// emit delivers an event, blocking until the consumer takes it or ctx is
// cancelled. Swing events are never dropped or duplicated.
func (r *Reader) emit(ctx context.Context, ev swing.Event) {
	select {
	case r.events <- ev:
	case <-ctx.Done():
	}
}

// sleepCtx sleeps for d or until ctx is cancelled, reporting whether the
// full duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
