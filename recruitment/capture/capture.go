package capture

import (
	"context"
	"sync"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/pkg/metrics"
)

// Device is a camera-like frame source
type Device interface {
	// Start acquires the device
	Start(ctx context.Context) error

	// Snapshot grabs one frame from a started device
	Snapshot(ctx context.Context) ([]byte, error)

	// Stop releases the device. Safe to call when not started.
	Stop() error
}

// Photo is a captured frame
type Photo struct {
	Data        []byte
	ContentType string
}

// Extension returns the file extension matching the photo's content type
func (p *Photo) Extension() string {
	return extensions[p.ContentType]
}

// ============================================================================
// Flow
// ============================================================================

// Flow drives one capture interaction. The device is released whenever the
// flow captures, retakes, confirms or closes, on success and failure alike.
type Flow struct {
	mu        sync.Mutex
	device    Device
	running   bool
	photo     *Photo
	confirmed bool
	closed    bool
}

func NewFlow(device Device) *Flow {
	return &Flow{device: device}
}

// Open starts the device
func (f *Flow) Open(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrUnavailable().WithDetail("reason", "capture flow is closed")
	}
	if f.running {
		return nil
	}

	if err := f.device.Start(ctx); err != nil {
		// a partially acquired stream still has to be released
		_ = f.device.Stop()
		return classify(err)
	}
	f.running = true
	return nil
}

// Capture takes a snapshot and releases the device
func (f *Flow) Capture(ctx context.Context) (*Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running {
		return nil, ErrUnavailable().WithDetail("reason", "device not started")
	}

	data, err := f.device.Snapshot(ctx)
	f.release()
	if err != nil {
		return nil, classify(err)
	}

	photo := &Photo{Data: data, ContentType: sniffContentType(data)}
	f.photo = photo
	f.confirmed = false
	return photo, nil
}

// Retake discards the current photo and restarts the device
func (f *Flow) Retake(ctx context.Context) error {
	f.mu.Lock()
	f.photo = nil
	f.confirmed = false
	f.release()
	f.mu.Unlock()

	return f.Open(ctx)
}

// Confirm accepts the captured photo
func (f *Flow) Confirm() (*Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.release()
	if f.photo == nil {
		return nil, ErrNoPhoto()
	}
	f.confirmed = true
	return f.photo, nil
}

// Close releases the device and drops an unconfirmed photo
func (f *Flow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if !f.confirmed {
		f.photo = nil
	}
	return f.stop()
}

// Photo returns the confirmed photo, if any
func (f *Flow) Photo() (*Photo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.confirmed || f.photo == nil {
		return nil, false
	}
	return f.photo, true
}

func (f *Flow) release() {
	if err := f.stop(); err != nil {
		logx.Warnf("releasing capture device: %v", err)
	}
}

func (f *Flow) stop() error {
	if !f.running {
		return nil
	}
	f.running = false
	return f.device.Stop()
}

// classify maps device failures onto CaptureError kinds and marks the
// ones the user can retry
func classify(err error) error {
	e, ok := errx.As(err)
	if !ok || !isCaptureCode(errx.Code(e.Code)) {
		e = ErrUnavailable().WithCause(err)
	}
	if IsRetryable(e) {
		e = e.WithDetail("retryable", true)
	}
	metrics.CaptureFailures.WithLabelValues(e.Code).Inc()
	return e
}

func isCaptureCode(code errx.Code) bool {
	switch code {
	case CodePermissionDenied, CodeNoDevice, CodeUnavailable, CodeInvalidImage, CodeTooLarge:
		return true
	}
	return false
}

// Capture runs the whole flow against a device in one go: open, snapshot,
// confirm. The device is released before returning.
func Capture(ctx context.Context, device Device) (*Photo, error) {
	flow := NewFlow(device)
	defer flow.Close()

	if err := flow.Open(ctx); err != nil {
		return nil, err
	}
	if _, err := flow.Capture(ctx); err != nil {
		return nil, err
	}
	return flow.Confirm()
}
