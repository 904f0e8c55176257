package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngFrame = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
var jpegFrame = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")

type fakeDevice struct {
	startErr    error
	snapshotErr error
	frame       []byte
	starts      int
	stops       int
	running     bool
}

func (d *fakeDevice) Start(ctx context.Context) error {
	d.starts++
	if d.startErr != nil {
		return d.startErr
	}
	d.running = true
	return nil
}

func (d *fakeDevice) Snapshot(ctx context.Context) ([]byte, error) {
	if d.snapshotErr != nil {
		return nil, d.snapshotErr
	}
	return d.frame, nil
}

func (d *fakeDevice) Stop() error {
	d.stops++
	d.running = false
	return nil
}

// ============================================================================
// Flow
// ============================================================================

func TestFlow_CaptureConfirm(t *testing.T) {
	dev := &fakeDevice{frame: pngFrame}
	flow := NewFlow(dev)
	ctx := context.Background()

	require.NoError(t, flow.Open(ctx))
	assert.True(t, dev.running)

	photo, err := flow.Capture(ctx)
	require.NoError(t, err)
	assert.False(t, dev.running, "capture releases the device")
	assert.Equal(t, "image/png", photo.ContentType)
	assert.Equal(t, ".png", photo.Extension())

	_, ok := flow.Photo()
	assert.False(t, ok, "not confirmed yet")

	confirmed, err := flow.Confirm()
	require.NoError(t, err)
	assert.Equal(t, photo, confirmed)

	require.NoError(t, flow.Close())
	got, ok := flow.Photo()
	assert.True(t, ok, "confirmed photo survives close")
	assert.Equal(t, pngFrame, got.Data)
	assert.Equal(t, 1, dev.stops)
}

func TestFlow_CloseWithoutCapture(t *testing.T) {
	dev := &fakeDevice{frame: pngFrame}
	flow := NewFlow(dev)

	require.NoError(t, flow.Open(context.Background()))
	require.NoError(t, flow.Close())
	require.NoError(t, flow.Close())

	assert.False(t, dev.running)
	assert.Equal(t, 1, dev.stops, "stop runs once per start")
	_, ok := flow.Photo()
	assert.False(t, ok)
}

func TestFlow_CloseDiscardsUnconfirmedPhoto(t *testing.T) {
	dev := &fakeDevice{frame: pngFrame}
	flow := NewFlow(dev)
	ctx := context.Background()

	require.NoError(t, flow.Open(ctx))
	_, err := flow.Capture(ctx)
	require.NoError(t, err)
	require.NoError(t, flow.Close())

	_, err = flow.Confirm()
	assert.ErrorIs(t, err, ErrNoPhoto())
}

func TestFlow_Retake(t *testing.T) {
	dev := &fakeDevice{frame: pngFrame}
	flow := NewFlow(dev)
	ctx := context.Background()

	require.NoError(t, flow.Open(ctx))
	_, err := flow.Capture(ctx)
	require.NoError(t, err)

	require.NoError(t, flow.Retake(ctx))
	assert.True(t, dev.running, "retake restarts the device")
	assert.Equal(t, 2, dev.starts)

	_, err = flow.Confirm()
	assert.ErrorIs(t, err, ErrNoPhoto(), "retake clears the photo")
	assert.False(t, dev.running, "confirm releases the device")
}

func TestFlow_SnapshotFailureReleasesDevice(t *testing.T) {
	dev := &fakeDevice{snapshotErr: errors.New("track ended")}
	flow := NewFlow(dev)
	ctx := context.Background()

	require.NoError(t, flow.Open(ctx))
	_, err := flow.Capture(ctx)

	assert.ErrorIs(t, err, ErrUnavailable())
	assert.False(t, dev.running)
	assert.Equal(t, 1, dev.stops)
}

func TestFlow_OpenFailures(t *testing.T) {
	tests := []struct {
		name      string
		startErr  error
		want      error
		retryable bool
	}{
		{"permission denied", ErrPermissionDenied(), ErrPermissionDenied(), true},
		{"no device", ErrNoDevice(), ErrNoDevice(), false},
		{"anything else", errors.New("NotReadableError"), ErrUnavailable(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &fakeDevice{startErr: tt.startErr}
			flow := NewFlow(dev)

			err := flow.Open(context.Background())

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.retryable, IsRetryable(err))

			e, ok := errx.As(err)
			require.True(t, ok)
			if tt.retryable {
				assert.Equal(t, true, e.Details["retryable"])
				assert.Equal(t, true, e.ToHTTPResponse()["details"].(map[string]any)["retryable"])
			} else {
				assert.NotContains(t, e.Details, "retryable")
			}
			assert.Equal(t, 1, dev.stops, "failed start is still released")
		})
	}
}

func TestFlow_CaptureBeforeOpen(t *testing.T) {
	flow := NewFlow(&fakeDevice{frame: pngFrame})

	_, err := flow.Capture(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable())
}

func TestCapture_OneShot(t *testing.T) {
	dev := &fakeDevice{frame: jpegFrame}

	photo, err := Capture(context.Background(), dev)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", photo.ContentType)
	assert.Equal(t, ".jpg", photo.Extension())
	assert.False(t, dev.running)
}

// ============================================================================
// UploadDevice
// ============================================================================

func TestUploadDevice(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		max   int64
		want  error
	}{
		{"png", pngFrame, 0, nil},
		{"jpeg", jpegFrame, 0, nil},
		{"empty", nil, 0, ErrNoDevice()},
		{"not an image", []byte("%PDF-1.4 hello"), 0, ErrInvalidImage()},
		{"too large", pngFrame, 4, ErrTooLarge()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Capture(context.Background(), NewUploadDevice(tt.frame, tt.max))
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUploadDevice_SnapshotRequiresStart(t *testing.T) {
	dev := NewUploadDevice(pngFrame, 0)

	_, err := dev.Snapshot(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable())
	assert.NoError(t, dev.Stop())
	assert.NoError(t, dev.Stop())
}

func TestDecodeDataURL(t *testing.T) {
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngFrame)

	data, contentType, err := DecodeDataURL(encoded)
	require.NoError(t, err)
	assert.Equal(t, pngFrame, data)
	assert.Equal(t, "image/png", contentType)

	bad := []string{
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,AAAA",
		"data:image/gif;base64,AAAA",
		"data:image/png;base64,!!!",
	}
	for _, s := range bad {
		_, _, err := DecodeDataURL(s)
		assert.ErrorIs(t, err, ErrInvalidImage(), s)
	}
}

func TestNewUploadDeviceFromDataURL(t *testing.T) {
	dev, err := NewUploadDeviceFromDataURL("data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(jpegFrame), 0)
	require.NoError(t, err)

	photo, err := Capture(context.Background(), dev)
	require.NoError(t, err)
	assert.Equal(t, jpegFrame, photo.Data)
}
