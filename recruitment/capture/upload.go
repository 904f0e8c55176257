package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// DefaultMaxBytes caps an uploaded frame at 5 MiB
const DefaultMaxBytes int64 = 5 << 20

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadDevice is the server side of a browser capture: the frame was taken
// client side and posted with the application.
type UploadDevice struct {
	frame    []byte
	maxBytes int64
	started  bool
}

func NewUploadDevice(frame []byte, maxBytes int64) *UploadDevice {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &UploadDevice{frame: frame, maxBytes: maxBytes}
}

// NewUploadDeviceFromDataURL builds a device from a data:image/...;base64 string
func NewUploadDeviceFromDataURL(dataURL string, maxBytes int64) (*UploadDevice, error) {
	data, _, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	return NewUploadDevice(data, maxBytes), nil
}

// NewUploadDeviceFromFile reads a multipart image part
func NewUploadDeviceFromFile(fh *multipart.FileHeader, maxBytes int64) (*UploadDevice, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if fh.Size > maxBytes {
		return nil, ErrTooLarge().WithDetail("max_bytes", maxBytes)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, ErrUnavailable().WithCause(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, ErrUnavailable().WithCause(err)
	}
	return NewUploadDevice(data, maxBytes), nil
}

// Start validates the posted frame
func (d *UploadDevice) Start(ctx context.Context) error {
	if len(d.frame) == 0 {
		return ErrNoDevice().WithDetail("reason", "no frame was uploaded")
	}
	if int64(len(d.frame)) > d.maxBytes {
		return ErrTooLarge().WithDetail("max_bytes", d.maxBytes)
	}
	if _, ok := extensions[sniffContentType(d.frame)]; !ok {
		return ErrInvalidImage().WithDetail("content_type", http.DetectContentType(d.frame))
	}
	d.started = true
	return nil
}

func (d *UploadDevice) Snapshot(ctx context.Context) ([]byte, error) {
	if !d.started {
		return nil, ErrUnavailable().WithDetail("reason", "device not started")
	}
	if err := ctx.Err(); err != nil {
		return nil, ErrUnavailable().WithCause(err)
	}
	return bytes.Clone(d.frame), nil
}

func (d *UploadDevice) Stop() error {
	d.started = false
	return nil
}

// DecodeDataURL parses data:image/<type>;base64,<payload>
func DecodeDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return nil, "", ErrInvalidImage().WithDetail("reason", "not a data URL")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidImage().WithDetail("reason", "missing payload")
	}

	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return nil, "", ErrInvalidImage().WithDetail("reason", "payload must be base64")
	}
	if _, ok := extensions[contentType]; !ok {
		return nil, "", ErrInvalidImage().WithDetail("content_type", contentType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImage().WithCause(fmt.Errorf("decode base64: %w", err))
	}
	return data, contentType, nil
}

// sniffContentType inspects magic bytes. DetectContentType knows jpeg, png and webp.
func sniffContentType(data []byte) string {
	return http.DetectContentType(data)
}
