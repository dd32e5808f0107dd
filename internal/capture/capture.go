// Package capture drives image acquisition for a scan. File drops, file
// picks, and single-frame camera captures all end in the same captured-image
// shape, ready for the scan orchestrator.
package capture

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// State is the adapter's current phase.
type State int

// Adapter states.
const (
	Idle State = iota
	CameraActive
	CameraError
	HasImage
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CameraActive:
		return "camera-active"
	case CameraError:
		return "camera-error"
	case HasImage:
		return "has-image"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Errors reported by the adapter.
var (
	ErrNotImage     = errors.New("file is not an image")
	ErrNoCamera     = errors.New("no camera available")
	ErrCameraClosed = errors.New("camera is not active")
)

// Camera is a single-frame video source. Implementations own the underlying
// device. Stop must be safe to call repeatedly and from any state.
type Camera interface {
	Start(ctx context.Context) error
	Frame(ctx context.Context) (data []byte, mime string, err error)
	Stop()
}

// Preview is a revocable display handle for captured image bytes. It stands
// in for a browser object URL: usable until released, released exactly once
// by the owning adapter.
type Preview struct {
	name     string
	released bool
}

// Name identifies the preview source (file name or "capture.jpg").
func (p *Preview) Name() string { return p.name }

// Release revokes the handle. Releasing twice is a no-op.
func (p *Preview) Release() { p.released = true }

// Released reports whether the handle has been revoked.
func (p *Preview) Released() bool { return p.released }

// Image is a captured still plus its preview handle.
type Image struct {
	Data    []byte
	MIME    string
	preview *Preview
}

// Preview returns the image's display handle.
func (img *Image) Preview() *Preview { return img.preview }

// Adapter is the capture state machine. It guarantees that at most one live
// preview handle exists at a time and that the camera and a static image
// never coexist.
type Adapter struct {
	state   State
	camera  Camera
	img     *Image
	lastErr error
}

// New creates an Adapter. camera may be nil for upload-only flows.
func New(camera Camera) *Adapter {
	return &Adapter{state: Idle, camera: camera}
}

// State returns the current state.
func (a *Adapter) State() State { return a.state }

// Image returns the captured image, or nil outside HasImage.
func (a *Adapter) Image() *Image { return a.img }

// Err returns the last camera error, or nil.
func (a *Adapter) Err() error { return a.lastErr }

// StartCamera requests the camera. Denial or unavailability is an expected,
// recoverable outcome: the adapter moves to CameraError and the error is
// also returned for display.
func (a *Adapter) StartCamera(ctx context.Context) error {
	if a.camera == nil {
		a.state = CameraError
		a.lastErr = ErrNoCamera
		return ErrNoCamera
	}
	a.releaseImage()
	if err := a.camera.Start(ctx); err != nil {
		a.state = CameraError
		a.lastErr = fmt.Errorf("start camera: %w", err)
		return a.lastErr
	}
	a.state = CameraActive
	a.lastErr = nil
	return nil
}

// StopCamera releases the camera. Safe to call from any state.
func (a *Adapter) StopCamera() {
	if a.camera != nil {
		a.camera.Stop()
	}
	if a.state == CameraActive {
		a.state = Idle
	}
}

// CaptureFrame grabs the current camera frame as a still image. Valid only
// in CameraActive; the camera is stopped as a side effect.
func (a *Adapter) CaptureFrame(ctx context.Context) error {
	if a.state != CameraActive {
		return ErrCameraClosed
	}
	data, mime, err := a.camera.Frame(ctx)
	if err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}
	a.camera.Stop()
	a.setImage(data, mime, "capture.jpg")
	return nil
}

// AcceptFile takes an uploaded or dropped file. A non-image file is rejected
// with no state change. A prior image is replaced and its preview released
// first.
func (a *Adapter) AcceptFile(name, declaredMIME string, data []byte) error {
	mime := declaredMIME
	if mime == "" && len(data) > 0 {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return ErrNotImage
	}
	if a.state == CameraActive {
		a.camera.Stop()
	}
	a.setImage(data, mime, name)
	return nil
}

// Clear drops the held image and releases its preview.
func (a *Adapter) Clear() {
	a.releaseImage()
	if a.state == HasImage {
		a.state = Idle
	}
}

// setImage installs a new captured image, releasing the prior preview before
// the new one exists.
func (a *Adapter) setImage(data []byte, mime, name string) {
	a.releaseImage()
	a.img = &Image{Data: data, MIME: mime, preview: &Preview{name: name}}
	a.state = HasImage
	a.lastErr = nil
}

func (a *Adapter) releaseImage() {
	if a.img != nil {
		a.img.preview.Release()
		a.img = nil
	}
}
