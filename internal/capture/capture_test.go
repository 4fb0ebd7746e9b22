// internal/capture/capture_test.go
package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tamzrod/lifelights/internal/frame"
)

type fakeProvider struct {
	frame *frame.Frame
	err   error
	calls int
}

func (f *fakeProvider) Acquire() (*frame.Frame, error) {
	f.calls++
	return f.frame, f.err
}

func litFrame() *frame.Frame {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Pix[0] = 255
	return &frame.Frame{Image: img, At: time.Now()}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}, &fakeProvider{}); err == nil {
		t.Fatalf("expected interval error")
	}
	if _, err := New(Config{Interval: time.Second}, nil); err == nil {
		t.Fatalf("expected provider error")
	}
}

func TestCaptureOnce_Frame(t *testing.T) {
	f := litFrame()
	c, err := New(Config{Interval: time.Second}, &fakeProvider{frame: f})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := c.CaptureOnce()
	if res.Err != nil || res.Skip() || res.Frame != f {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.At.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestCaptureOnce_NotReady(t *testing.T) {
	c, _ := New(Config{Interval: time.Second}, &fakeProvider{})

	res := c.CaptureOnce()
	if !res.Skip() || res.Err != nil {
		t.Fatalf("expected silent skip, got %+v", res)
	}
}

func TestCaptureOnce_BlackFrameIsSkipped(t *testing.T) {
	black := &frame.Frame{Image: image.NewRGBA(image.Rect(0, 0, 4, 4))}
	c, _ := New(Config{Interval: time.Second}, &fakeProvider{frame: black})

	res := c.CaptureOnce()
	if !res.Skip() || res.Err != nil {
		t.Fatalf("expected skip for black frame, got %+v", res)
	}
}

func TestCaptureOnce_OpaqueBlackScreenshotIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screen.png")

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(out, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out.Close()

	p, err := frame.NewFileProvider(path, 1)
	if err != nil {
		t.Fatalf("NewFileProvider err=%v", err)
	}
	c, _ := New(Config{Interval: time.Second}, p)

	res := c.CaptureOnce()
	if !res.Skip() || res.Err != nil {
		t.Fatalf("expected skip for opaque black screenshot, got skip=%v err=%v", res.Skip(), res.Err)
	}

	// one lit pixel is enough signal
	img.Set(4, 4, color.RGBA{R: 200, A: 255})
	out, _ = os.Create(path)
	_ = png.Encode(out, img)
	out.Close()

	if res := c.CaptureOnce(); res.Skip() {
		t.Fatalf("lit screenshot was skipped: err=%v", res.Err)
	}
}

func TestCaptureOnce_Error(t *testing.T) {
	c, _ := New(Config{Interval: time.Second}, &fakeProvider{err: errors.New("decode failed")})

	res := c.CaptureOnce()
	if res.Err == nil || !res.Skip() {
		t.Fatalf("expected error with nil frame, got %+v", res)
	}
}

func TestRun_EmitsUntilCancelled(t *testing.T) {
	p := &fakeProvider{frame: litFrame()}
	c, _ := New(Config{Interval: 5 * time.Millisecond}, p)

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Result)
	done := make(chan struct{})

	go func() {
		c.Run(ctx, out)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case res := <-out:
			if res.Skip() {
				t.Fatalf("unexpected skip")
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for result %d", i)
		}
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
