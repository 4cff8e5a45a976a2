package imagefx

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestTransform(t *testing.T) {
	src := testPNG(t, 32, 24)

	for _, strength := range []int{20, 80, 150} {
		out, err := Blur{}.Transform(context.Background(), src, strength)
		if err != nil {
			t.Fatalf("Transform(%d): %v", strength, err)
		}
		img, err := jpeg.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("Transform(%d) output is not JPEG: %v", strength, err)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
			t.Errorf("Transform(%d) size = %dx%d, want 32x24", strength, b.Dx(), b.Dy())
		}
	}
}

func TestTransformZeroStrength(t *testing.T) {
	src := []byte("not even an image")
	out, err := Blur{}.Transform(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Error("strength 0 should return the input unchanged")
	}
}

func TestTransformInvalidImage(t *testing.T) {
	if _, err := (Blur{}).Transform(context.Background(), []byte("garbage"), 30); err == nil {
		t.Error("expected decode error")
	}
}

func TestTransformCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Blur{}).Transform(ctx, testPNG(t, 8, 8), 30); err != context.Canceled {
		t.Errorf("Transform() error = %v, want context.Canceled", err)
	}
}
