// Package imagefx implements image post-processing for downloaded thumbnails.
package imagefx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
)

// MaxStrength is the strongest accepted blur level.
const MaxStrength = 100

// pixelateAbove is the strength past which the blur is also pixelated.
const pixelateAbove = 50

const jpegQuality = 85

// Blur applies a Gaussian blur scaled by strength (0-100), pixelating the
// result for strengths above 50. Output is always JPEG.
type Blur struct{}

// Transform blurs data. Strength 0 returns data unchanged. The work runs in
// its own goroutine so a cancelled ctx returns promptly.
func (Blur) Transform(ctx context.Context, data []byte, strength int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strength <= 0 {
		return data, nil
	}
	if strength > MaxStrength {
		strength = MaxStrength
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		out, err := blur(data, strength)
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.data, r.err
	}
}

func blur(data []byte, strength int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	bounds := img.Bounds()

	out := imaging.Blur(img, float64(strength)/2)
	if strength > pixelateAbove {
		factor := max(1, (strength-pixelateAbove)/10)
		w := max(1, bounds.Dx()/(factor*2))
		h := max(1, bounds.Dy()/(factor*2))
		out = imaging.Resize(out, w, h, imaging.NearestNeighbor)
		out = imaging.Resize(out, bounds.Dx(), bounds.Dy(), imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}
