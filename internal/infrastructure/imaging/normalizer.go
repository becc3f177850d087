// Package imaging bounds and re-encodes uploaded photos so stored image size
// stays predictable regardless of what the user uploads.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

const (
	DefaultMaxDimension = 1024
	DefaultJPEGQuality  = 80
)

// Normalizer re-encodes uploads as bounded RGB JPEGs.
type Normalizer struct {
	maxDimension int
	quality      int
}

func NewNormalizer(maxDimension, quality int) *Normalizer {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Normalizer{maxDimension: maxDimension, quality: quality}
}

// Normalize decodes raw (JPEG, PNG, or GIF), scales it down so neither
// dimension exceeds the configured bound, flattens alpha and palette color
// onto RGB, and returns the result as JPEG bytes. Nil input passes through as
// nil; an undecodable payload yields domain.ErrUnsupportedImage.
func (n *Normalizer) Normalize(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}

	bounds := src.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), n.maxDimension)

	// Scaling onto an RGBA canvas handles the color-mode conversion as well;
	// the JPEG encoder drops the alpha channel on encode.
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: n.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin shrinks (w, h) proportionally until both sides are within bound.
// Images already inside the bound keep their size; nothing is ever upscaled.
func fitWithin(w, h, bound int) (int, int) {
	if w <= bound && h <= bound {
		return w, h
	}
	if w >= h {
		return bound, max(h*bound/w, 1)
	}
	return max(w*bound/h, 1), bound
}
