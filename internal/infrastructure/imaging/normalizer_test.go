package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 128})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, raw []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("output is not valid JPEG: %v", err)
	}
	return img
}

func TestNormalize_BoundsLargeImage(t *testing.T) {
	n := NewNormalizer(1024, 80)

	out, err := n.Normalize(encodePNG(t, 2048, 512))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	img := decodeJPEG(t, out)
	if got := img.Bounds().Dx(); got != 1024 {
		t.Fatalf("expected width 1024, got %d", got)
	}
	if got := img.Bounds().Dy(); got != 256 {
		t.Fatalf("expected height scaled to 256, got %d", got)
	}
}

func TestNormalize_KeepsSmallImageSize(t *testing.T) {
	n := NewNormalizer(1024, 80)

	out, err := n.Normalize(encodePNG(t, 300, 200))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	img := decodeJPEG(t, out)
	if img.Bounds().Dx() != 300 || img.Bounds().Dy() != 200 {
		t.Fatalf("small image must not be upscaled, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestNormalize_TallImage(t *testing.T) {
	n := NewNormalizer(100, 80)

	out, err := n.Normalize(encodePNG(t, 50, 400))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	img := decodeJPEG(t, out)
	if img.Bounds().Dy() != 100 {
		t.Fatalf("expected height bounded to 100, got %d", img.Bounds().Dy())
	}
	if img.Bounds().Dx() != 12 {
		t.Fatalf("expected width 12, got %d", img.Bounds().Dx())
	}
}

func TestNormalize_AlphaFlattened(t *testing.T) {
	n := NewNormalizer(1024, 80)

	// PNG with an alpha channel must still come back as JPEG (no alpha).
	out, err := n.Normalize(encodePNG(t, 10, 10))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	decodeJPEG(t, out)
}

func TestNormalize_NilPassthrough(t *testing.T) {
	n := NewNormalizer(1024, 80)

	out, err := n.Normalize(nil)
	if err != nil {
		t.Fatalf("nil input must not error: %v", err)
	}
	if out != nil {
		t.Fatalf("nil input must yield nil output, got %d bytes", len(out))
	}
}

func TestNormalize_Unsupported(t *testing.T) {
	n := NewNormalizer(1024, 80)

	if _, err := n.Normalize([]byte("definitely not an image")); !errors.Is(err, domain.ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestNormalize_JPEGRoundTrip(t *testing.T) {
	n := NewNormalizer(1024, 80)

	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	out, err := n.Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	img := decodeJPEG(t, out)
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Fatalf("unexpected dimensions %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}
