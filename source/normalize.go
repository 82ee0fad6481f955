package source

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// NormalizedSize is the square edge of normalized inline icons.
const NormalizedSize = 64

// Normalize decodes a raster payload and re-encodes it as a 64x64 PNG.
// The source aspect ratio is preserved: non-square images are scaled to
// fit and centered on a transparent canvas.
func Normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, NormalizedSize, NormalizedSize))
	draw.CatmullRom.Scale(dst, fitRect(src.Bounds()), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitRect returns the centered target rectangle that preserves the source
// aspect ratio within the normalized canvas.
func fitRect(src image.Rectangle) image.Rectangle {
	w, h := src.Dx(), src.Dy()
	if w <= 0 || h <= 0 {
		return image.Rect(0, 0, NormalizedSize, NormalizedSize)
	}

	tw, th := NormalizedSize, NormalizedSize
	if w > h {
		th = NormalizedSize * h / w
	} else if h > w {
		tw = NormalizedSize * w / h
	}

	x0 := (NormalizedSize - tw) / 2
	y0 := (NormalizedSize - th) / 2
	return image.Rect(x0, y0, x0+tw, y0+th)
}
