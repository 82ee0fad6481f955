package source

import (
	"bytes"
	"fmt"
	"image"
)

// Gate is the quality gate a fetched payload must pass before it is
// accepted as a site's icon.
//
// ICO and SVG payloads always pass: ICO containers typically bundle
// multiple sizes and SVG scales freely, so neither has a meaningful single
// dimension to check. Raster payloads must decode and meet the minimum
// dimensions.
type Gate struct {
	MinWidth  int
	MinHeight int
}

// DefaultGate returns the standard 32x32 minimum.
func DefaultGate() Gate {
	return Gate{MinWidth: 32, MinHeight: 32}
}

// Check validates a payload of the given sniffed format.
func (g Gate) Check(data []byte, format Format) error {
	switch {
	case format == FormatICO, format == FormatSVG:
		return nil
	case format.Raster():
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		if cfg.Width < g.MinWidth || cfg.Height < g.MinHeight {
			return fmt.Errorf("%w: %dx%d < %dx%d", ErrTooSmall, cfg.Width, cfg.Height, g.MinWidth, g.MinHeight)
		}
		return nil
	default:
		return ErrUnsupportedFormat
	}
}
