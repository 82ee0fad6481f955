package source

import (
	"bytes"
	"strings"

	// Raster decoders registered for image.DecodeConfig and image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is the sniffed payload format of a provider response.
type Format int

const (
	FormatUnknown Format = iota
	FormatICO
	FormatSVG
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatWEBP
	FormatBMP
	FormatTIFF
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatICO:
		return "ico"
	case FormatSVG:
		return "svg"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatWEBP:
		return "webp"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// Raster reports whether the format is a decodable raster image.
// ICO and SVG are carried by reference instead of being re-encoded.
func (f Format) Raster() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatGIF, FormatWEBP, FormatBMP, FormatTIFF:
		return true
	default:
		return false
	}
}

var (
	icoMagic  = []byte{0x00, 0x00, 0x01, 0x00}
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xFF, 0xD8}
	gifMagic  = []byte("GIF8")
	bmpMagic  = []byte("BM")
	tiffLE    = []byte{'I', 'I', 0x2A, 0x00}
	tiffBE    = []byte{'M', 'M', 0x00, 0x2A}
)

// Detect sniffs the payload format from magic bytes, falling back to the
// Content-Type header for SVG, which has no magic number.
func Detect(data []byte, contentType string) Format {
	switch {
	case bytes.HasPrefix(data, icoMagic):
		return FormatICO
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG
	case bytes.HasPrefix(data, gifMagic):
		return FormatGIF
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return FormatWEBP
	case bytes.HasPrefix(data, tiffLE), bytes.HasPrefix(data, tiffBE):
		return FormatTIFF
	case bytes.HasPrefix(data, bmpMagic):
		return FormatBMP
	}

	if isSVG(data, contentType) {
		return FormatSVG
	}
	return FormatUnknown
}

// isSVG checks the Content-Type and then the document head. SVG payloads
// may open with an XML declaration or comments before the root element.
func isSVG(data []byte, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "svg") {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}
