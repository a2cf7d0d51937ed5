package scanbar

import "fmt"

// PixelFormat tags raw pixel buffers with their layout, encoded as a fourcc.
type PixelFormat uint32

const (
	// FormatY800 is 8-bit single-channel grayscale.
	FormatY800 = PixelFormat('Y' | '8'<<8 | '0'<<16 | '0'<<24)
	// FormatGrey is an alias fourcc for 8-bit grayscale.
	FormatGrey = PixelFormat('G' | 'R'<<8 | 'E'<<16 | 'Y'<<24)
	// FormatRGB3 is packed 24-bit RGB.
	FormatRGB3 = PixelFormat('R' | 'G'<<8 | 'B'<<16 | '3'<<24)
	// FormatRGB4 is packed 32-bit RGBA.
	FormatRGB4 = PixelFormat('R' | 'G'<<8 | 'B'<<16 | '4'<<24)
)

// ParsePixelFormat resolves a fourcc label such as "Y800" or "GREY".
func ParsePixelFormat(label string) (PixelFormat, error) {
	if len(label) == 0 || len(label) > 4 {
		return 0, fmt.Errorf("scanbar: invalid pixel format label %q", label)
	}
	var f PixelFormat
	for i := range 4 {
		c := byte(' ')
		if i < len(label) {
			c = label[i]
		}
		f |= PixelFormat(c) << (8 * i)
	}
	switch f {
	case FormatY800, FormatGrey, FormatRGB3, FormatRGB4:
		return f, nil
	default:
		return 0, fmt.Errorf("scanbar: unsupported pixel format %q", label)
	}
}

// FourCC returns the packed fourcc value of the format.
func (f PixelFormat) FourCC() uint32 { return uint32(f) }

// String returns the fourcc label, e.g. "Y800".
func (f PixelFormat) String() string {
	b := []byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	for len(b) > 0 && (b[len(b)-1] == 0 || b[len(b)-1] == ' ') {
		b = b[:len(b)-1]
	}
	return string(b)
}

// BytesPerPixel returns the per-pixel byte width of the format, or 0 for an
// unknown format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatY800, FormatGrey:
		return 1
	case FormatRGB3:
		return 3
	case FormatRGB4:
		return 4
	default:
		return 0
	}
}
