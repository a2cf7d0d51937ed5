package scanbar

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleSymbolSet is returned when a symbol set is accessed after the
	// owning image was re-scanned; the set refers to an overwritten result slot.
	ErrStaleSymbolSet = errors.New("scanbar: symbol set is stale, image was re-scanned")

	// ErrImageClosed is returned when an image is used after Close.
	ErrImageClosed = errors.New("scanbar: image is closed")
)

// IOError indicates the image file could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("scanbar: read %q: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// DecodeError indicates the image file was unreadable as a supported raster format.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("scanbar: decode %q: %v", e.Path, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidDimensionsError indicates a raw buffer does not match the declared
// width, height and pixel format.
type InvalidDimensionsError struct {
	Width  int
	Height int
	Format PixelFormat
	Len    int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf(
		"scanbar: buffer length %d does not match %dx%d %s (want %d)",
		e.Len, e.Width, e.Height, e.Format, e.Width*e.Height*e.Format.BytesPerPixel(),
	)
}

// ConfigError indicates a (symbology, option) pair is unsupported by the
// linked engine, or a configuration string could not be parsed.
type ConfigError struct {
	Symbology Symbology
	Option    Config
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scanbar: config %s.%s: %s", e.Symbology.Key(), e.Option, e.Reason)
}

// ScanError carries a decode engine failure verbatim. "Nothing found" is not
// an error; only genuine engine failures are reported this way.
type ScanError struct {
	Err error
}

func (e *ScanError) Error() string { return fmt.Sprintf("scanbar: scan failed: %v", e.Err) }
func (e *ScanError) Unwrap() error { return e.Err }
