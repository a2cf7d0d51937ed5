// Package scanbar provides barcode and QR code scanning as a thin
// object-oriented façade over a decoding engine. Callers construct an Image
// from a file path or raw buffer, configure a Scanner through its builder,
// and iterate the decoded Symbols of the returned SymbolSet.
//
// The decoding algorithms themselves (symbology detection, image search,
// location extraction) live entirely in the engine; this layer owns image
// lifetime, scanner configuration, result staleness tracking and error
// translation.
package scanbar

import (
	"image"

	"github.com/MeKo-Tech/scanbar/internal/engine"
	"github.com/MeKo-Tech/scanbar/internal/version"
)

// Version returns the scanbar release version.
func Version() string { return version.Version }

// EngineVersion returns the version of the linked decoding engine.
func EngineVersion() string { return engine.Version() }

// ScanPath is a one-shot convenience: it loads the file, scans it with a
// default all-symbologies scanner and returns both the image and its symbol
// set. The caller owns the returned image.
func ScanPath(path string) (*Image, *SymbolSet, error) {
	img, err := FromPath(path)
	if err != nil {
		return nil, nil, err
	}
	scanner, err := NewScannerBuilder().Build()
	if err != nil {
		return nil, nil, err
	}
	set, err := scanner.Scan(img)
	if err != nil {
		return nil, nil, err
	}
	return img, set, nil
}

// ScanImage is a one-shot convenience for an already decoded image.
func ScanImage(src image.Image) (*Image, *SymbolSet, error) {
	img := FromImage(src)
	scanner, err := NewScannerBuilder().Build()
	if err != nil {
		return nil, nil, err
	}
	set, err := scanner.Scan(img)
	if err != nil {
		return nil, nil, err
	}
	return img, set, nil
}
