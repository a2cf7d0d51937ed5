package scanbar

import (
	"errors"
	"image"
	"image/draw"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/scanbar/internal/utils"
)

// Image is an owning wrapper around decodable pixel data. It tracks the
// symbol set produced by the most recent scan and a generation counter used
// to detect stale result views.
//
// An Image must not be scanned concurrently; the scan operation takes
// exclusive access for its duration.
type Image struct {
	mu      sync.Mutex
	src     image.Image
	data    []byte // raw buffer when constructed from one; borrowed, never copied
	width   int
	height  int
	format  PixelFormat
	seq     uint32
	gen     uint64
	symbols *SymbolSet
	closed  bool
}

// FromPath loads and decodes an image file. I/O failures are reported as
// *IOError, undecodable content as *DecodeError.
func FromPath(path string) (*Image, error) {
	img, _, err := utils.LoadImage(path)
	if err != nil {
		var ie *utils.ImageError
		if errors.As(err, &ie) && ie.Op == "decode" {
			return nil, &DecodeError{Path: path, Err: ie.Err}
		}
		return nil, &IOError{Path: path, Err: err}
	}
	return FromImage(img), nil
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	format := FormatRGB4
	if _, ok := img.(*image.Gray); ok {
		format = FormatY800
	}
	return &Image{src: img, width: b.Dx(), height: b.Dy(), format: format}
}

// FromBuffer adopts a raw pixel buffer without copying it. The buffer length
// must equal width*height*bpp for the given format; otherwise an
// *InvalidDimensionsError is returned. The caller must not mutate the buffer
// while the Image is alive.
func FromBuffer(width, height int, format PixelFormat, data []byte) (*Image, error) {
	bpp := format.BytesPerPixel()
	if width <= 0 || height <= 0 || bpp == 0 || len(data) != width*height*bpp {
		return nil, &InvalidDimensionsError{Width: width, Height: height, Format: format, Len: len(data)}
	}

	rect := image.Rect(0, 0, width, height)
	var src image.Image
	switch format {
	case FormatY800, FormatGrey:
		src = &image.Gray{Pix: data, Stride: width, Rect: rect}
	case FormatRGB4:
		src = &image.RGBA{Pix: data, Stride: 4 * width, Rect: rect}
	case FormatRGB3:
		// No packed 24-bit stdlib type; widen into RGBA. The original buffer
		// is still retained as the Data view.
		rgba := image.NewRGBA(rect)
		for i, j := 0, 0; i < len(data); i, j = i+3, j+4 {
			rgba.Pix[j] = data[i]
			rgba.Pix[j+1] = data[i+1]
			rgba.Pix[j+2] = data[i+2]
			rgba.Pix[j+3] = 0xff
		}
		src = rgba
	}
	return &Image{src: src, data: data, width: width, height: height, format: format}, nil
}

// Width returns the pixel width.
func (img *Image) Width() int { return img.width }

// Height returns the pixel height.
func (img *Image) Height() int { return img.height }

// Format returns the pixel format tag.
func (img *Image) Format() PixelFormat { return img.format }

// Bounds returns the image bounds.
func (img *Image) Bounds() image.Rectangle { return image.Rect(0, 0, img.width, img.height) }

// Data returns the backing pixel buffer without copying, or nil when the
// underlying representation does not expose one.
func (img *Image) Data() []byte {
	if img.data != nil {
		return img.data
	}
	switch s := img.src.(type) {
	case *image.Gray:
		return s.Pix
	case *image.RGBA:
		return s.Pix
	case *image.NRGBA:
		return s.Pix
	default:
		return nil
	}
}

// Sequence returns the frame sequence number.
func (img *Image) Sequence() uint32 { return img.seq }

// SetSequence sets the frame sequence number.
func (img *Image) SetSequence(seq uint32) { img.seq = seq }

// Generation returns the scan generation; it starts at zero and is
// incremented by every successful scan.
func (img *Image) Generation() uint64 {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.gen
}

// Symbols returns the symbol set from the most recent scan, or nil before the
// first scan or after Close.
func (img *Image) Symbols() *SymbolSet {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.symbols
}

// FirstSymbol returns the first symbol of the most recent scan, or nil.
func (img *Image) FirstSymbol() *Symbol {
	if set := img.Symbols(); set != nil {
		return set.First()
	}
	return nil
}

// Convert renders the image into a new Image with the target pixel format.
func (img *Image) Convert(format PixelFormat) (*Image, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, &InvalidDimensionsError{Width: img.width, Height: img.height, Format: format, Len: 0}
	}
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.closed {
		return nil, ErrImageClosed
	}

	buf := make([]byte, img.width*img.height*bpp)
	switch format {
	case FormatY800, FormatGrey:
		gray := &image.Gray{Pix: buf, Stride: img.width, Rect: img.Bounds()}
		drawSrc(gray, img.src)
	case FormatRGB4:
		rgba := &image.RGBA{Pix: buf, Stride: 4 * img.width, Rect: img.Bounds()}
		drawSrc(rgba, img.src)
	case FormatRGB3:
		rgba := image.NewRGBA(img.Bounds())
		drawSrc(rgba, img.src)
		for i, j := 0, 0; i < len(buf); i, j = i+3, j+4 {
			buf[i] = rgba.Pix[j]
			buf[i+1] = rgba.Pix[j+1]
			buf[i+2] = rgba.Pix[j+2]
		}
	}
	return FromBuffer(img.width, img.height, format, buf)
}

// Write saves the pixel data to path; the encoding is chosen from the file
// extension.
func (img *Image) Write(path string) error {
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.closed {
		return ErrImageClosed
	}
	if err := imaging.Save(img.src, path); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}

func drawSrc(dst draw.Image, src image.Image) {
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
}

// Close releases the image. Any symbol sets produced from it become invalid,
// and further scans return ErrImageClosed. Close is idempotent.
func (img *Image) Close() error {
	img.mu.Lock()
	defer img.mu.Unlock()
	img.closed = true
	img.symbols = nil
	img.src = nil
	img.data = nil
	return nil
}
