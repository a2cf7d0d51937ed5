package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/require"
)

// MatrixImage renders a bit matrix into a grayscale image, black modules on white.
func MatrixImage(m *gozxing.BitMatrix) *image.Gray {
	w, h := m.GetWidth(), m.GetHeight()
	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

// QRImage generates a QR code image carrying the given payload.
func QRImage(t *testing.T, payload string, size int) *image.Gray {
	t.Helper()
	writer := qrcode.NewQRCodeWriter()
	matrix, err := writer.Encode(payload, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	require.NoError(t, err, "failed to encode QR payload %q", payload)
	return MatrixImage(matrix)
}

// Code128Image generates a CODE-128 barcode image carrying the given payload.
func Code128Image(t *testing.T, payload string, width, height int) *image.Gray {
	t.Helper()
	writer := oned.NewCode128Writer()
	matrix, err := writer.Encode(payload, gozxing.BarcodeFormat_CODE_128, width, height, nil)
	require.NoError(t, err, "failed to encode CODE-128 payload %q", payload)
	return MatrixImage(matrix)
}

// EAN13Image generates an EAN-13 barcode image. The payload must be 13 digits
// with a valid check digit.
func EAN13Image(t *testing.T, digits string, width, height int) *image.Gray {
	t.Helper()
	writer := oned.NewEAN13Writer()
	matrix, err := writer.Encode(digits, gozxing.BarcodeFormat_EAN_13, width, height, nil)
	require.NoError(t, err, "failed to encode EAN-13 payload %q", digits)
	return MatrixImage(matrix)
}

// BlankImage returns a uniformly white image with no symbols in it.
func BlankImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	return img
}

// WritePNG encodes img as PNG at path.
func WritePNG(t *testing.T, img image.Image, path string) {
	t.Helper()
	f, err := os.Create(path) //nolint:gosec // G304: test-controlled path
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()
	require.NoError(t, png.Encode(f, img))
}

// TempPNG writes img as a PNG into the test's temp dir and returns its path.
func TempPNG(t *testing.T, img image.Image, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	WritePNG(t, img, path)
	return path
}
