package scanbar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scanbar"
	"github.com/MeKo-Tech/scanbar/internal/testutil"
)

func TestFromPath(t *testing.T) {
	path := testutil.TempPNG(t, testutil.QRImage(t, "FROM-PATH", 180), "qr.png")

	img, err := scanbar.FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 180, img.Width())
	assert.Equal(t, 180, img.Height())
	assert.Equal(t, scanbar.FormatY800, img.Format())
}

func TestFromPathMissingFile(t *testing.T) {
	_, err := scanbar.FromPath(filepath.Join(t.TempDir(), "missing.png"))
	var ioErr *scanbar.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestFromPathUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("this is not a PNG"), 0o600))

	_, err := scanbar.FromPath(path)
	var decErr *scanbar.DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestFromBuffer(t *testing.T) {
	data := make([]byte, 8*4)
	img, err := scanbar.FromBuffer(8, 4, scanbar.FormatY800, data)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Width())
	assert.Equal(t, 4, img.Height())

	// The buffer is adopted, not copied.
	buf := img.Data()
	require.Len(t, buf, len(data))
	data[0] = 0x7f
	assert.Equal(t, byte(0x7f), buf[0])
}

func TestFromBufferInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		format scanbar.PixelFormat
		size   int
	}{
		{"short buffer", 10, 10, scanbar.FormatY800, 99},
		{"long buffer", 10, 10, scanbar.FormatY800, 101},
		{"zero width", 0, 10, scanbar.FormatY800, 0},
		{"rgb4 mismatch", 10, 10, scanbar.FormatRGB4, 100},
		{"unknown format", 10, 10, scanbar.PixelFormat(0), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanbar.FromBuffer(tt.width, tt.height, tt.format, make([]byte, tt.size))
			var dimErr *scanbar.InvalidDimensionsError
			require.ErrorAs(t, err, &dimErr)
		})
	}
}

func TestFromBufferScansGray(t *testing.T) {
	src := testutil.QRImage(t, "RAW-GRAY", 200)
	b := src.Bounds()

	img, err := scanbar.FromBuffer(b.Dx(), b.Dy(), scanbar.FormatY800, src.Pix)
	require.NoError(t, err)

	scanner, err := scanbar.NewScannerBuilder().Build()
	require.NoError(t, err)
	set, err := scanner.Scan(img)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "RAW-GRAY", set.First().Text())
}

func TestImageSequence(t *testing.T) {
	img := scanbar.FromImage(testutil.BlankImage(10, 10))
	assert.Equal(t, uint32(0), img.Sequence())
	img.SetSequence(42)
	assert.Equal(t, uint32(42), img.Sequence())
}

func TestImageGeneration(t *testing.T) {
	scanner, err := scanbar.NewScannerBuilder().Build()
	require.NoError(t, err)

	img := scanbar.FromImage(testutil.BlankImage(40, 40))
	assert.Equal(t, uint64(0), img.Generation())
	assert.Nil(t, img.Symbols())
	assert.Nil(t, img.FirstSymbol())

	set, err := scanner.Scan(img)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), img.Generation())
	assert.Same(t, set, img.Symbols())
	assert.Equal(t, uint64(1), set.Generation())
}

func TestImageConvert(t *testing.T) {
	src := testutil.QRImage(t, "CONVERTED", 150)
	img := scanbar.FromImage(src)

	rgb, err := img.Convert(scanbar.FormatRGB4)
	require.NoError(t, err)
	assert.Equal(t, scanbar.FormatRGB4, rgb.Format())
	assert.Len(t, rgb.Data(), 150*150*4)

	// The converted image still scans.
	scanner, err := scanbar.NewScannerBuilder().Build()
	require.NoError(t, err)
	set, err := scanner.Scan(rgb)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "CONVERTED", set.First().Text())

	gray, err := rgb.Convert(scanbar.FormatGrey)
	require.NoError(t, err)
	assert.Equal(t, scanbar.FormatGrey, gray.Format())
	assert.Len(t, gray.Data(), 150*150)
}

func TestImageWrite(t *testing.T) {
	img := scanbar.FromImage(testutil.QRImage(t, "SAVED", 120))
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, img.Write(path))

	reloaded, err := scanbar.FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 120, reloaded.Width())
}

func TestImageCloseIdempotent(t *testing.T) {
	img := scanbar.FromImage(testutil.BlankImage(10, 10))
	require.NoError(t, img.Close())
	require.NoError(t, img.Close())

	assert.Nil(t, img.Symbols())
	require.ErrorIs(t, img.Write(filepath.Join(t.TempDir(), "x.png")), scanbar.ErrImageClosed)
	_, err := img.Convert(scanbar.FormatY800)
	require.ErrorIs(t, err, scanbar.ErrImageClosed)
}
