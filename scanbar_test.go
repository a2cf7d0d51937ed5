package scanbar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scanbar"
	"github.com/MeKo-Tech/scanbar/internal/testutil"
)

func TestScanPath(t *testing.T) {
	path := testutil.TempPNG(t, testutil.QRImage(t, "ONE-SHOT", 200), "oneshot.png")

	img, set, err := scanbar.ScanPath(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, img.Close()) }()

	require.Equal(t, 1, set.Len())
	assert.Equal(t, "ONE-SHOT", set.First().Text())
}

func TestScanPathMissingFile(t *testing.T) {
	_, _, err := scanbar.ScanPath("does-not-exist.png")
	var ioErr *scanbar.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestScanImage(t *testing.T) {
	img, set, err := scanbar.ScanImage(testutil.Code128Image(t, "IMG-99", 300, 80))
	require.NoError(t, err)
	defer func() { require.NoError(t, img.Close()) }()

	require.Equal(t, 1, set.Len())
	sym := set.First()
	assert.Equal(t, scanbar.SymbologyCode128, sym.Type())
	assert.Equal(t, "IMG-99", sym.Text())
}

func TestVersionStrings(t *testing.T) {
	assert.NotEmpty(t, scanbar.Version())
	assert.NotEmpty(t, scanbar.EngineVersion())
}
