package engine

import (
	"context"
	"image"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scanbar/internal/testutil"
)

func TestDecodeQR(t *testing.T) {
	img := testutil.QRImage(t, "HELLO WORLD", 200)

	eng := New()
	results, err := eng.Decode(context.Background(), img, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, FormatQR, results[0].Format)
	assert.Equal(t, "HELLO WORLD", results[0].Text)
	assert.NotEmpty(t, results[0].Points)
	assert.Positive(t, results[0].Quality)
}

func TestDecodeCode128(t *testing.T) {
	img := testutil.Code128Image(t, "SCAN-12345", 300, 80)

	eng := New()
	results, err := eng.Decode(context.Background(), img, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, FormatCode128, results[0].Format)
	assert.Equal(t, "SCAN-12345", results[0].Text)
}

func TestDecodeEAN13(t *testing.T) {
	// 12 digits plus a valid check digit.
	img := testutil.EAN13Image(t, "4006381333931", 300, 100)

	eng := New()
	results, err := eng.Decode(context.Background(), img, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, FormatEAN13, results[0].Format)
	assert.Equal(t, "4006381333931", results[0].Text)
}

func TestDecodeBlankImage(t *testing.T) {
	img := testutil.BlankImage(200, 200)

	eng := New()
	results, err := eng.Decode(context.Background(), img, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDecodeFormatRestriction(t *testing.T) {
	img := testutil.QRImage(t, "RESTRICTED", 200)

	eng := New()
	results, err := eng.Decode(context.Background(), img, Options{
		Formats: []Format{FormatCode128, FormatEAN13},
	})
	require.NoError(t, err)
	assert.Empty(t, results, "QR symbol must not decode when only linear formats are enabled")
}

func TestDecodeNilImage(t *testing.T) {
	eng := New()
	_, err := eng.Decode(context.Background(), nil, Options{})
	require.Error(t, err)
}

func TestDecodeCanceledContext(t *testing.T) {
	img := testutil.QRImage(t, "CANCELED", 200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New()
	_, err := eng.Decode(ctx, img, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecodeTryHarderRotated(t *testing.T) {
	upright := testutil.Code128Image(t, "ROTATE-ME", 300, 80)
	rotated := imaging.Rotate90(upright)

	eng := New()

	results, err := eng.Decode(context.Background(), rotated, Options{
		Formats:   []Format{FormatCode128},
		TryHarder: true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ROTATE-ME", results[0].Text)

	// Located points must land inside the rotated image frame.
	b := rotated.Bounds()
	for _, p := range results[0].Points {
		assert.GreaterOrEqual(t, p.X, 0)
		assert.GreaterOrEqual(t, p.Y, 0)
		assert.Less(t, p.X, b.Dx())
		assert.Less(t, p.Y, b.Dy())
	}
}

func TestDecodeROI(t *testing.T) {
	qr := testutil.QRImage(t, "IN-REGION", 150)

	// Place the symbol in the lower-right quadrant of a larger canvas.
	canvas := testutil.BlankImage(400, 400)
	for y := 0; y < 150; y++ {
		for x := 0; x < 150; x++ {
			canvas.SetGray(x+230, y+230, qr.GrayAt(x, y))
		}
	}

	eng := New()

	results, err := eng.Decode(context.Background(), canvas, Options{
		ROI: image.Rect(220, 220, 400, 400),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "IN-REGION", results[0].Text)

	// A region that excludes the symbol finds nothing.
	results, err = eng.Decode(context.Background(), canvas, Options{
		ROI: image.Rect(0, 0, 200, 200),
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestOrdered(t *testing.T) {
	got := ordered([]Format{FormatCode128, FormatQR, FormatEAN13})
	assert.Equal(t, []Format{FormatQR, FormatEAN13, FormatCode128}, got)
}

func TestVersionNeverEmpty(t *testing.T) {
	assert.NotEmpty(t, Version())
}
