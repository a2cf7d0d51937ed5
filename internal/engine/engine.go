package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"runtime/debug"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/aztec"
	"github.com/makiuchi-d/gozxing/common"
	"github.com/makiuchi-d/gozxing/datamatrix"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/pdf417"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// enginePath is the module path of the decoding library, used for version reporting.
const enginePath = "github.com/makiuchi-d/gozxing"

// searchOrder fixes the order in which symbology readers are consulted so that
// results are deterministic for a given image and option set.
var searchOrder = []Format{
	FormatQR,
	FormatDataMatrix,
	FormatAztec,
	FormatPDF417,
	FormatEAN13,
	FormatEAN8,
	FormatUPCA,
	FormatUPCE,
	FormatCode128,
	FormatCode93,
	FormatCode39,
	FormatITF,
	FormatCodabar,
}

// Engine decodes barcodes from images. The zero value is not usable; construct
// with New. An Engine is not safe for concurrent use because the underlying
// symbology readers keep per-decode state; callers must serialize access.
type Engine struct{}

// New returns a ready-to-use engine.
func New() *Engine { return &Engine{} }

// Version reports the version of the linked decoding library, or "unknown"
// when build information is unavailable (e.g. in tests).
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			if dep.Path == enginePath {
				return dep.Version
			}
		}
	}
	return "unknown"
}

// attempt is one orientation of the input to try, with a mapping from decoded
// point coordinates back into the original image frame.
type attempt struct {
	img     image.Image
	mapBack func(Point) Point
}

// Decode searches img for barcodes of the enabled formats. A clean "nothing
// found" yields (nil, nil); only genuine engine failures return an error.
// The context is checked between symbology readers; an in-flight reader call
// cannot be preempted.
func (e *Engine) Decode(ctx context.Context, img image.Image, opts Options) ([]Result, error) {
	if img == nil {
		return nil, errors.New("engine: nil image")
	}
	var roiMin Point
	if !opts.ROI.Empty() {
		sub, off, ok := cropROI(img, opts.ROI)
		if !ok {
			return nil, nil
		}
		img, roiMin = sub, off
	}

	for _, att := range attempts(img, opts.TryHarder) {
		results, err := e.decodeOnce(ctx, att, opts)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			// Report point positions in the full image frame.
			for i := range results {
				for j := range results[i].Points {
					results[i].Points[j].X += roiMin.X
					results[i].Points[j].Y += roiMin.Y
				}
			}
			return results, nil
		}
	}
	return nil, nil
}

// decodeOnce runs every enabled reader against a single orientation.
func (e *Engine) decodeOnce(ctx context.Context, att attempt, opts Options) ([]Result, error) {
	source := gozxing.NewLuminanceSourceFromImage(att.img)
	bitmap, err := gozxing.NewBinaryBitmap(common.NewHybridBinarizer(source))
	if err != nil {
		return nil, fmt.Errorf("engine: binarize: %w", err)
	}

	hints := make(map[gozxing.DecodeHintType]interface{})
	if opts.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	formats := opts.Formats
	if len(formats) == 0 {
		formats = searchOrder
	}

	var out []Result
	seen := make(map[string]struct{})
	for _, f := range ordered(formats) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reader := readerFor(f)
		if reader == nil {
			continue
		}
		r, err := reader.Decode(bitmap, hints)
		if err != nil {
			var re gozxing.ReaderException
			if errors.As(err, &re) {
				// No symbol of this format in the image; try the next reader.
				continue
			}
			return nil, fmt.Errorf("engine: decode %v: %w", f, err)
		}
		res := normalize(r, att.mapBack)
		key := fmt.Sprintf("%d/%s", res.Format, res.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, res)
	}
	return out, nil
}

// ordered filters searchOrder down to the requested formats, preserving the
// deterministic search order regardless of caller ordering.
func ordered(requested []Format) []Format {
	want := make(map[Format]struct{}, len(requested))
	for _, f := range requested {
		want[f] = struct{}{}
	}
	out := make([]Format, 0, len(want))
	for _, f := range searchOrder {
		if _, ok := want[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// attempts lists the orientations to try. Without TryHarder only the original
// orientation is scanned; with it, quarter-turn rotations are retried and
// located points are mapped back into the original frame.
func attempts(img image.Image, tryHarder bool) []attempt {
	identity := attempt{img: img, mapBack: func(p Point) Point { return p }}
	if !tryHarder {
		return []attempt{identity}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	return []attempt{
		identity,
		{
			// imaging.Rotate90 rotates counter-clockwise; a destination pixel
			// (x, y) originates from source (w-1-y, x).
			img:     imaging.Rotate90(img),
			mapBack: func(p Point) Point { return Point{X: w - 1 - p.Y, Y: p.X} },
		},
		{
			img:     imaging.Rotate180(img),
			mapBack: func(p Point) Point { return Point{X: w - 1 - p.X, Y: h - 1 - p.Y} },
		},
		{
			img:     imaging.Rotate270(img),
			mapBack: func(p Point) Point { return Point{X: p.Y, Y: h - 1 - p.X} },
		},
	}
}

// normalize converts a gozxing result into the engine's result type.
func normalize(r *gozxing.Result, mapBack func(Point) Point) Result {
	pts := r.GetResultPoints()
	points := make([]Point, 0, len(pts))
	for _, p := range pts {
		points = append(points, mapBack(Point{X: int(p.GetX()), Y: int(p.GetY())}))
	}
	return Result{
		Format:   formatFromZXing(r.GetBarcodeFormat()),
		Text:     r.GetText(),
		RawBytes: r.GetRawBytes(),
		Points:   points,
		// The engine exposes no calibrated confidence; the point count serves
		// as a relative quality indicator, matching the located extent.
		Quality: max(len(points), 1),
	}
}

// readerFor returns a fresh reader for the given format. Readers are stateful,
// so a new instance is created per decode pass.
func readerFor(f Format) gozxing.Reader {
	switch f {
	case FormatQR:
		return qrcode.NewQRCodeReader()
	case FormatDataMatrix:
		return datamatrix.NewDataMatrixReader()
	case FormatAztec:
		return aztec.NewAztecReader()
	case FormatPDF417:
		return pdf417.NewPDF417Reader()
	case FormatCode128:
		return oned.NewCode128Reader()
	case FormatCode93:
		return oned.NewCode93Reader()
	case FormatCode39:
		return oned.NewCode39Reader()
	case FormatEAN8:
		return oned.NewEAN8Reader()
	case FormatEAN13:
		return oned.NewEAN13Reader()
	case FormatUPCA:
		return oned.NewUPCAReader()
	case FormatUPCE:
		return oned.NewUPCEReader()
	case FormatITF:
		return oned.NewITFReader()
	case FormatCodabar:
		return oned.NewCodaBarReader()
	default:
		return nil
	}
}

func formatFromZXing(bf gozxing.BarcodeFormat) Format {
	switch bf {
	case gozxing.BarcodeFormat_QR_CODE:
		return FormatQR
	case gozxing.BarcodeFormat_DATA_MATRIX:
		return FormatDataMatrix
	case gozxing.BarcodeFormat_AZTEC:
		return FormatAztec
	case gozxing.BarcodeFormat_PDF_417:
		return FormatPDF417
	case gozxing.BarcodeFormat_CODE_128:
		return FormatCode128
	case gozxing.BarcodeFormat_CODE_93:
		return FormatCode93
	case gozxing.BarcodeFormat_CODE_39:
		return FormatCode39
	case gozxing.BarcodeFormat_EAN_8:
		return FormatEAN8
	case gozxing.BarcodeFormat_EAN_13:
		return FormatEAN13
	case gozxing.BarcodeFormat_UPC_A:
		return FormatUPCA
	case gozxing.BarcodeFormat_UPC_E:
		return FormatUPCE
	case gozxing.BarcodeFormat_ITF:
		return FormatITF
	case gozxing.BarcodeFormat_CODABAR:
		return FormatCodabar
	default:
		return FormatUnknown
	}
}

// cropROI copies the region of interest into a zero-origin image and returns
// the region's offset in the source frame.
func cropROI(img image.Image, r image.Rectangle) (image.Image, Point, bool) {
	rb := r.Intersect(img.Bounds())
	if rb.Empty() {
		return nil, Point{}, false
	}
	dst := image.NewGray(image.Rect(0, 0, rb.Dx(), rb.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rb.Min, draw.Src)
	return dst, Point{X: rb.Min.X, Y: rb.Min.Y}, true
}
