package scanbar

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/scanbar/internal/engine"
)

// Symbology identifies a barcode encoding standard.
type Symbology int

const (
	// SymbologyNone addresses no symbology in results; in configuration
	// contexts it addresses all symbologies at once.
	SymbologyNone Symbology = iota
	SymbologyEAN8
	SymbologyEAN13
	SymbologyUPCA
	SymbologyUPCE
	SymbologyITF
	SymbologyCodabar
	SymbologyCode39
	SymbologyCode93
	SymbologyCode128
	SymbologyPDF417
	SymbologyQRCode
	SymbologyDataMatrix
	SymbologyAztec
)

// AllSymbologies lists every decodable symbology, in engine search order.
func AllSymbologies() []Symbology {
	return []Symbology{
		SymbologyQRCode,
		SymbologyDataMatrix,
		SymbologyAztec,
		SymbologyPDF417,
		SymbologyEAN13,
		SymbologyEAN8,
		SymbologyUPCA,
		SymbologyUPCE,
		SymbologyCode128,
		SymbologyCode93,
		SymbologyCode39,
		SymbologyITF,
		SymbologyCodabar,
	}
}

var symbologyNames = map[Symbology]string{
	SymbologyNone:       "None",
	SymbologyEAN8:       "EAN-8",
	SymbologyEAN13:      "EAN-13",
	SymbologyUPCA:       "UPC-A",
	SymbologyUPCE:       "UPC-E",
	SymbologyITF:        "I2/5",
	SymbologyCodabar:    "Codabar",
	SymbologyCode39:     "CODE-39",
	SymbologyCode93:     "CODE-93",
	SymbologyCode128:    "CODE-128",
	SymbologyPDF417:     "PDF417",
	SymbologyQRCode:     "QR-Code",
	SymbologyDataMatrix: "DataMatrix",
	SymbologyAztec:      "Aztec",
}

// String returns the display name of the symbology, e.g. "QR-Code".
func (s Symbology) String() string {
	if name, ok := symbologyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Symbology(%d)", int(s))
}

// Key returns the lowercase configuration key of the symbology, e.g. "qrcode",
// as accepted by ParseSymbology and ParseConfig.
func (s Symbology) Key() string {
	switch s {
	case SymbologyNone:
		return "none"
	case SymbologyEAN8:
		return "ean8"
	case SymbologyEAN13:
		return "ean13"
	case SymbologyUPCA:
		return "upca"
	case SymbologyUPCE:
		return "upce"
	case SymbologyITF:
		return "i25"
	case SymbologyCodabar:
		return "codabar"
	case SymbologyCode39:
		return "code39"
	case SymbologyCode93:
		return "code93"
	case SymbologyCode128:
		return "code128"
	case SymbologyPDF417:
		return "pdf417"
	case SymbologyQRCode:
		return "qrcode"
	case SymbologyDataMatrix:
		return "datamatrix"
	case SymbologyAztec:
		return "aztec"
	default:
		return ""
	}
}

// ParseSymbology resolves a configuration key like "qrcode" or "code128".
func ParseSymbology(key string) (Symbology, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, s := range append([]Symbology{SymbologyNone}, AllSymbologies()...) {
		if s.Key() == key {
			return s, nil
		}
	}
	return SymbologyNone, fmt.Errorf("unknown symbology %q", key)
}

// SymbolName returns the display name for a symbology.
func SymbolName(s Symbology) string { return s.String() }

func (s Symbology) engineFormat() engine.Format {
	switch s {
	case SymbologyEAN8:
		return engine.FormatEAN8
	case SymbologyEAN13:
		return engine.FormatEAN13
	case SymbologyUPCA:
		return engine.FormatUPCA
	case SymbologyUPCE:
		return engine.FormatUPCE
	case SymbologyITF:
		return engine.FormatITF
	case SymbologyCodabar:
		return engine.FormatCodabar
	case SymbologyCode39:
		return engine.FormatCode39
	case SymbologyCode93:
		return engine.FormatCode93
	case SymbologyCode128:
		return engine.FormatCode128
	case SymbologyPDF417:
		return engine.FormatPDF417
	case SymbologyQRCode:
		return engine.FormatQR
	case SymbologyDataMatrix:
		return engine.FormatDataMatrix
	case SymbologyAztec:
		return engine.FormatAztec
	default:
		return engine.FormatUnknown
	}
}

func symbologyFromEngine(f engine.Format) Symbology {
	switch f {
	case engine.FormatEAN8:
		return SymbologyEAN8
	case engine.FormatEAN13:
		return SymbologyEAN13
	case engine.FormatUPCA:
		return SymbologyUPCA
	case engine.FormatUPCE:
		return SymbologyUPCE
	case engine.FormatITF:
		return SymbologyITF
	case engine.FormatCodabar:
		return SymbologyCodabar
	case engine.FormatCode39:
		return SymbologyCode39
	case engine.FormatCode93:
		return SymbologyCode93
	case engine.FormatCode128:
		return SymbologyCode128
	case engine.FormatPDF417:
		return SymbologyPDF417
	case engine.FormatQR:
		return SymbologyQRCode
	case engine.FormatDataMatrix:
		return SymbologyDataMatrix
	case engine.FormatAztec:
		return SymbologyAztec
	default:
		return SymbologyNone
	}
}
