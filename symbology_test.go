package scanbar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scanbar"
)

func TestSymbologyNames(t *testing.T) {
	tests := []struct {
		sym  scanbar.Symbology
		name string
		key  string
	}{
		{scanbar.SymbologyQRCode, "QR-Code", "qrcode"},
		{scanbar.SymbologyCode128, "CODE-128", "code128"},
		{scanbar.SymbologyCode39, "CODE-39", "code39"},
		{scanbar.SymbologyEAN13, "EAN-13", "ean13"},
		{scanbar.SymbologyITF, "I2/5", "i25"},
		{scanbar.SymbologyDataMatrix, "DataMatrix", "datamatrix"},
		{scanbar.SymbologyNone, "None", "none"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.sym.String())
			assert.Equal(t, tt.name, scanbar.SymbolName(tt.sym))
			assert.Equal(t, tt.key, tt.sym.Key())
		})
	}
}

func TestParseSymbology(t *testing.T) {
	for _, sym := range scanbar.AllSymbologies() {
		parsed, err := scanbar.ParseSymbology(sym.Key())
		require.NoError(t, err)
		assert.Equal(t, sym, parsed)
	}

	parsed, err := scanbar.ParseSymbology(" QRCode ")
	require.NoError(t, err)
	assert.Equal(t, scanbar.SymbologyQRCode, parsed)

	_, err = scanbar.ParseSymbology("klingon")
	require.Error(t, err)
}

func TestAllSymbologiesUniqueAndComplete(t *testing.T) {
	all := scanbar.AllSymbologies()
	assert.Len(t, all, 13)
	seen := make(map[scanbar.Symbology]bool)
	for _, sym := range all {
		assert.False(t, seen[sym], "duplicate symbology %v", sym)
		seen[sym] = true
		assert.NotEqual(t, scanbar.SymbologyNone, sym)
		assert.NotEmpty(t, sym.Key())
	}
}
