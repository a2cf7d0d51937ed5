package scanbar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scanbar"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		in    string
		sym   scanbar.Symbology
		opt   scanbar.Config
		value int
	}{
		{"qrcode.enable=1", scanbar.SymbologyQRCode, scanbar.ConfigEnable, 1},
		{"qrcode.enable=0", scanbar.SymbologyQRCode, scanbar.ConfigEnable, 0},
		{"qrcode.enable", scanbar.SymbologyQRCode, scanbar.ConfigEnable, 1},
		{"qrcode", scanbar.SymbologyQRCode, scanbar.ConfigEnable, 1},
		{"enable=0", scanbar.SymbologyNone, scanbar.ConfigEnable, 0},
		{"enable", scanbar.SymbologyNone, scanbar.ConfigEnable, 1},
		{"code128.min-len=6", scanbar.SymbologyCode128, scanbar.ConfigMinLen, 6},
		{"code128.max-len=20", scanbar.SymbologyCode128, scanbar.ConfigMaxLen, 20},
		{"position=0", scanbar.SymbologyNone, scanbar.ConfigPosition, 0},
		{"i25.enable=1", scanbar.SymbologyITF, scanbar.ConfigEnable, 1},
		{" ean13.enable = 1", scanbar.SymbologyEAN13, scanbar.ConfigEnable, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sym, opt, value, err := scanbar.ParseConfig(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.sym, sym)
			assert.Equal(t, tt.opt, opt)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []string{
		"",
		"bogus",
		"bogus.enable=1",
		"qrcode.bogus=1",
		"qrcode.enable=x",
		"ean13.min-len=4",
		"qrcode.x-density=2",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, _, _, err := scanbar.ParseConfig(in)
			var cfgErr *scanbar.ConfigError
			require.ErrorAs(t, err, &cfgErr, "input %q must fail", in)
		})
	}
}
