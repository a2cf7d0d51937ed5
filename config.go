package scanbar

import (
	"fmt"
	"strings"
)

// Config identifies a per-symbology scanner option.
type Config int

const (
	// ConfigEnable turns decoding of a symbology on (value 1) or off (value 0).
	ConfigEnable Config = iota
	// ConfigAddCheck enables check-digit verification where applicable.
	ConfigAddCheck
	// ConfigEmitCheck includes the check digit in the reported payload.
	ConfigEmitCheck
	// ConfigASCII enables full-ASCII extension decoding.
	ConfigASCII
	// ConfigMinLen drops decoded payloads shorter than the value.
	ConfigMinLen
	// ConfigMaxLen drops decoded payloads longer than the value.
	ConfigMaxLen
	// ConfigPosition controls whether location polygons are reported (default on).
	ConfigPosition
	// ConfigUncertainty sets the required confirmation count.
	ConfigUncertainty
	// ConfigXDensity sets the horizontal scan density.
	ConfigXDensity
	// ConfigYDensity sets the vertical scan density.
	ConfigYDensity
)

var configNames = map[Config]string{
	ConfigEnable:      "enable",
	ConfigAddCheck:    "add-check",
	ConfigEmitCheck:   "emit-check",
	ConfigASCII:       "ascii",
	ConfigMinLen:      "min-len",
	ConfigMaxLen:      "max-len",
	ConfigPosition:    "position",
	ConfigUncertainty: "uncertainty",
	ConfigXDensity:    "x-density",
	ConfigYDensity:    "y-density",
}

// String returns the configuration key of the option, e.g. "min-len".
func (c Config) String() string {
	if name, ok := configNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Config(%d)", int(c))
}

// ConfigName returns the configuration key for an option.
func ConfigName(c Config) string { return c.String() }

// ParseConfigOption resolves a configuration key like "enable" or "min-len".
func ParseConfigOption(key string) (Config, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for c, name := range configNames {
		if name == key {
			return c, nil
		}
	}
	return ConfigEnable, fmt.Errorf("unknown config option %q", key)
}

// variableLength reports whether a symbology carries a variable-length payload,
// which is what makes min/max length limits meaningful.
func variableLength(s Symbology) bool {
	switch s {
	case SymbologyITF, SymbologyCodabar, SymbologyCode39, SymbologyCode93,
		SymbologyCode128, SymbologyPDF417, SymbologyQRCode, SymbologyDataMatrix,
		SymbologyAztec:
		return true
	default:
		return false
	}
}

// supportedConfig reports whether the (symbology, option) pair is supported by
// the linked engine, with a reason when it is not.
func supportedConfig(s Symbology, c Config) (bool, string) {
	if _, ok := symbologyNames[s]; !ok {
		return false, "unknown symbology"
	}
	switch c {
	case ConfigEnable, ConfigPosition:
		return true, ""
	case ConfigMinLen, ConfigMaxLen:
		if s == SymbologyNone || variableLength(s) {
			return true, ""
		}
		return false, fmt.Sprintf("%s carries a fixed-length payload", s)
	case ConfigAddCheck, ConfigEmitCheck, ConfigASCII:
		return false, "check digit handling is internal to the engine"
	case ConfigUncertainty, ConfigXDensity, ConfigYDensity:
		return false, "scan density is internal to the engine"
	default:
		return false, "unknown config option"
	}
}
