package scanbar

import (
	"strconv"
	"strings"
)

// ParseConfig parses a configuration string of the form
// "[symbology.]option[=value]", e.g. "qrcode.enable=1", "code128.min-len=4"
// or "enable=0". A missing symbology addresses all symbologies
// (SymbologyNone); a missing value defaults to 1. A bare symbology name,
// e.g. "qrcode", means enable. The pair is validated against the supported
// option table; failures are reported as *ConfigError.
func ParseConfig(s string) (Symbology, Config, int, error) {
	value := 1
	name := s
	if eq := strings.IndexByte(s, '='); eq >= 0 {
		name = s[:eq]
		v, err := strconv.Atoi(strings.TrimSpace(s[eq+1:]))
		if err != nil {
			return SymbologyNone, ConfigEnable, 0,
				&ConfigError{Reason: "invalid value in " + strconv.Quote(s)}
		}
		value = v
	}
	name = strings.TrimSpace(name)

	sym := SymbologyNone
	optName := name
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		parsed, err := ParseSymbology(name[:dot])
		if err != nil {
			return SymbologyNone, ConfigEnable, 0, &ConfigError{Reason: err.Error()}
		}
		sym = parsed
		optName = name[dot+1:]
	} else if parsed, err := ParseSymbology(name); err == nil {
		// A bare symbology name is shorthand for enabling it.
		return validated(parsed, ConfigEnable, value)
	}

	opt, err := ParseConfigOption(optName)
	if err != nil {
		return SymbologyNone, ConfigEnable, 0, &ConfigError{Symbology: sym, Reason: err.Error()}
	}
	return validated(sym, opt, value)
}

func validated(sym Symbology, opt Config, value int) (Symbology, Config, int, error) {
	if ok, reason := supportedConfig(sym, opt); !ok {
		return sym, opt, value, &ConfigError{Symbology: sym, Option: opt, Reason: reason}
	}
	return sym, opt, value, nil
}
