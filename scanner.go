package scanbar

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/MeKo-Tech/scanbar/internal/engine"
)

type configKey struct {
	sym Symbology
	opt Config
}

// Scanner performs scans against Images using an immutable configuration.
// A Scanner is reusable across many scans and many images. Scan calls are
// serialized internally because the engine's symbology readers keep state.
type Scanner struct {
	mu        sync.Mutex
	eng       *engine.Engine
	config    map[configKey]int
	enabled   []Symbology
	tryHarder bool
	useCache  bool
	cache     map[string]int
}

// ScannerBuilder accumulates (symbology, option, value) triples into a
// configuration table. Configuration is validated and frozen at Build time.
type ScannerBuilder struct {
	entries   []configEntry
	cache     bool
	tryHarder bool
}

type configEntry struct {
	sym   Symbology
	opt   Config
	value int
	err   error
}

// NewScannerBuilder returns a builder with every symbology enabled.
func NewScannerBuilder() *ScannerBuilder { return &ScannerBuilder{} }

// WithConfig records a (symbology, option, value) triple. Use SymbologyNone
// to address all symbologies at once.
func (b *ScannerBuilder) WithConfig(sym Symbology, opt Config, value int) *ScannerBuilder {
	b.entries = append(b.entries, configEntry{sym: sym, opt: opt, value: value})
	return b
}

// WithConfigString records a triple parsed from a string like
// "qrcode.enable=1"; parse failures surface at Build time.
func (b *ScannerBuilder) WithConfigString(s string) *ScannerBuilder {
	sym, opt, value, err := ParseConfig(s)
	if err != nil {
		b.entries = append(b.entries, configEntry{sym: sym, opt: opt, value: value, err: err})
		return b
	}
	return b.WithConfig(sym, opt, value)
}

// WithCache enables the inter-scan result cache. With the cache on, Symbol
// Count reports how often the same payload was seen in earlier scans.
func (b *ScannerBuilder) WithCache(enable bool) *ScannerBuilder {
	b.cache = enable
	return b
}

// WithTryHarder enables a more exhaustive (and slower) search, including
// rotated retries.
func (b *ScannerBuilder) WithTryHarder(enable bool) *ScannerBuilder {
	b.tryHarder = enable
	return b
}

// Build validates the accumulated configuration and returns an immutable
// Scanner. An unsupported (symbology, option) pair yields a *ConfigError.
func (b *ScannerBuilder) Build() (*Scanner, error) {
	config := make(map[configKey]int, len(b.entries))
	for _, e := range b.entries {
		if e.err != nil {
			return nil, e.err
		}
		ok, reason := supportedConfig(e.sym, e.opt)
		if !ok {
			return nil, &ConfigError{Symbology: e.sym, Option: e.opt, Reason: reason}
		}
		config[configKey{sym: e.sym, opt: e.opt}] = e.value
	}

	s := &Scanner{
		eng:       engine.New(),
		config:    config,
		enabled:   resolveEnabled(config),
		tryHarder: b.tryHarder,
		useCache:  b.cache,
	}
	if b.cache {
		s.cache = make(map[string]int)
	}
	return s, nil
}

// resolveEnabled applies the enable entries on top of the default
// all-symbologies-on state.
func resolveEnabled(config map[configKey]int) []Symbology {
	state := make(map[Symbology]bool, len(symbologyNames))
	all := true
	if v, ok := config[configKey{sym: SymbologyNone, opt: ConfigEnable}]; ok {
		all = v != 0
	}
	for _, sym := range AllSymbologies() {
		state[sym] = all
	}
	for key, v := range config {
		if key.opt == ConfigEnable && key.sym != SymbologyNone {
			state[key.sym] = v != 0
		}
	}
	enabled := make([]Symbology, 0, len(state))
	for _, sym := range AllSymbologies() {
		if state[sym] {
			enabled = append(enabled, sym)
		}
	}
	return enabled
}

// configValue looks up an option for a symbology, falling back to the
// all-symbologies entry.
func (s *Scanner) configValue(sym Symbology, opt Config) (int, bool) {
	if v, ok := s.config[configKey{sym: sym, opt: opt}]; ok {
		return v, true
	}
	v, ok := s.config[configKey{sym: SymbologyNone, opt: opt}]
	return v, ok
}

// Enabled returns the symbologies this scanner searches for.
func (s *Scanner) Enabled() []Symbology {
	return append([]Symbology(nil), s.enabled...)
}

// Scan decodes barcodes in the image. See ScanContext.
func (s *Scanner) Scan(img *Image) (*SymbolSet, error) {
	return s.ScanContext(context.Background(), img)
}

// ScanContext decodes barcodes in the image. The call is synchronous and
// CPU-bound; the context is only consulted between symbology passes. On
// success the image's previous symbol set is invalidated and a fresh one is
// returned. Engine failures are reported as *ScanError; an image with no
// recognizable symbols yields an empty set, not an error.
func (s *Scanner) ScanContext(ctx context.Context, img *Image) (*SymbolSet, error) {
	return s.scan(ctx, img, image.Rectangle{})
}

// ScanRegion decodes barcodes within a sub-rectangle of the image. See
// ScanRegionContext.
func (s *Scanner) ScanRegion(img *Image, region image.Rectangle) (*SymbolSet, error) {
	return s.ScanRegionContext(context.Background(), img, region)
}

// ScanRegionContext restricts decoding to the given region. Reported symbol
// positions stay in full-image coordinates. A region that does not overlap
// the image yields an empty set.
func (s *Scanner) ScanRegionContext(ctx context.Context, img *Image, region image.Rectangle) (*SymbolSet, error) {
	return s.scan(ctx, img, region)
}

func (s *Scanner) scan(ctx context.Context, img *Image, region image.Rectangle) (*SymbolSet, error) {
	if img == nil {
		return nil, errors.New("scanbar: nil image")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	img.mu.Lock()
	defer img.mu.Unlock()

	if img.closed {
		return nil, ErrImageClosed
	}

	formats := make([]engine.Format, 0, len(s.enabled))
	for _, sym := range s.enabled {
		formats = append(formats, sym.engineFormat())
	}

	results, err := s.eng.Decode(ctx, img.src, engine.Options{
		Formats:   formats,
		TryHarder: s.tryHarder,
		ROI:       region,
	})
	if err != nil {
		return nil, &ScanError{Err: err}
	}

	// Same-slot overwrite: the new generation invalidates any retained set.
	img.gen++
	set := &SymbolSet{img: img, gen: img.gen}
	var prev *Symbol
	for _, r := range results {
		sym := s.newSymbol(set, r)
		if sym == nil {
			continue
		}
		if prev != nil {
			prev.next = sym
		}
		set.symbols = append(set.symbols, sym)
		prev = sym
	}
	img.symbols = set
	return set, nil
}

// newSymbol converts an engine result, applying length limits, the position
// option and the duplicate cache. It returns nil for filtered results.
func (s *Scanner) newSymbol(set *SymbolSet, r engine.Result) *Symbol {
	typ := symbologyFromEngine(r.Format)

	if v, ok := s.configValue(typ, ConfigMinLen); ok && v > 0 && len(r.Text) < v {
		return nil
	}
	if v, ok := s.configValue(typ, ConfigMaxLen); ok && v > 0 && len(r.Text) > v {
		return nil
	}

	polygon := make([]Point, 0, len(r.Points))
	if v, ok := s.configValue(typ, ConfigPosition); !ok || v != 0 {
		for _, p := range r.Points {
			polygon = append(polygon, Point{X: p.X, Y: p.Y})
		}
	}

	count := 0
	if s.useCache {
		key := typ.Key() + "\x00" + r.Text
		count = s.cache[key]
		s.cache[key] = count + 1
	}

	return &Symbol{
		set:     set,
		text:    r.Text,
		data:    []byte(r.Text),
		typ:     typ,
		polygon: polygon,
		quality: r.Quality,
		count:   count,
	}
}
