package scanbar

import (
	"fmt"
	"strings"
)

// Point is an integer point in image coordinates.
type Point struct {
	X int
	Y int
}

// Symbol is one decoded barcode, borrowed from its SymbolSet. Its accessors
// return copies; a Symbol stays readable after its set goes stale, but
// retrieving symbols through a stale set is refused (see SymbolSet.Symbols).
type Symbol struct {
	set     *SymbolSet
	next    *Symbol
	data    []byte
	text    string
	typ     Symbology
	polygon []Point
	quality int
	count   int
}

// Data returns a copy of the decoded payload bytes. The encoding is
// symbology-dependent and not reinterpreted.
func (s *Symbol) Data() []byte { return append([]byte(nil), s.data...) }

// Text returns the decoded payload as a string.
func (s *Symbol) Text() string { return s.text }

// Type returns the symbology of the decoded barcode.
func (s *Symbol) Type() Symbology { return s.typ }

// Polygon returns the ordered location points of the symbol's bounding
// contour, or an empty slice when position reporting is disabled.
func (s *Symbol) Polygon() []Point { return append([]Point(nil), s.polygon...) }

// Quality returns a relative decode confidence on an engine-defined scale.
// The value is not numerically stable across engine versions.
func (s *Symbol) Quality() int { return s.quality }

// Count returns the duplicate count from the scanner's inter-scan cache:
// 0 for a newly seen payload, >0 for repeats. Always 0 with the cache off.
func (s *Symbol) Count() int { return s.count }

// Next returns the following symbol of the same scan, or nil.
func (s *Symbol) Next() *Symbol { return s.next }

// XML returns an XML representation of the symbol.
func (s *Symbol) XML() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<symbol type='%s' quality='%d'>", s.typ, s.quality)
	b.WriteString("<data><![CDATA[")
	b.WriteString(s.text)
	b.WriteString("]]></data></symbol>")
	return b.String()
}
