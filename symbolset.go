package scanbar

// SymbolSet is the read-only result collection of one scan. It is owned by
// the Image that produced it: re-scanning or closing the image makes the set
// stale. Staleness is detected at run time via the image's generation
// counter; stale access never panics.
type SymbolSet struct {
	img     *Image
	gen     uint64
	symbols []*Symbol
}

// stale reports whether the owning image was closed or re-scanned since this
// set was produced.
func (ss *SymbolSet) stale() bool {
	if ss.img == nil {
		return true
	}
	ss.img.mu.Lock()
	defer ss.img.mu.Unlock()
	return ss.img.closed || ss.img.gen != ss.gen
}

// Stale reports whether the set refers to an overwritten result slot.
func (ss *SymbolSet) Stale() bool { return ss.stale() }

// Generation returns the image generation this set was produced from.
func (ss *SymbolSet) Generation() uint64 { return ss.gen }

// Len returns the number of decoded symbols, or 0 for a stale set.
func (ss *SymbolSet) Len() int {
	if ss.stale() {
		return 0
	}
	return len(ss.symbols)
}

// First returns the first symbol, or nil for an empty or stale set.
func (ss *SymbolSet) First() *Symbol {
	if ss.stale() || len(ss.symbols) == 0 {
		return nil
	}
	return ss.symbols[0]
}

// Symbols returns the decoded symbols in scan order. Accessing a stale set
// yields ErrStaleSymbolSet (or ErrImageClosed when the image was closed).
// Re-reading a live set is allowed and returns the same symbols.
func (ss *SymbolSet) Symbols() ([]*Symbol, error) {
	if ss.img == nil {
		return nil, ErrStaleSymbolSet
	}
	ss.img.mu.Lock()
	closed := ss.img.closed
	gen := ss.img.gen
	ss.img.mu.Unlock()
	if closed {
		return nil, ErrImageClosed
	}
	if gen != ss.gen {
		return nil, ErrStaleSymbolSet
	}
	return append([]*Symbol(nil), ss.symbols...), nil
}
