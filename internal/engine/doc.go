// Package engine wraps the gozxing decoding library behind a small,
// symbology-oriented API. The engine owns all decoding algorithms; callers
// own image lifetime, configuration and result bookkeeping.
package engine
