// Package batch scans many image files at once: it discovers inputs across
// directories, fans the work out over a worker pool and aggregates the
// decoded symbols per file.
package batch

import (
	"fmt"
	"runtime"
)

// Config controls batch scanning.
type Config struct {
	// Workers is the number of concurrent loaders. Image decoding runs in
	// parallel; the barcode engine itself serializes internally.
	Workers int
	// Recursive descends into subdirectories of directory arguments.
	Recursive bool
	// IncludePatterns restricts inputs to matching base names (glob syntax).
	// Empty means all supported images.
	IncludePatterns []string
	// ExcludePatterns drops matching base names.
	ExcludePatterns []string
	// ContinueOnError records per-file failures instead of aborting the batch.
	ContinueOnError bool
}

// DefaultConfig returns a configuration sized to the machine.
func DefaultConfig() *Config {
	return &Config{
		Workers:         runtime.NumCPU(),
		ContinueOnError: true,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}
	return nil
}
