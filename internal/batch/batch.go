package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MeKo-Tech/scanbar"
)

// SymbolResult is one decoded symbol within a batch.
type SymbolResult struct {
	Type    string          `json:"type"`
	Data    string          `json:"data"`
	Quality int             `json:"quality"`
	Count   int             `json:"count"`
	Polygon []scanbar.Point `json:"polygon,omitempty"`
}

// FileResult holds the outcome for one input file.
type FileResult struct {
	Path    string         `json:"file"`
	Symbols []SymbolResult `json:"symbols"`
	Error   string         `json:"error,omitempty"`
}

// Result aggregates one batch run.
type Result struct {
	Files       []FileResult  `json:"files"`
	TotalFiles  int           `json:"total_files"`
	TotalFound  int           `json:"total_symbols"`
	Failed      int           `json:"failed_files"`
	Duration    time.Duration `json:"-"`
	WorkerCount int           `json:"-"`
}

// ProcessBatch discovers the image files named by paths (files or
// directories) and scans each with the given scanner.
func ProcessBatch(ctx context.Context, scanner *scanbar.Scanner, paths []string, config *Config) (*Result, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	files, err := discoverImageFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	startTime := time.Now()
	results, err := scanFilesParallel(ctx, scanner, files, config)
	if err != nil {
		return nil, fmt.Errorf("batch scan failed: %w", err)
	}

	res := &Result{
		Files:       results,
		TotalFiles:  len(results),
		Duration:    time.Since(startTime),
		WorkerCount: config.Workers,
	}
	for _, fr := range results {
		res.TotalFound += len(fr.Symbols)
		if fr.Error != "" {
			res.Failed++
		}
	}
	return res, nil
}
