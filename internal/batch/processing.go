package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/MeKo-Tech/scanbar"
)

// scanSingleFile loads one image and scans it.
func scanSingleFile(ctx context.Context, scanner *scanbar.Scanner, path string) ([]SymbolResult, error) {
	img, err := scanbar.FromPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	defer func() { _ = img.Close() }()

	set, err := scanner.ScanContext(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("scan failed for %s: %w", path, err)
	}
	symbols, err := set.Symbols()
	if err != nil {
		return nil, err
	}

	out := make([]SymbolResult, len(symbols))
	for i, sym := range symbols {
		out[i] = SymbolResult{
			Type:    sym.Type().String(),
			Data:    sym.Text(),
			Quality: sym.Quality(),
			Count:   sym.Count(),
			Polygon: sym.Polygon(),
		}
	}
	return out, nil
}

// scanFilesParallel fans the files out over a worker pool. Results keep the
// input order regardless of completion order.
func scanFilesParallel(ctx context.Context, scanner *scanbar.Scanner, files []string, config *Config) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	workers := config.Workers
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := files[i]
				symbols, err := scanSingleFile(ctx, scanner, path)
				if err != nil {
					if !config.ContinueOnError {
						errOnce.Do(func() { firstErr = err })
					}
					results[i] = FileResult{Path: path, Error: err.Error()}
					continue
				}
				results[i] = FileResult{Path: path, Symbols: symbols}
			}
		}()
	}

	for i := range files {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
