// Package pdf scans barcodes inside PDF documents by extracting the embedded
// page images with pdfcpu and running each through a scanner.
package pdf

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/MeKo-Tech/scanbar"
)

// Symbol is one decoded barcode found in a PDF, with its page provenance.
type Symbol struct {
	Page    int             `json:"page"`
	Index   int             `json:"index"` // image index within the page
	Type    string          `json:"type"`
	Data    string          `json:"data"`
	Polygon []scanbar.Point `json:"polygon,omitempty"`
	Quality int             `json:"quality"`
}

// ScanFile extracts the embedded images of the selected pages and scans each
// of them. pageRange follows the "1-3,5" convention; empty means all pages.
func ScanFile(filename, pageRange string, scanner *scanbar.Scanner) ([]Symbol, error) {
	pages, err := ExtractImages(filename, pageRange)
	if err != nil {
		return nil, err
	}

	pageNums := make([]int, 0, len(pages))
	for n := range pages {
		pageNums = append(pageNums, n)
	}
	sort.Ints(pageNums)

	var out []Symbol
	for _, page := range pageNums {
		for idx, src := range pages[page] {
			img := scanbar.FromImage(src)
			set, err := scanner.Scan(img)
			if err != nil {
				return nil, fmt.Errorf("scan page %d image %d: %w", page, idx, err)
			}
			symbols, err := set.Symbols()
			if err != nil {
				return nil, err
			}
			for _, s := range symbols {
				out = append(out, Symbol{
					Page:    page,
					Index:   idx,
					Type:    s.Type().String(),
					Data:    s.Text(),
					Polygon: s.Polygon(),
					Quality: s.Quality(),
				})
			}
		}
	}
	return out, nil
}

// ExtractImages extracts the embedded images of a PDF, grouped by page.
func ExtractImages(filename, pageRange string) (map[int][]image.Image, error) {
	pageNumbers, err := ParsePageRange(pageRange)
	if err != nil {
		return nil, fmt.Errorf("invalid page range %q: %w", pageRange, err)
	}

	tempDir, err := os.MkdirTemp("", "pdf-extract-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	var pageStrings []string
	if len(pageNumbers) > 0 {
		pageStrings = make([]string, len(pageNumbers))
		for i, n := range pageNumbers {
			pageStrings[i] = strconv.Itoa(n)
		}
	}

	if err := api.ExtractImagesFile(filename, tempDir, pageStrings, nil); err != nil {
		return nil, fmt.Errorf("failed to extract images from PDF: %w", err)
	}

	result, err := collectExtractedImages(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to process extracted images: %w", err)
	}
	return result, nil
}

func loadImageFile(path string) (image.Image, error) {
	file, err := os.Open(path) //nolint:gosec // G304: reading files pdfcpu just wrote
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	return img, err
}

// collectExtractedImages walks the directory and groups images by page
// number, relying on pdfcpu's <basename>_<page>_<imgname>.<ext> naming.
func collectExtractedImages(dir string) (map[int][]image.Image, error) {
	result := make(map[int][]image.Image)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		pageNum, err := parsePageFromFilename(info.Name())
		if err != nil {
			return nil // not a page image
		}
		img, err := loadImageFile(path)
		if err != nil {
			return nil // skip unreadable images
		}
		result[pageNum] = append(result[pageNum], img)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// parsePageFromFilename pulls the page number out of an extracted image file
// name. pdfcpu writes <basename>_<page>_<imgname>.<ext>, so the page is the
// first purely numeric underscore-separated token.
func parsePageFromFilename(filename string) (int, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	for _, part := range strings.Split(base, "_") {
		if pageNum, err := strconv.Atoi(part); err == nil {
			return pageNum, nil
		}
	}
	return 0, errors.New("no page number in filename")
}

// ParsePageRange parses a page range string like "1-5" or "1,3,5". Empty
// input selects all pages.
func ParsePageRange(pageRange string) ([]int, error) {
	if pageRange == "" {
		return nil, nil
	}
	var pages []int
	for _, part := range strings.Split(pageRange, ",") {
		tokenPages, err := parseRangeToken(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		pages = append(pages, tokenPages...)
	}
	return pages, nil
}

func parseRangeToken(part string) ([]int, error) {
	if strings.Contains(part, "-") {
		rangeParts := strings.Split(part, "-")
		if len(rangeParts) != 2 {
			return nil, fmt.Errorf("invalid range format: %s", part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid start page: %s", rangeParts[0])
		}
		end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid end page: %s", rangeParts[1])
		}
		if start > end {
			return nil, fmt.Errorf("start page %d greater than end page %d", start, end)
		}
		out := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
		return out, nil
	}
	page, err := strconv.Atoi(part)
	if err != nil {
		return nil, fmt.Errorf("invalid page number: %s", part)
	}
	return []int{page}, nil
}
