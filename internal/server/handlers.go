package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/MeKo-Tech/scanbar"
	"github.com/MeKo-Tech/scanbar/internal/pdf"
	"github.com/MeKo-Tech/scanbar/internal/utils"
	"github.com/MeKo-Tech/scanbar/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}
	s.writeJSON(w, response)
}

// symbologiesHandler lists the symbologies the scanner searches for.
func (s *Server) symbologiesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	enabled := s.scanner.Enabled()
	infos := make([]SymbologyInfo, len(enabled))
	for i, sym := range enabled {
		infos[i] = SymbologyInfo{Name: sym.String(), Key: sym.Key()}
	}
	s.writeJSON(w, SymbologiesResponse{Symbologies: infos, Count: len(infos)})
}

// scanImageHandler scans an uploaded image and returns the decoded symbols.
func (s *Server) scanImageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, ok := s.readUpload(w, r, "image")
	if !ok {
		return
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		scansTotal.WithLabelValues("image", "error").Inc()
		s.writeErrorResponse(w, "Invalid image format", http.StatusBadRequest)
		return
	}

	start := time.Now()
	img := scanbar.FromImage(src)
	set, err := s.scanner.ScanContext(r.Context(), img)
	if err != nil {
		scansTotal.WithLabelValues("image", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Scan failed: %v", err), http.StatusInternalServerError)
		return
	}
	elapsed := time.Since(start)

	symbols, err := set.Symbols()
	if err != nil {
		scansTotal.WithLabelValues("image", "error").Inc()
		s.writeErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	scansTotal.WithLabelValues("image", "success").Inc()
	scanDuration.WithLabelValues("image").Observe(elapsed.Seconds())
	symbolsDetected.WithLabelValues("image").Observe(float64(len(symbols)))

	response := ScanResponse{
		Symbols: symbolsToJSON(symbols),
		Count:   len(symbols),
		Width:   img.Width(),
		Height:  img.Height(),
	}
	response.Processing.ScanTimeMs = elapsed.Milliseconds()
	s.writeJSON(w, response)
}

// scanPDFHandler scans the embedded images of an uploaded PDF.
func (s *Server) scanPDFHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, ok := s.readUpload(w, r, "pdf")
	if !ok {
		return
	}

	// pdfcpu wants a file path; stage the upload in a temp file.
	tmpDir, err := os.MkdirTemp("", "scanbar-pdf-*")
	if err != nil {
		s.writeErrorResponse(w, "Failed to stage PDF", http.StatusInternalServerError)
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	tmpFile := filepath.Join(tmpDir, "upload.pdf")
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		s.writeErrorResponse(w, "Failed to stage PDF", http.StatusInternalServerError)
		return
	}

	start := time.Now()
	symbols, err := pdf.ScanFile(tmpFile, r.FormValue("pages"), s.scanner)
	if err != nil {
		scansTotal.WithLabelValues("pdf", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("PDF scan failed: %v", err), http.StatusBadRequest)
		return
	}

	scansTotal.WithLabelValues("pdf", "success").Inc()
	scanDuration.WithLabelValues("pdf").Observe(time.Since(start).Seconds())
	symbolsDetected.WithLabelValues("pdf").Observe(float64(len(symbols)))

	out := make([]PDFSymbolJSON, len(symbols))
	for i, sym := range symbols {
		out[i] = PDFSymbolJSON{
			Page:    sym.Page,
			Type:    sym.Type,
			Data:    sym.Data,
			Polygon: pointsToJSON(sym.Polygon),
			Quality: sym.Quality,
		}
	}
	s.writeJSON(w, PDFScanResponse{Symbols: out, Count: len(out)})
}

// readUpload parses the multipart form and returns the named file's content.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, bool) {
	maxBytes := s.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		return nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("No %s file provided", field), http.StatusBadRequest)
		return nil, false
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxBytes {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return nil, false
	}
	uploadSizeBytes.Observe(float64(header.Size))

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read upload", http.StatusInternalServerError)
		return nil, false
	}
	return data, true
}

func symbolsToJSON(symbols []*scanbar.Symbol) []SymbolJSON {
	out := make([]SymbolJSON, len(symbols))
	for i, sym := range symbols {
		polygon := sym.Polygon()
		var bbox *BoundingBoxJSON
		if len(polygon) > 0 {
			pts := make([]utils.Point, len(polygon))
			for j, p := range polygon {
				pts[j] = utils.Point{X: p.X, Y: p.Y}
			}
			b := utils.Bounds(pts)
			bbox = &BoundingBoxJSON{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
		}
		out[i] = SymbolJSON{
			Type:    sym.Type().String(),
			Data:    sym.Text(),
			Polygon: pointsToJSON(polygon),
			BBox:    bbox,
			Quality: sym.Quality(),
		}
	}
	return out
}

func pointsToJSON(points []scanbar.Point) []PointJSON {
	out := make([]PointJSON, len(points))
	for i, p := range points {
		out[i] = PointJSON{X: p.X, Y: p.Y}
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
