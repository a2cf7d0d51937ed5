package server

import (
	"github.com/MeKo-Tech/scanbar"
)

// Config holds server configuration.
type Config struct {
	Host               string
	Port               int
	CORSOrigin         string
	MaxUploadMB        int64
	TimeoutSec         int
	RateLimitPerMinute int
	Scanner            *scanbar.Scanner
}

// Server holds the HTTP server state and dependencies. All scan requests are
// funneled through one scanner, which serializes engine access.
type Server struct {
	scanner     *scanbar.Scanner
	host        string
	port        int
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// Response types for API endpoints.

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type SymbologyInfo struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

type SymbologiesResponse struct {
	Symbologies []SymbologyInfo `json:"symbologies"`
	Count       int             `json:"count"`
}

type PointJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type BoundingBoxJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type SymbolJSON struct {
	Type    string           `json:"type"`
	Data    string           `json:"data"`
	Polygon []PointJSON      `json:"polygon,omitempty"`
	BBox    *BoundingBoxJSON `json:"bbox,omitempty"`
	Quality int              `json:"quality"`
}

type ScanResponse struct {
	Symbols    []SymbolJSON `json:"symbols"`
	Count      int          `json:"count"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Processing struct {
		ScanTimeMs int64 `json:"scan_time_ms"`
	} `json:"processing"`
}

type PDFScanResponse struct {
	Symbols []PDFSymbolJSON `json:"symbols"`
	Count   int             `json:"count"`
}

type PDFSymbolJSON struct {
	Page    int         `json:"page"`
	Type    string      `json:"type"`
	Data    string      `json:"data"`
	Polygon []PointJSON `json:"polygon,omitempty"`
	Quality int         `json:"quality"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
