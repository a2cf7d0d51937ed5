package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scanbar"
	"github.com/MeKo-Tech/scanbar/internal/testutil"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.Scanner == nil {
		scanner, err := scanbar.NewScannerBuilder().Build()
		require.NoError(t, err)
		cfg.Scanner = scanner
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv
}

func multipartImage(t *testing.T, field string, img image.Image) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "upload.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, img))
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestHealthMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSymbologiesEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/symbologies", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SymbologiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(scanbar.AllSymbologies()), resp.Count)

	keys := make(map[string]bool)
	for _, info := range resp.Symbologies {
		keys[info.Key] = true
	}
	assert.True(t, keys["qrcode"])
	assert.True(t, keys["code128"])
}

func TestScanEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	body, contentType := multipartImage(t, "image", testutil.QRImage(t, "UPLOADED", 200))
	req := httptest.NewRequest(http.MethodPost, "/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "QR-Code", resp.Symbols[0].Type)
	assert.Equal(t, "UPLOADED", resp.Symbols[0].Data)
	assert.Equal(t, 200, resp.Width)
	assert.Equal(t, 200, resp.Height)
	if resp.Symbols[0].BBox != nil {
		assert.Positive(t, resp.Symbols[0].BBox.Width)
	}
}

func TestScanEndpointNoSymbols(t *testing.T) {
	srv := newTestServer(t, Config{})

	body, contentType := multipartImage(t, "image", testutil.BlankImage(100, 100))
	req := httptest.NewRequest(http.MethodPost, "/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
}

func TestScanEndpointMissingFile(t *testing.T) {
	srv := newTestServer(t, Config{})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/scan", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanEndpointInvalidImage(t *testing.T) {
	srv := newTestServer(t, Config{})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "bad.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/scan", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestScanEndpointRateLimited(t *testing.T) {
	srv := newTestServer(t, Config{RateLimitPerMinute: 1})

	send := func() *httptest.ResponseRecorder {
		body, contentType := multipartImage(t, "image", testutil.BlankImage(50, 50))
		req := httptest.NewRequest(http.MethodPost, "/scan", body)
		req.Header.Set("Content-Type", contentType)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusTooManyRequests, send().Code)
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{CORSOrigin: "https://example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/scan", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestScanPDFEndpointInvalidUpload(t *testing.T) {
	srv := newTestServer(t, Config{})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("pdf", "bad.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a pdf"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/scan/pdf", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
