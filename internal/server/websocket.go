package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MeKo-Tech/scanbar"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are delegated to the CORS configuration.
		return true
	},
}

// WebSocketScanRequest is one scan request sent over the socket. Image bytes
// are base64-encoded by encoding/json.
type WebSocketScanRequest struct {
	Image     []byte `json:"image"`
	RequestID string `json:"request_id,omitempty"`
}

// WebSocketScanResponse is the reply to one scan request.
type WebSocketScanResponse struct {
	Status    string       `json:"status"` // "completed" or "error"
	Symbols   []SymbolJSON `json:"symbols,omitempty"`
	Count     int          `json:"count"`
	Error     string       `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

// scanWebSocketHandler streams scan requests and results over one connection,
// e.g. for camera frame feeds.
func (s *Server) scanWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("WebSocket read failed", "error", err)
			}
			return
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()

		var req WebSocketScanRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			s.writeWebSocketResponse(conn, WebSocketScanResponse{
				Status: "error",
				Error:  "invalid request payload",
			})
			continue
		}
		s.writeWebSocketResponse(conn, s.scanFrame(req))
	}
}

// scanFrame decodes and scans a single frame.
func (s *Server) scanFrame(req WebSocketScanRequest) WebSocketScanResponse {
	resp := WebSocketScanResponse{RequestID: req.RequestID}

	src, _, err := image.Decode(bytes.NewReader(req.Image))
	if err != nil {
		scansTotal.WithLabelValues("websocket", "error").Inc()
		resp.Status = "error"
		resp.Error = "invalid image format"
		return resp
	}

	start := time.Now()
	img := scanbar.FromImage(src)
	set, err := s.scanner.Scan(img)
	if err != nil {
		scansTotal.WithLabelValues("websocket", "error").Inc()
		resp.Status = "error"
		resp.Error = fmt.Sprintf("scan failed: %v", err)
		return resp
	}

	symbols, err := set.Symbols()
	if err != nil {
		scansTotal.WithLabelValues("websocket", "error").Inc()
		resp.Status = "error"
		resp.Error = err.Error()
		return resp
	}

	scansTotal.WithLabelValues("websocket", "success").Inc()
	scanDuration.WithLabelValues("websocket").Observe(time.Since(start).Seconds())
	symbolsDetected.WithLabelValues("websocket").Observe(float64(len(symbols)))

	resp.Status = "completed"
	resp.Symbols = symbolsToJSON(symbols)
	resp.Count = len(symbols)
	return resp
}

func (s *Server) writeWebSocketResponse(conn *websocket.Conn, resp WebSocketScanResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		slog.Warn("WebSocket write failed", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
