package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

func closeDeadline() time.Time {
	return time.Now().Add(time.Second)
}

// DefaultReportItems bounds a report when the request does not specify
// max_items.
const DefaultReportItems = 100

func parseMaxItems(r *http.Request) int {
	maxItems := DefaultReportItems
	if v := r.URL.Query().Get("max_items"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			maxItems = parsed
		}
	}
	return maxItems
}

// flushedSink writes each report line to the HTTP response and flushes it
// immediately, so consumers see lines as they are produced rather than one
// buffered body at the end.
type flushedSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s flushedSink) Emit(line string) {
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		logger().Debugf("report line write failed: %v", err)
		return
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// HandleReport streams the report as plain text, one protocol line at a
// time. Errors after streaming has begun cannot change the status code;
// the terminal marker still closes the output and the error is logged by
// the engine.
func (s *Server) HandleReport(w http.ResponseWriter, r *http.Request) {
	maxItems := parseMaxItems(r)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	sink := flushedSink{w: w, flusher: flusher}

	if err := s.service.GenerateReport(r.Context(), maxItems, sink); err != nil {
		logger().Errorf("report request failed (max_items=%d): %v", maxItems, err)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same policy as the CORS middleware: the API is open.
		return true
	},
}

// wsSink delivers each report line as one websocket text message. Writes
// block until the peer has drained its receive window, which preserves the
// engine's pull-based pacing end to end.
type wsSink struct {
	conn *websocket.Conn
}

func (s wsSink) Emit(line string) {
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
		logger().Debugf("report ws write failed: %v", err)
	}
}

// HandleReportWS streams the report over a websocket, one protocol line
// per text message, then closes the connection.
func (s *Server) HandleReportWS(w http.ResponseWriter, r *http.Request) {
	maxItems := parseMaxItems(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger().Errorf("report ws upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger().Debugf("report ws close failed: %v", err)
		}
	}()

	if err := s.service.GenerateReport(r.Context(), maxItems, wsSink{conn: conn}); err != nil {
		logger().Errorf("report ws failed (max_items=%d): %v", maxItems, err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "report failed"),
			closeDeadline())
		return
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		closeDeadline())
}
