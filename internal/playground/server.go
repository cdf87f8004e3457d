// Package playground serves a browser page that converts HTML as you type,
// over plain HTTP or a WebSocket.
package playground

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/livefir/html2rsx"
	"github.com/livefir/html2rsx/internal/history"
	"github.com/livefir/html2rsx/internal/metrics"
	"github.com/livefir/html2rsx/internal/validation"
)

//go:embed index.html
var indexHTML []byte

// MaxInputBytes bounds the HTML of a single request, in bytes.
const MaxInputBytes = 1 << 20

// maxMessageBytes bounds a JSON request. Escaping can grow a string up to
// six times (\u00XX), so any input within MaxInputBytes fits.
const maxMessageBytes = 6*MaxInputBytes + 1024

// Recorder persists conversions. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (int64, error)
}

// Request is a conversion request
type Request struct {
	HTML   string `json:"html" validate:"required,maxbytes=1048576"`
	Minify bool   `json:"minify"`
}

// Response is a conversion result
type Response struct {
	Output   string                `json:"output"`
	Warnings []html2rsx.Warning    `json:"warnings,omitempty"`
	Elements int                   `json:"elements"`
	Error    string                `json:"error,omitempty"`
	Fields   validation.MultiError `json:"fields,omitempty"`
	Duration time.Duration         `json:"duration_ns"`
}

// Config holds server configuration options
type Config struct {
	Upgrader  *websocket.Upgrader
	Collector *metrics.Collector
	History   Recorder // optional
	MaxBuf    int
}

// Option is a functional option for configuring a Server
type Option func(*Config)

// WithUpgrader sets a custom WebSocket upgrader
func WithUpgrader(upgrader *websocket.Upgrader) Option {
	return func(c *Config) {
		c.Upgrader = upgrader
	}
}

// WithCollector sets the metrics collector
func WithCollector(collector *metrics.Collector) Option {
	return func(c *Config) {
		c.Collector = collector
	}
}

// WithHistory records every successful conversion
func WithHistory(r Recorder) Option {
	return func(c *Config) {
		c.History = r
	}
}

// WithMaxBuf caps the tokenizer buffer for every conversion
func WithMaxBuf(n int) Option {
	return func(c *Config) {
		c.MaxBuf = n
	}
}

// Server is the playground http.Handler
type Server struct {
	config   Config
	validate *validator.Validate
	mux      *http.ServeMux
}

// New creates a playground server
func New(opts ...Option) *Server {
	cfg := Config{
		Upgrader: &websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		Collector: metrics.NewCollector(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		config:   cfg,
		validate: validation.New("json"),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /convert", s.handleConvert)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)
	return s
}

// Collector returns the metrics collector in use
func (s *Server) Collector() *metrics.Collector {
	return s.config.Collector
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	s.config.Collector.IncrementCustomCounter("http")

	var req Request
	body := http.MaxBytesReader(w, r.Body, maxMessageBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "invalid request: " + err.Error()})
		return
	}

	resp := s.convert(r.Context(), req, "http")
	status := http.StatusOK
	switch {
	case len(resp.Fields) > 0:
		status = http.StatusBadRequest
	case resp.Error != "":
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	c := s.config.Collector
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metrics":          c.GetMetrics(),
		"counters":         c.GetCustomCounters(),
		"error_rate":       c.GetErrorRate(),
		"average_duration": c.GetAverageDuration(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.config.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.config.Collector.ConnectionOpened()
	defer s.config.Collector.ConnectionClosed()

	log.Printf("Client connected from %s", conn.RemoteAddr())
	conn.SetReadLimit(maxMessageBytes)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		s.config.Collector.IncrementCustomCounter("websocket")

		var req Request
		var resp Response
		if err := json.Unmarshal(data, &req); err != nil {
			resp = Response{Error: "invalid request: " + err.Error()}
		} else {
			resp = s.convert(r.Context(), req, "websocket")
		}

		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("WebSocket write failed: %v", err)
			break
		}
	}
}

// convert validates and runs one conversion. Each call builds its own
// renderer, so concurrent connections share no conversion state.
func (s *Server) convert(ctx context.Context, req Request, source string) Response {
	if err := validation.Struct(s.validate, req); err != nil {
		var fields validation.MultiError
		if errors.As(err, &fields) {
			return Response{Error: err.Error(), Fields: fields}
		}
		return Response{Error: err.Error()}
	}

	report, err := html2rsx.ConvertReport(req.HTML,
		html2rsx.WithMinify(req.Minify),
		html2rsx.WithMaxBuf(s.config.MaxBuf),
	)
	if err != nil {
		s.config.Collector.RecordConversionError(len(req.HTML))
		return Response{Error: err.Error()}
	}

	s.config.Collector.RecordConversion(len(req.HTML), len(report.Output), report.Elements, len(report.Warnings), report.Duration)

	if s.config.History != nil {
		_, err := s.config.History.Record(ctx, history.Entry{
			Source:   source,
			Input:    req.HTML,
			Output:   report.Output,
			Warnings: len(report.Warnings),
			Elements: report.Elements,
		})
		if err != nil {
			log.Printf("Failed to record history: %v", err)
		}
	}

	return Response{
		Output:   report.Output,
		Warnings: report.Warnings,
		Elements: report.Elements,
		Duration: report.Duration,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// ListenAndServe runs the server on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
