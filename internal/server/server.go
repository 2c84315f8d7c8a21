// Package server exposes chart rendering over HTTP. A client posts a CSV
// table and receives the rendered chart as SVG, PNG or a JSON data URI.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"gantt2svg/internal/config"
	"gantt2svg/internal/gantt"
	"gantt2svg/internal/measure"
	"gantt2svg/internal/render"
	"gantt2svg/internal/schedule"
	"gantt2svg/internal/source"
)

const (
	// maxBodyBytes caps the size of an uploaded table.
	maxBodyBytes = 4 << 20

	// maxCanvas caps each side of a requested canvas; the PNG raster is
	// allocated up front at width*height*4 bytes.
	maxCanvas = 8192
)

// Server renders charts for HTTP clients. Each request gets its own engine,
// so requests share nothing but the configuration and the font faces.
type Server struct {
	Config config.Config
	Faces  *measure.Faces
	Logger *slog.Logger
	Now    func() time.Time
}

// New returns a Server using the wall clock.
func New(cfg config.Config, faces *measure.Faces, logger *slog.Logger) *Server {
	return &Server{Config: cfg, Faces: faces, Logger: logger, Now: time.Now}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(s.requestLog)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Post("/render", s.handleRender)
	return r
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ImageResponse is the JSON body of format=datauri.
type ImageResponse struct {
	Image    string   `json:"image"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Warnings []string `json:"warnings,omitempty"`
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = "svg"
	}
	if format != "svg" && format != "png" && format != "datauri" {
		jsonError(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
		return
	}

	width, err := intParam(q.Get("width"))
	if err != nil {
		jsonError(w, "width: "+err.Error(), http.StatusBadRequest)
		return
	}
	height, err := intParam(q.Get("height"))
	if err != nil {
		jsonError(w, "height: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := s.Now
	if today := q.Get("today"); today != "" {
		t, err := time.Parse("2006-01-02", today)
		if err != nil {
			jsonError(w, fmt.Sprintf("today: expected YYYY-MM-DD, got %q", today), http.StatusBadRequest)
			return
		}
		now = func() time.Time { return t }
	}

	table, err := source.ReadCSV(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine := &gantt.Engine{
		Config:   s.Config.WithCanvas(width, height),
		Measurer: s.Faces,
		Now:      now,
		Logger:   s.Logger.With("request_id", chimw.GetReqID(r.Context())),
	}
	chart, err := engine.Layout(table.Header, table.Rows)
	if err != nil {
		jsonError(w, err.Error(), layoutStatus(err))
		return
	}

	var buf bytes.Buffer
	switch format {
	case "svg":
		err = render.SVG(&buf, chart)
	default:
		err = render.PNG(&buf, chart, s.Faces)
	}
	if err != nil {
		s.Logger.Error("render failed", "format", format, "error", err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	switch format {
	case "svg":
		w.Header().Set("Content-Type", render.MimeSVG)
		w.Write(buf.Bytes())
	case "png":
		w.Header().Set("Content-Type", render.MimePNG)
		w.Write(buf.Bytes())
	case "datauri":
		resp := ImageResponse{
			Image:  render.DataURI(render.MimePNG, buf.Bytes()),
			Width:  chart.Width,
			Height: chart.Height,
		}
		for _, warn := range chart.Warnings {
			resp.Warnings = append(resp.Warnings, warn.Error())
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// layoutStatus maps structural layout failures to 422 and anything else
// (an invalid configuration) to 500.
func layoutStatus(err error) int {
	var mce *schedule.MissingColumnError
	switch {
	case errors.As(err, &mce),
		errors.Is(err, schedule.ErrEmptyDataset),
		errors.Is(err, gantt.ErrDegenerateScale):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", v)
	}
	if n > maxCanvas {
		return 0, fmt.Errorf("%d exceeds the maximum of %d pixels", n, maxCanvas)
	}
	return n, nil
}

// statusWriter captures the status and size of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// requestLog logs each request with its request ID, status, duration and
// size.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrap := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrap, r)
		s.Logger.Info("request",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrap.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"size", wrap.size)
	})
}
