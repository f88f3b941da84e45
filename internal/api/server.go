package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cellux/gradnoise/internal/render"
	"github.com/cellux/gradnoise/noise"
)

// Bounds on fields built from request parameters. Both are checked before
// anything is allocated.
const (
	maxPixels  = 4096 * 4096
	maxCorners = 1 << 16
)

// Server exposes a field over HTTP.
type Server struct {
	field   *noise.Field
	opts    render.Options
	workers int
	logger  *slog.Logger

	valuesOnce sync.Once
	values     [][]float64
}

// NewServer serves f. opts are the defaults for rendered PNGs.
func NewServer(f *noise.Field, opts render.Options, workers int, logger *slog.Logger) *Server {
	return &Server{
		field:   f,
		opts:    opts,
		workers: workers,
		logger:  logger,
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/field", s.handleField)
		r.Get("/gradients", s.handleGradients)
		r.Get("/sample", s.handleSample)
		r.Get("/noise.png", s.handleNoisePNG)
	})

	return r
}

// ListenAndServe blocks serving the routes on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", addr, "seed", s.field.Lattice().Seed())
	return srv.ListenAndServe()
}

func (s *Server) defaultValues() [][]float64 {
	s.valuesOnce.Do(func() {
		start := time.Now()
		s.values = s.field.EvaluateAll()
		s.logger.Debug("field evaluated",
			"width", s.field.Width(),
			"height", s.field.Height(),
			"elapsed", time.Since(start))
	})
	return s.values
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Seed:   s.field.Lattice().Seed(),
	})
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	f := s.field
	l := f.Lattice()
	s.writeJSON(w, http.StatusOK, FieldResponse{
		Seed:     l.Seed(),
		Cols:     l.Cols(),
		Rows:     l.Rows(),
		CellSize: f.CellSize(),
		Width:    f.Width(),
		Height:   f.Height(),
	})
}

func (s *Server) handleGradients(w http.ResponseWriter, r *http.Request) {
	l := s.field.Lattice()
	resp := GradientsResponse{
		Seed:      l.Seed(),
		Gradients: make([]Gradient, 0, l.Corners()),
	}
	for i, v := range l.Gradients() {
		resp.Gradients = append(resp.Gradients, Gradient{
			CX: i % (l.Cols() + 1),
			CY: i / (l.Cols() + 1),
			X:  v[0],
			Y:  v[1],
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	x := q.floatParam("x", 0, true)
	y := q.floatParam("y", 0, true)
	if q.err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, q.err.Error(), nil)
		return
	}
	p, err := s.field.Probe(x, y)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	resp := SampleResponse{
		X:     p.X,
		Y:     p.Y,
		CellX: p.CellX,
		CellY: p.CellY,
		FX:    p.FX,
		FY:    p.FY,
		Dots:  p.Dots,
		Raw:   p.Raw,
		Value: p.Value,
	}
	for i := range p.Offsets {
		resp.Offsets[i] = Vec{p.Offsets[i][0], p.Offsets[i][1]}
		resp.Gradients[i] = Vec{p.Gradients[i][0], p.Gradients[i][1]}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNoisePNG(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	opts := s.opts
	if name := r.URL.Query().Get("palette"); name != "" {
		p, err := render.ParsePalette(name)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
			return
		}
		opts.Palette = p
	}
	opts.Grid = q.boolParam("grid", opts.Grid)
	opts.Vectors = q.boolParam("vectors", opts.Vectors)
	opts.Scale = q.intParam("scale", max(opts.Scale, 1))
	if q.err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, q.err.Error(), nil)
		return
	}
	if opts.Scale < 1 || opts.Scale > 16 {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation,
			fmt.Sprintf("scale must be in [1,16], got %d", opts.Scale), nil)
		return
	}

	f, values, err := s.requestedField(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if f.Width()*f.Height()*opts.Scale*opts.Scale > maxPixels {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "image too large", map[string]any{
			"width":  f.Width() * opts.Scale,
			"height": f.Height() * opts.Scale,
		})
		return
	}
	if values == nil {
		values = f.EvaluateAll()
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, f, values, opts); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Noise-Seed", strconv.FormatUint(f.Lattice().Seed(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// requestedField returns the server's field, or a one-off field when the
// request overrides any of seed, cols, rows or cellSize. values is nil for
// one-off fields so the size check can run before evaluation.
func (s *Server) requestedField(r *http.Request) (*noise.Field, [][]float64, error) {
	qv := r.URL.Query()
	if !qv.Has("seed") && !qv.Has("cols") && !qv.Has("rows") && !qv.Has("cellSize") {
		return s.field, s.defaultValues(), nil
	}
	base := s.field.Lattice()
	q := query{r: r}
	seed := q.uintParam("seed", base.Seed())
	cols := q.intParam("cols", base.Cols())
	rows := q.intParam("rows", base.Rows())
	cellSize := q.floatParam("cellSize", s.field.CellSize(), false)
	if q.err != nil {
		return nil, nil, fmt.Errorf("%w: %v", noise.ErrInvalidDimensions, q.err)
	}
	if cols < 1 || rows < 1 {
		return nil, nil, fmt.Errorf("lattice %dx%d: %w", cols, rows, noise.ErrInvalidDimensions)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, nil, fmt.Errorf("cell size %v: %w", cellSize, noise.ErrInvalidDimensions)
	}
	if n, ok := noise.CornerCount(cols, rows); !ok || n > maxCorners {
		return nil, nil, fmt.Errorf("lattice of %dx%d cells exceeds %d corners: %w", cols, rows, maxCorners, noise.ErrInvalidDimensions)
	}
	if float64(cols)*cellSize*float64(rows)*cellSize > maxPixels {
		return nil, nil, fmt.Errorf("field of %dx%d cells at %v px: %w", cols, rows, cellSize, noise.ErrInvalidDimensions)
	}
	l, err := noise.NewLattice(cols, rows, seed)
	if err != nil {
		return nil, nil, err
	}
	f, err := noise.NewField(l, cellSize)
	if err != nil {
		return nil, nil, err
	}
	f.SetWorkers(s.workers)
	return f, nil, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start))
	})
}
