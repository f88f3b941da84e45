package api

import (
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/cellux/gradnoise/internal/render"
	"github.com/cellux/gradnoise/noise"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	l, err := noise.NewLattice(3, 3, 42)
	if err != nil {
		t.Fatal(err)
	}
	f, err := noise.NewField(l, 20)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(f, render.Options{Palette: render.PaletteBlue, Grid: true, Vectors: true}, 2, logger)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Routes().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := get(t, newTestServer(t), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Seed != 42 {
		t.Errorf("unexpected health response: %+v", resp)
	}
}

func TestFieldEndpoint(t *testing.T) {
	w := get(t, newTestServer(t), "/api/v1/field")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp FieldResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	want := FieldResponse{Seed: 42, Cols: 3, Rows: 3, CellSize: 20, Width: 60, Height: 60}
	if resp != want {
		t.Errorf("got %+v, want %+v", resp, want)
	}
}

func TestGradientsEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/api/v1/gradients")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp GradientsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Gradients) != 16 {
		t.Fatalf("got %d gradients, want 16", len(resp.Gradients))
	}
	last := resp.Gradients[15]
	g, _ := s.field.Lattice().GradientAt(3, 3)
	if last.CX != 3 || last.CY != 3 || last.X != g[0] || last.Y != g[1] {
		t.Errorf("last gradient = %+v, lattice has %v", last, g)
	}
}

func TestSampleEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/api/v1/sample?x=25.5&y=7")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp SampleResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	want, _ := s.field.Sample(25.5, 7)
	if resp.Value != want {
		t.Errorf("value = %v, want %v", resp.Value, want)
	}
	if resp.CellX != 1 || resp.CellY != 0 {
		t.Errorf("cell = (%d,%d), want (1,0)", resp.CellX, resp.CellY)
	}
}

func TestSampleEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		errType string
	}{
		{"missing x", "/api/v1/sample?y=1", ErrTypeValidation},
		{"bad y", "/api/v1/sample?x=1&y=abc", ErrTypeValidation},
		{"outside", "/api/v1/sample?x=60&y=1", ErrTypeDomain},
		{"negative", "/api/v1/sample?x=-1&y=1", ErrTypeDomain},
	}
	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, s, tt.target)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			var apiErr APIError
			if err := json.NewDecoder(w.Body).Decode(&apiErr); err != nil {
				t.Fatalf("Failed to decode error: %v", err)
			}
			if apiErr.Type != tt.errType {
				t.Errorf("error type = %q, want %q", apiErr.Type, tt.errType)
			}
			if apiErr.RequestID == "" {
				t.Error("Expected request ID in error")
			}
		})
	}
}

func TestNoisePNGEndpoint(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		width, height int
		seed          string
	}{
		{"default field", "/api/v1/noise.png", 60, 60, "42"},
		{"scaled", "/api/v1/noise.png?scale=2&grid=false", 120, 120, "42"},
		{"one-off field", "/api/v1/noise.png?seed=7&cols=2&rows=1&cellSize=16&palette=gray", 32, 16, "7"},
	}
	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, s, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q", ct)
			}
			if seed := w.Header().Get("X-Noise-Seed"); seed != tt.seed {
				t.Errorf("X-Noise-Seed = %q, want %q", seed, tt.seed)
			}
			img, err := png.Decode(w.Body)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("bounds = %v, want %dx%d", b, tt.width, tt.height)
			}
		})
	}
}

func TestRequestedField_RejectsBeforeAllocating(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/noise.png?cols=10000000&rows=1&cellSize=0.0000001", nil)
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, _, err := s.requestedField(req)
	runtime.ReadMemStats(&after)
	if !errors.Is(err, noise.ErrInvalidDimensions) {
		t.Fatalf("error = %v, want ErrInvalidDimensions", err)
	}
	if grown := after.TotalAlloc - before.TotalAlloc; grown > 1<<20 {
		t.Errorf("rejecting the request allocated %d bytes", grown)
	}
}

func TestNoisePNGEndpoint_Errors(t *testing.T) {
	targets := []string{
		"/api/v1/noise.png?palette=rainbow",
		"/api/v1/noise.png?scale=0",
		"/api/v1/noise.png?grid=maybe",
		"/api/v1/noise.png?cols=0",
		"/api/v1/noise.png?cellSize=-3",
		"/api/v1/noise.png?cols=1000&rows=1000&cellSize=100",
		"/api/v1/noise.png?cols=10000000&rows=1&cellSize=0.0000001",
		"/api/v1/noise.png?cols=3&rows=3&cellSize=NaN",
		"/api/v1/noise.png?cols=3&rows=3&cellSize=Inf",
		"/api/v1/noise.png?cols=300&rows=300&cellSize=1",
	}
	s := newTestServer(t)
	for _, target := range targets {
		if w := get(t, s, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: Expected status 400, got %d", target, w.Code)
		}
	}
}
