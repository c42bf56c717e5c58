package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// Request limits keep a single render from monopolizing the server
const (
	MaxWidth   = 2000
	MaxSamples = 1000
	MaxDepth   = 100
)

// Server handles web requests for the raytracer
type Server struct {
	config   config.Config
	uploader *output.S3Uploader // nil when uploads are not configured
	console  *Console
	renders  atomic.Int64
	now      func() time.Time
}

// NewServer creates a new web server
func NewServer(cfg config.Config, uploader *output.S3Uploader) *Server {
	return &Server{
		config:   cfg,
		uploader: uploader,
		console:  NewConsole(500),
		now:      time.Now,
	}
}

// uploadKey names the stored object for a render. The timestamp keeps keys
// from a restarted server, whose render counter starts over, from colliding.
func (s *Server) uploadKey(renderID, format string) string {
	stamp := s.now().UTC().Format("20060102T150405.000000000Z")
	return s.uploader.Key(fmt.Sprintf("%s-%s.%s", stamp, renderID, format))
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene ID (e.g., "default")
	Width   int    `json:"width"`   // Image width, 0 = scene default
	Samples int    `json:"samples"` // Samples per pixel, 0 = scene default
	Depth   int    `json:"depth"`   // Max bounce depth, -1 = scene default
	Seed    int64  `json:"seed"`
	Format  string `json:"format"` // Output format (png, ppm, jpg, ...)
	Upload  bool   `json:"upload"` // Also store the result in S3
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/console", s.handleConsole)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.config.Addr)
	return http.ListenAndServe(s.config.Addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, scene.ListScenes())
}

// handleConsole returns recent render log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.console.Recent())
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if req.Upload && s.uploader == nil {
		http.Error(w, "Invalid request: uploads are not configured", http.StatusBadRequest)
		return
	}

	sceneObj, err := scene.Create(req.Scene, renderer.CameraConfig{Width: req.Width})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.Depth >= 0 {
		sceneObj.SamplingConfig.MaxDepth = req.Depth
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewWebLogger(renderID, s.console)

	raytracer, err := renderer.NewRaytracer(sceneObj, renderer.RenderConfig{
		NumWorkers: s.config.Workers,
		Seed:       req.Seed,
	}, logger)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	// Request context cancels the render when the client disconnects
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		logger.Printf("Render aborted: %v\n", err)
		http.Error(w, "render aborted", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		logger.Printf("Encoding failed: %v\n", err)
		http.Error(w, "failed to encode image", http.StatusInternalServerError)
		return
	}

	if req.Upload {
		key := s.uploadKey(renderID, req.Format)
		if err := s.uploader.Upload(r.Context(), key, buf.Bytes()); err != nil {
			logger.Printf("Upload failed: %v\n", err)
			http.Error(w, "upload failed", http.StatusBadGateway)
			return
		}
		w.Header().Set("X-Upload-Key", key)
	}

	w.Header().Set("Content-Type", output.ContentType(req.Format))
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Render-Time", stats.Duration.Round(time.Millisecond).String())
	w.Header().Set("X-Image-Size", fmt.Sprintf("%dx%d", stats.Width, stats.Height))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses and validates the render query parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()

	req := &RenderRequest{
		Scene:  query.Get("scene"),
		Format: query.Get("format"),
		Seed:   s.config.Seed,
	}
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneID
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != output.FormatPPM && output.ContentType(req.Format) == "application/octet-stream" {
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, MaxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", -1, 0, MaxDepth); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}
	if value := query.Get("upload"); value != "" {
		if req.Upload, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid upload: %s", value)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
