// Package server exposes the planning pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                     liveness probe
//	POST /v1/plans                    run the pipeline, body is pipeline.Options JSON
//	GET  /v1/plans                    list recorded runs, newest first
//	GET  /v1/plans/{id}               a recorded plan
//	GET  /v1/plans/{id}/render/{fmt}  a recorded plan rendered as txt, json, png, svg, dot or graph
//
// Request bodies start from [pipeline.DefaultOptions], so an empty object
// plans the reference scenario.
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/signaltower/pkg/buildinfo"
	"github.com/matzehuels/signaltower/pkg/errors"
	planio "github.com/matzehuels/signaltower/pkg/io"
	"github.com/matzehuels/signaltower/pkg/observability"
	"github.com/matzehuels/signaltower/pkg/pipeline"
	"github.com/matzehuels/signaltower/pkg/store"
)

const (
	// DefaultMaxCells bounds rows*cols of a requested city.
	DefaultMaxCells = 250_000

	maxBodyBytes = 1 << 20
)

// Server serves the plan API backed by a pipeline runner. Plans can only be
// fetched back when the runner has a Store.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	maxCells int
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{runner: runner, logger: logger, maxCells: DefaultMaxCells}
}

// SetMaxCells changes the largest accepted grid. n <= 0 removes the limit.
func (s *Server) SetMaxCells(n int) {
	s.maxCells = n
}

// Router returns the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	r.Route("/v1/plans", func(r chi.Router) {
		r.Post("/", s.createPlan)
		r.Get("/", s.listPlans)
		r.Get("/{id}", s.getPlan)
		r.Get("/{id}/render/{format}", s.renderPlan)
	})
	return r
}

// observe reports every request to the HTTP hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Debug("http", "method", r.Method, "path", r.URL.Path, "status", status,
			"duration", d, "request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// planResponse is the body returned for a plan.
type planResponse struct {
	ID        string          `json:"id"`
	Seed      uint64          `json:"seed"`
	Plan      json.RawMessage `json:"plan"`
	Cached    bool            `json:"cached"`
	Stats     *pipeline.Stats `json:"stats,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

func (s *Server) createPlan(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.DefaultOptions()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode options"))
		return
	}
	// Artifacts are fetched through the render route.
	opts.Formats = nil
	opts.Logger = s.logger

	if s.maxCells > 0 && opts.Rows*opts.Cols > s.maxCells {
		s.writeError(w, errors.New(errors.ErrCodeInvalidConfiguration,
			"grid %dx%d exceeds %d cells", opts.Rows, opts.Cols, s.maxCells))
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	plan, err := encodePlan(res.Plan)
	if err != nil {
		s.writeError(w, err)
		return
	}

	stats := res.Stats
	w.Header().Set("Location", "/v1/plans/"+res.RunID)
	writeJSON(w, http.StatusCreated, planResponse{
		ID:     res.RunID,
		Seed:   res.Seed,
		Plan:   plan,
		Cached: res.CacheInfo.PlanHit,
		Stats:  &stats,
	})
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, errHistoryDisabled)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	runs, err := s.runner.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, errHistoryDisabled)
		return
	}
	run, err := s.runner.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	created := run.CreatedAt.UTC()
	writeJSON(w, http.StatusOK, planResponse{
		ID:        run.ID,
		Seed:      run.Seed,
		Plan:      json.RawMessage(run.Plan),
		Cached:    true,
		CreatedAt: &created,
	})
}

func (s *Server) renderPlan(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, errHistoryDisabled)
		return
	}
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormats([]string{format}); err != nil {
		s.writeError(w, err)
		return
	}
	run, err := s.runner.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	plan, err := planio.ReadJSON(bytes.NewReader(run.Plan))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{Formats: []string{format}, Title: r.URL.Query().Get("title")}
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), plan, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

func encodePlan(p *planio.Plan) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := planio.WriteJSON(p, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode plan")
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatSVG, pipeline.FormatGraph:
		return "image/svg+xml"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}
