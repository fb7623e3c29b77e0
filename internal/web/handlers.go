package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/fifastats/internal/core"
	"github.com/JonMunkholm/fifastats/internal/logging"
	"github.com/JonMunkholm/fifastats/internal/report"
	"github.com/JonMunkholm/fifastats/internal/tableload"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string                `json:"status"`
	Builds core.LimiterStatus    `json:"builds"`
	Cache  *tableload.CacheStats `json:"cache,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Builds: s.limiter.Status(),
	}
	if mc, ok := s.service.Cache().(*tableload.MemoryCache); ok {
		stats := mc.Stats()
		resp.Cache = &stats
	}
	writeJSON(w, r, resp)
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.Datasets())
}

func (s *Server) handleDatasetReport(w http.ResponseWriter, r *http.Request) {
	ds, err := s.buildDataset(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, ds)
}

func (s *Server) handleDatasetPage(w http.ResponseWriter, r *http.Request) {
	ds, err := s.buildDataset(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.DatasetPage(ds).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dataset page", "error", err)
	}
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	run, err := s.buildRun(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, run)
}

func (s *Server) handleRunPage(w http.ResponseWriter, r *http.Request) {
	run, err := s.buildRun(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RunPage(run).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render run page", "error", err)
	}
}

// buildDataset reports the dataset named in the URL under a build slot.
func (s *Server) buildDataset(r *http.Request) (report.Dataset, error) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	ctx := r.Context()
	if err := s.limiter.Acquire(ctx); err != nil {
		return report.Dataset{}, err
	}
	defer s.limiter.Release()

	logging.FromContext(ctx).Debug("building dataset report", "dataset", name)
	return s.service.Dataset(ctx, name)
}

// buildRun reports every dataset under a build slot.
func (s *Server) buildRun(ctx context.Context) (*report.Run, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	return s.service.Run(ctx)
}
