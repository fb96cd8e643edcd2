package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"call-coaching-go/internal/actionable"
	"call-coaching-go/internal/aggregator"
	"call-coaching-go/internal/dataset"
	"call-coaching-go/internal/logger"
	"call-coaching-go/internal/matcher"
	"call-coaching-go/internal/processor"
	"call-coaching-go/internal/store"
	"call-coaching-go/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AnalysisStore is the read side of the score store.
type AnalysisStore interface {
	Count(ctx context.Context) (int, error)
	Analyses(ctx context.Context, limit int) ([]types.SignalAnalysis, error)
	ListByRecording(ctx context.Context, recordingID string) ([]store.StoredAnalysis, error)
}

type Server struct {
	proc       *processor.Processor
	store      AnalysisStore
	candidates []types.Candidate
	fuzzy      []types.FuzzyCandidate
	log        *logger.Logger
	router     chi.Router
}

type Option func(*Server)

// WithStore enables the report and history endpoints.
func WithStore(s AnalysisStore) Option { return func(srv *Server) { srv.store = s } }

// WithRecords sets the default match candidates used when a request has none.
func WithRecords(records []types.CallRecord) Option {
	return func(srv *Server) {
		srv.candidates = dataset.Candidates(records)
		srv.fuzzy = dataset.FuzzyCandidates(records)
	}
}

func NewServer(proc *processor.Processor, log *logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.Discard()
	}
	srv := &Server{proc: proc, log: log}
	for _, opt := range opts {
		opt(srv)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(srv.requestLogger)

	r.Get("/healthz", srv.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", srv.handleAnalyze)
		r.Post("/aggregate", srv.handleAggregate)
		r.Get("/reports/aggregate", srv.handleStoredAggregate)
		r.Get("/recordings/{recordingID}/analyses", srv.handleRecordingHistory)
		r.Post("/recommend", srv.handleRecommend)
		r.Post("/match/title", srv.handleMatchTitle)
		r.Post("/match/fuzzy", srv.handleMatchFuzzy)
	})

	srv.router = r
	return srv
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := logger.RequestID(r)
		r.Header.Set(logger.RequestIDHeader, id)
		w.Header().Set(logger.RequestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithRequest(r).
			WithField("status", ww.Status()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request handled")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":         "ok",
		"keywordVersion": s.proc.KeywordVersion(),
		"candidates":     len(s.candidates),
	}
	if s.store != nil {
		n, err := s.store.Count(r.Context())
		if err != nil {
			s.log.WithError(err).Error("count analyses failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": "store unavailable"})
			return
		}
		body["storedAnalyses"] = n
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in types.TranscriptInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if in.DurationSeconds < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("durationSeconds must not be negative"))
		return
	}
	writeJSON(w, http.StatusOK, s.proc.ScoreRecording(r.Context(), in))
}

type aggregateRequest struct {
	Analyses []types.SignalAnalysis `json:"analyses"`
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	var req aggregateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, aggregator.Aggregate(req.Analyses))
}

func (s *Server) handleStoredAggregate(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("no score store configured"))
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("limit must be a positive integer"))
			return
		}
		limit = n
	}
	analyses, err := s.store.Analyses(r.Context(), limit)
	if err != nil {
		s.log.WithError(err).Error("load analyses failed")
		writeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, aggregator.Aggregate(analyses))
}

func (s *Server) handleRecordingHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("no score store configured"))
		return
	}
	recs, err := s.store.ListByRecording(r.Context(), chi.URLParam(r, "recordingID"))
	if err != nil {
		s.log.WithError(err).Error("load recording history failed")
		writeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
		return
	}
	if recs == nil {
		recs = []store.StoredAnalysis{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": recs})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var a types.SignalAnalysis
	if err := decodeBody(w, r, &a); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": actionable.Recommend(a)})
}

type titleMatchRequest struct {
	Filename   string            `json:"filename"`
	Filenames  []string          `json:"filenames"`
	Candidates []types.Candidate `json:"candidates"`
}

func (s *Server) handleMatchTitle(w http.ResponseWriter, r *http.Request) {
	var req titleMatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cands := req.Candidates
	if len(cands) == 0 {
		cands = s.candidates
	}
	if len(req.Filenames) > 0 {
		writeJSON(w, http.StatusOK, map[string]any{"results": matcher.MatchAll(req.Filenames, cands)})
		return
	}
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("filename or filenames is required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"match": matcher.FindBestMatch(req.Filename, cands)})
}

type fuzzyMatchRequest struct {
	Reference  types.FuzzyReference   `json:"reference"`
	Candidates []types.FuzzyCandidate `json:"candidates"`
}

func (s *Server) handleMatchFuzzy(w http.ResponseWriter, r *http.Request) {
	var req fuzzyMatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Reference.Identifier == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("reference.identifier is required"))
		return
	}
	cands := req.Candidates
	if len(cands) == 0 {
		cands = s.fuzzy
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matcher.FuzzyMatch(req.Reference, cands)})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
