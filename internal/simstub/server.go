// Package simstub is an in-memory stand-in for the Oraculum simulation
// backend. It speaks the production wire contract (submit, status poll,
// analyze) and fabricates plausible agent behavior, so the client pipeline
// can run and be tested without the real engine.
package simstub

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sohamshetty07/oraculum-core/internal/model"
	"github.com/sohamshetty07/oraculum-core/pkg/middleware"
)

// Server implements the simulation API against an in-memory job store.
type Server struct {
	store   *Store
	step    time.Duration
	workers int
}

// Options tunes the stub's pacing.
type Options struct {
	// StepInterval is the simulated think time per phase or response.
	StepInterval time.Duration
	// Workers bounds concurrent response generation in grid scenarios.
	Workers int
}

// NewServer creates a stub server.
func NewServer(opts Options) *Server {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Server{
		store:   NewStore(),
		step:    opts.StepInterval,
		workers: opts.Workers,
	}
}

// Router returns the HTTP handler with the full middleware stack.
func (s *Server) Router(cors middleware.CORSConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(cors))

	r.Post("/api/simulate", s.handleSimulate)
	r.Get("/api/status/{jobID}", s.handleStatus)
	r.Post("/api/analyze", s.handleAnalyze)

	return r
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Scenario.Valid() {
		writeError(w, http.StatusBadRequest, "unknown scenario")
		return
	}
	if req.AgentCount <= 0 {
		writeError(w, http.StatusBadRequest, "agentCount must be positive")
		return
	}

	job := &Job{
		ID:          uuid.New().String(),
		Scenario:    req.Scenario,
		ProductName: req.ProductName,
		Status:      "processing",
		CreatedAt:   time.Now().UTC(),
	}
	s.store.Put(job)

	go s.runSimulation(job, req)

	writeJSON(w, http.StatusOK, model.SubmitResponse{JobID: job.ID})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, ok := s.store.Get(jobID)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.snapshot())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, ok := s.store.Get(req.JobID)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	payload := job.snapshot()
	if len(payload.Results) == 0 {
		writeError(w, http.StatusBadRequest, "no results available to analyze")
		return
	}

	writeJSON(w, http.StatusOK, model.AnalyzeResponse{Report: buildReport(job)})
}

// ErrorResponse is the stub's error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
