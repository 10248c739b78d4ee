// Package server exposes the signals admin API and an assessment
// endpoint over HTTP. It is the Go rendition of the signals service
// the web client consumes: the catalog document lives in SQLite and
// every update is published to the in-process snapshot store, so
// screening picks up edits without a restart.
package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/hemant18-09/DOCai/internal/assess"
	"github.com/hemant18-09/DOCai/internal/catalog"
	"github.com/hemant18-09/DOCai/internal/model"
	"github.com/hemant18-09/DOCai/internal/storage"
)

const maxBodyBytes = 2 << 20

// Server serves the signals API.
type Server struct {
	store    *catalog.Store
	db       *storage.SignalsStore
	assessor *assess.Assessor
	limiter  *rate.Limiter
	mux      *http.ServeMux
}

// New creates a server over the given snapshot store and database.
// db may be nil; catalog updates then live only in memory.
func New(store *catalog.Store, db *storage.SignalsStore, assessor *assess.Assessor, perSecond float64, burst int) *Server {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 20
	}
	s := &Server{
		store:    store,
		db:       db,
		assessor: assessor,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the root handler with rate limiting applied.
func (s *Server) Handler() http.Handler {
	return s.rateLimit(s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/signals", s.handleGetSignals)
	s.mux.HandleFunc("PUT /api/signals", s.handlePutSignals)
	s.mux.HandleFunc("POST /api/signals/init", s.handleInitSignals)
	s.mux.HandleFunc("GET /api/signals/symptom/{category}", s.handleSymptomCategory)
	s.mux.HandleFunc("GET /api/signals/context/{category}", s.handleContextCategory)
	s.mux.HandleFunc("POST /api/assess", s.handleAssess)
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
				"success": false,
				"message": "rate limit exceeded",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GET /api/signals: the catalog currently in effect.
func (s *Server) handleGetSignals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    s.store.Current(),
	})
}

// PUT /api/signals: replace the catalog document.
func (s *Server) handlePutSignals(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}

	var cat model.Catalog
	if err := json.Unmarshal(body, &cat); err != nil {
		writeError(w, http.StatusBadRequest, "invalid catalog document")
		return
	}

	if err := s.persist(&cat); err != nil {
		log.Printf("persist catalog: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to store catalog")
		return
	}
	s.store.Swap(&cat)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Signal definitions updated",
		"data":    &cat,
	})
}

// POST /api/signals/init: seed the store with the embedded default.
func (s *Server) handleInitSignals(w http.ResponseWriter, r *http.Request) {
	def := catalog.Default()

	if err := s.persist(def); err != nil {
		log.Printf("persist default catalog: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to store catalog")
		return
	}
	s.store.Swap(def)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Signal definitions initialized",
		"data":    def,
	})
}

// GET /api/signals/symptom/{category}: one category's phrases, falling
// back to the embedded default when the current catalog lacks it.
func (s *Server) handleSymptomCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("category")

	phrases, ok := s.store.Current().Symptom(name)
	if !ok {
		phrases, _ = catalog.Default().Symptom(name)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": name,
		"symptoms": phrases,
	})
}

// GET /api/signals/context/{category}: one context category's phrases.
func (s *Server) handleContextCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("category")

	phrases, ok := s.store.Current().Context(name)
	if !ok {
		phrases, _ = catalog.Default().Context(name)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": name,
		"contexts": phrases,
	})
}

type assessRequest struct {
	Text      string `json:"text"`
	Threshold int    `json:"threshold,omitempty"`
}

// POST /api/assess: screen free text. Assessments are never persisted.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}

	var req assessRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var opts *assess.Options
	if req.Threshold > 0 {
		opts = &assess.Options{Threshold: req.Threshold}
	}

	report := s.assessor.Assess(req.Text, opts)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  report,
	})
}

func (s *Server) persist(cat *model.Catalog) error {
	if s.db == nil {
		return nil
	}
	return s.db.Save(cat)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": msg,
	})
}
