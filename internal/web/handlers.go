package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inovacc/wifilog/internal/model"
	"github.com/inovacc/wifilog/internal/sampler"
	"github.com/inovacc/wifilog/internal/store"
)

// PageData holds data for the log page
type PageData struct {
	Title   string
	Target  string
	Running bool
	Stats   sampler.Stats
	Records []model.DailyRecord
	Error   string
}

// StatusResponse is returned by GET /api/status
type StatusResponse struct {
	Target  string        `json:"target"`
	Running bool          `json:"running"`
	Stats   sampler.Stats `json:"stats"`
}

// APIError is the body of every non-2xx JSON response
type APIError struct {
	Error string `json:"error"`
}

// handleIndex renders the log as an HTML table
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "Connection log"}

	if s.status != nil {
		data.Target = s.status.Target()
		data.Running = s.status.IsRunning()
		data.Stats = s.status.Stats()
	}

	records, err := s.records.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list records", "error", err)
		data.Error = "Failed to load the connection log"
	}

	data.Records = records

	s.render(w, "index.html", data)
}

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list records", "error", err)
		s.jsonError(w, "failed to list records", http.StatusInternalServerError)

		return
	}

	s.jsonResponse(w, records)
}

func (s *Server) handleGetConnection(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	if err := model.ValidateDate(date); err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := s.records.Get(r.Context(), date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.jsonError(w, "no connection recorded on "+date, http.StatusNotFound)
			return
		}

		s.logger.Error("failed to get record", "date", date, "error", err)
		s.jsonError(w, "failed to get record", http.StatusInternalServerError)

		return
	}

	s.jsonResponse(w, rec)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	var resp StatusResponse

	if s.status != nil {
		resp.Target = s.status.Target()
		resp.Running = s.status.IsRunning()
		resp.Stats = s.status.Stats()
	}

	s.jsonResponse(w, resp)
}

// handleHealth reports whether the store is reachable
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if err := s.records.Ping(); err != nil {
		s.logger.Warn("health check failed", "error", err)
		s.jsonError(w, "store unavailable", http.StatusServiceUnavailable)

		return
	}

	s.jsonResponse(w, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("JSON encode error", "error", err)
	}
}

// jsonError writes a JSON error response
func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(APIError{Error: message}); err != nil {
		s.logger.Error("JSON encode error", "error", err)
	}
}
