package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/inovacc/wifilog/internal/model"
	"github.com/inovacc/wifilog/internal/sampler"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Records is the read side of the daily log.
type Records interface {
	Get(ctx context.Context, date string) (model.DailyRecord, error)
	List(ctx context.Context) ([]model.DailyRecord, error)
	Ping() error
}

// Status exposes the sampler to the API. It may be nil.
type Status interface {
	Target() string
	IsRunning() bool
	Stats() sampler.Stats
}

// Server serves the query API and the HTML log page
type Server struct {
	records    Records
	status     Status
	logger     *slog.Logger
	templates  *template.Template
	httpServer *http.Server
}

// New creates a new web server
func New(records Records, status Status, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.New("").Funcs(templateFuncMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		records:   records,
		status:    status,
		logger:    logger.With("component", "web"),
		templates: tmpl,
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s, nil
}

// templateFuncMap returns the common template functions
func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "Never"
			}

			return t.Format("Jan 02, 2006 15:04")
		},
	}
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("web server listening", "addr", l.Addr().String())

	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the web server
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down web server")

	return s.httpServer.Shutdown(shutdownCtx)
}

// render renders the named template
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
