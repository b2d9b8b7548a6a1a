// Package api exposes the menu catalog over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"MenuScanner/internal/domain"
	"MenuScanner/internal/logging"
	"MenuScanner/internal/menu"
	"MenuScanner/internal/usecase"
)

const invalidDateMessage = "Invalid date format. Use YYYY-MM-DD or YYYY/MM/DD."

// MenuService is the query side of the catalog.
type MenuService interface {
	Meal(ctx context.Context, date time.Time, period domain.Period) (domain.Entry, error)
	Weeks(ctx context.Context) ([]usecase.Week, error)
	Status() (ready bool, builtAt time.Time, lastErr error)
}

// MealResponse is the JSON body of a successful /meal query.
type MealResponse struct {
	Date   string `json:"date"`
	Period string `json:"period"`
	Meal   string `json:"meal"`
}

// WeekResponse describes one indexed week.
type WeekResponse struct {
	WeekStart string `json:"weekStart"`
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
}

// HealthResponse reports whether an index is loaded.
type HealthResponse struct {
	Status    string `json:"status"`
	Ready     bool   `json:"ready"`
	BuiltAt   string `json:"builtAt,omitempty"`
	LastError string `json:"lastError,omitempty"`
}

// Server routes HTTP requests to the menu service.
type Server struct {
	svc    MenuService
	logger *slog.Logger
	mux    *http.ServeMux
	origin string
}

// NewServer registers the /meal, /weeks and /health routes.
func NewServer(svc MenuService, allowOrigin string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{svc: svc, logger: logger, mux: http.NewServeMux(), origin: allowOrigin}
	s.mux.HandleFunc("GET /meal", s.handleMeal)
	s.mux.HandleFunc("GET /weeks", s.handleWeeks)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	return s
}

// Mount attaches an extra handler, such as a bot webhook.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// Handler returns the routed handler wrapped with CORS and request logging.
func (s *Server) Handler() http.Handler {
	return withRequestLog(withCORS(s.mux, s.origin), s.logger)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	s.logger.Info("api server listening", slog.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleMeal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := menu.ParseDate(q.Get("date"))
	if err != nil {
		http.Error(w, invalidDateMessage, http.StatusBadRequest)
		return
	}
	period := menu.NormalizePeriod(q.Get("period"))
	if period == "" {
		http.Error(w, "Missing period parameter.", http.StatusBadRequest)
		return
	}

	entry, err := s.svc.Meal(r.Context(), date, period)
	switch {
	case err == nil:
	case errors.Is(err, menu.ErrNotFound):
		http.Error(w, fmt.Sprintf("Meal not found for %s %s", domain.FormatDate(date), period), http.StatusNotFound)
		return
	default:
		s.upstreamError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MealResponse{
		Date:   domain.FormatDate(entry.Date),
		Period: string(entry.Period),
		Meal:   entry.Meal,
	})
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.svc.Weeks(r.Context())
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	out := make([]WeekResponse, 0, len(weeks))
	for _, wk := range weeks {
		out = append(out, WeekResponse{WeekStart: domain.FormatDate(wk.Start), URL: wk.URL, Title: wk.Title})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	ready, builtAt, lastErr := s.svc.Status()
	resp := HealthResponse{Status: "ok", Ready: ready}
	if !builtAt.IsZero() {
		resp.BuiltAt = builtAt.UTC().Format(time.RFC3339)
	}
	if lastErr != nil {
		resp.LastError = lastErr.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("menu data unavailable",
		slog.String("request_id", RequestID(r.Context())),
		slog.String("error", err.Error()),
	)
	http.Error(w, fmt.Sprintf("Failed to fetch menu data: %v", err), http.StatusBadGateway)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}
