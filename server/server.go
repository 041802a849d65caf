// Package server wires the HTTP API: formatting, document analysis, article
// generation, and draft publishing.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/auditlog"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/extractor"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/generator"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/publisher"
)

// Server holds the request handlers' collaborators.
type Server struct {
	formatter *generator.Formatter
	agent     *generator.Agent
	extract   *extractor.Extractor
	pub       *publisher.Publisher
	audit     *auditlog.Logger
	logger    *zap.Logger

	maxUploadBytes int64
}

func New(
	formatter *generator.Formatter,
	agent *generator.Agent,
	extract *extractor.Extractor,
	pub *publisher.Publisher,
	audit *auditlog.Logger,
	logger *zap.Logger,
	maxUploadBytes int64,
) (*Server, error) {
	if formatter == nil || agent == nil {
		return nil, errors.New("formatter and agent are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		formatter:      formatter,
		agent:          agent,
		extract:        extract,
		pub:            pub,
		audit:          audit,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}, nil
}

// Routes builds the router with the JSON API endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logMiddleware)

	r.Post("/format", s.handleFormat)
	r.Post("/analyze", s.handleAnalyze)
	r.Post("/generate", s.handleGenerate)
	r.Post("/publish", s.handlePublish)
	r.Get("/health", s.handleHealth)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", zap.Error(err))
	}
}

// respondError writes the {"error": ...} shape used by /format and /generate.
func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
