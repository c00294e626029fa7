// Package server exposes the generators over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/orchestrator"
	"github.com/goliatone/go-zodform/pkg/render"
)

const maxBodyBytes = 1 << 20

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithOrchestrator replaces the default orchestrator.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.orchestrator = o
	}
}

// WithDefaults sets the options applied to request bodies that omit them.
func WithDefaults(options model.GenerationOptions) Option {
	return func(s *Server) {
		s.defaults = options
	}
}

// WithRenderOptions sets the render options used when a request does not
// name a components path.
func WithRenderOptions(options render.Options) Option {
	return func(s *Server) {
		s.renderOptions = options
	}
}

// Server routes generation requests to an orchestrator.
type Server struct {
	router        chi.Router
	orchestrator  *orchestrator.Orchestrator
	logger        zerolog.Logger
	defaults      model.GenerationOptions
	renderOptions render.Options
}

// New builds a Server with its routes registered.
func New(options ...Option) *Server {
	s := &Server{
		logger:   zerolog.Nop(),
		defaults: model.DefaultOptions(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.orchestrator == nil {
		s.orchestrator = orchestrator.New(orchestrator.WithLogger(s.logger))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/types", s.handleTypes)
		r.Post("/artifacts", s.handleArtifacts)
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	s.logger.Info().Str("addr", addr).Msg("server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	}
}

// ArtifactRequest is the body of POST /v1/artifacts.
type ArtifactRequest struct {
	model.ArtifactSpec
	ComponentsPath string `json:"componentsPath,omitempty"`
}

// ArtifactResponse is the body returned by POST /v1/artifacts.
type ArtifactResponse struct {
	Artifacts []model.GeneratedArtifact `json:"artifacts"`
}

// TypesResponse lists the vocabularies accepted by the API.
type TypesResponse struct {
	Kinds       []model.ArtifactKind `json:"kinds"`
	TypeTags    []model.TypeTag      `json:"typeTags"`
	SchemaTypes []model.SchemaType   `json:"schemaTypes"`
	InputTypes  []model.InputType    `json:"inputTypes"`
	Methods     []model.HTTPMethod   `json:"methods"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TypesResponse{
		Kinds:       s.orchestrator.Kinds(),
		TypeTags:    model.TypeTags(),
		SchemaTypes: model.SchemaTypes(),
		InputTypes:  model.InputTypes(),
		Methods:     []model.HTTPMethod{model.MethodGet, model.MethodPost, model.MethodPut, model.MethodDelete},
	})
}

func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	req := ArtifactRequest{ArtifactSpec: model.ArtifactSpec{Options: s.defaults}}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body: "+err.Error())
		return
	}

	renderOptions := s.renderOptions
	if req.ComponentsPath != "" {
		renderOptions.ComponentsPath = req.ComponentsPath
	}
	artifacts, err := s.orchestrator.Generate(r.Context(), orchestrator.Request{
		Spec:          req.ArtifactSpec,
		RenderOptions: renderOptions,
	})
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ArtifactResponse{Artifacts: artifacts})
}

func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrConfiguration):
		writeError(w, http.StatusBadRequest, "CONFIGURATION", err.Error())
	case errors.Is(err, model.ErrUnsupportedFieldType):
		writeError(w, http.StatusUnprocessableEntity, "UNSUPPORTED_FIELD_TYPE", err.Error())
	default:
		s.logger.Error().Err(err).Msg("generation failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
