// Package server exposes the coordination backend over HTTP: room
// rendezvous, preference sync, merged scene generation, model management
// and the audio passthrough endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/scenarch/scenarch/pkg/llm"
	"github.com/scenarch/scenarch/pkg/room"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/rooms.go -pkg mocks -skip-ensure -fmt goimports . Rooms
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/speech.go -pkg mocks -skip-ensure -fmt goimports . Speech

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	rooms     Rooms
	generator Generator
	loader    ModelLoader
	speech    Speech
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Rooms is the rendezvous store interface
type Rooms interface {
	Create() string
	Join(code string) (string, error)
	Close(code string) error
	Sync(code, userID string, sel room.Selection) (int, error)
	Status(code string) (room.Status, error)
	Merge(code string) (room.Merged, error)
}

// Generator produces scene text from a prompt
type Generator interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
	Models(ctx context.Context) ([]string, error)
}

// ModelLoader registers local GGUF files with the generation backend.
// Optional: nil when the provider has no model management.
type ModelLoader interface {
	Load(ctx context.Context, path, name string) error
}

// Speech handles the audio endpoints
type Speech interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
	PingTTS(ctx context.Context) error
	PingSTT(ctx context.Context) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	ModelsDir() string
	DefaultModel() string
}

// New initializes a new server instance. loader may be nil when the
// generation provider cannot load models.
func New(cfg ConfigProvider, rooms Rooms, generator Generator, loader ModelLoader, speech Speech, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		rooms:     rooms,
		generator: generator,
		loader:    loader,
		speech:    speech,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("scenarch", "scenarch", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(10 * 1024 * 1024)) // 10MB, audio uploads included
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /room", s.roomHandler)
		r.HandleFunc("GET /room/{code}", s.roomStatusHandler)
		r.HandleFunc("DELETE /room/{code}", s.roomCloseHandler)
		r.HandleFunc("POST /sync/{code}/{userID}", s.syncHandler)
		r.HandleFunc("POST /generate/{code}", s.generateHandler)

		r.HandleFunc("GET /models/tags", s.modelTagsHandler)
		r.HandleFunc("GET /models/files", s.modelFilesHandler)
		r.HandleFunc("POST /models/load", s.modelLoadHandler)

		r.HandleFunc("POST /llm", s.llmHandler)
		r.HandleFunc("POST /tts", s.ttsHandler)
		r.HandleFunc("POST /stt", s.sttHandler)

		r.HandleFunc("GET /health", s.healthHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

// roomErrorCode maps room errors to HTTP status codes
func roomErrorCode(err error) int {
	switch {
	case errors.Is(err, room.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrEmpty):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrFull):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
