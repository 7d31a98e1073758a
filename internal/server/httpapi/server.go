// Package httpapi exposes the user, token and note services over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/opennote-dev/opennote/internal/logging"
	"github.com/opennote-dev/opennote/internal/server/auth"
	"github.com/opennote-dev/opennote/internal/server/services"
)

type Server struct {
	httpServer *http.Server
	router     *mux.Router
	logger     logging.Logger
	users      *services.UserService
	notes      *services.NoteService
}

func NewServer(addr string, logger logging.Logger, codec *auth.Codec,
	users *services.UserService, notes *services.NoteService, filter FilterConfig) *Server {

	s := &Server{
		router: mux.NewRouter(),
		logger: logger,
		users:  users,
		notes:  notes,
	}

	s.router.Use(loggingMiddleware(logger))
	s.router.Use(authFilter(codec, filter))

	s.router.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)

	s.router.HandleFunc("/users/", s.registerHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/users/whoami", s.whoamiHandler).Methods(http.MethodGet)

	s.router.HandleFunc("/access-token/login", s.loginHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/access-token/refresh", s.refreshHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/access-token/logout", s.logoutHandler).Methods(http.MethodPost)

	s.router.HandleFunc("/notes/", s.listNotesHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/notes/", s.createNoteHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/notes/{id}", s.getNoteHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/notes/{id}", s.updateNoteHandler).Methods(http.MethodPut)
	s.router.HandleFunc("/notes/{id}", s.deleteNoteHandler).Methods(http.MethodDelete)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the configured router, for tests that drive the server
// through httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
