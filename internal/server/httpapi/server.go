// Package httpapi exposes the chat operations over HTTP JSON plus the
// WebSocket feed endpoint.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/okunev/chatlite/internal/logging"
	"github.com/okunev/chatlite/internal/server/feed"
	"github.com/okunev/chatlite/internal/server/services"
)

type HTTPServer struct {
	address        string
	logger         logging.Logger
	accounts       *services.AccountService
	messages       *services.MessageService
	presence       *services.PresenceService
	avatars        *services.AvatarService
	sessions       *services.SessionService
	hub            *feed.Hub
	defaultChannel string
}

func NewHTTPServer(
	address string,
	logger logging.Logger,
	accounts *services.AccountService,
	messages *services.MessageService,
	presence *services.PresenceService,
	avatars *services.AvatarService,
	sessions *services.SessionService,
	hub *feed.Hub,
	defaultChannel string,
) *HTTPServer {
	return &HTTPServer{
		address:        address,
		logger:         logger.With("module", "http_server"),
		accounts:       accounts,
		messages:       messages,
		presence:       presence,
		avatars:        avatars,
		sessions:       sessions,
		hub:            hub,
		defaultChannel: defaultChannel,
	}
}

func (s *HTTPServer) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/session", s.handleOpenSession)
	mux.HandleFunc("GET /api/ping", s.handlePing)

	mux.HandleFunc("POST /api/accounts", s.handleUpsertAccount)
	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("GET /api/accounts/count", s.handleCountAccounts)

	mux.Handle("POST /api/messages", s.requireIdentity(s.handleSendMessage))
	mux.HandleFunc("GET /api/messages", s.handleListMessages)
	mux.Handle("PATCH /api/messages/{id}", s.requireIdentity(s.handleEditMessage))
	mux.Handle("DELETE /api/messages/{id}", s.requireIdentity(s.handleDeleteMessage))
	mux.Handle("PUT /api/messages/{id}/reactions/{emoji}", s.requireIdentity(s.handleToggleReaction))

	mux.Handle("POST /api/presence", s.requireIdentity(s.handleHeartbeat))
	mux.HandleFunc("GET /api/presence", s.handleListPresence)
	mux.Handle("POST /api/typing", s.requireIdentity(s.handleTyping))
	mux.HandleFunc("GET /api/typing", s.handleListTyping)

	mux.Handle("POST /api/avatars", s.requireIdentity(s.handleAvatarUploadURL))
	mux.HandleFunc("GET /api/avatars/{key...}", s.handleAvatarDownloadURL)

	mux.Handle("GET /ws", feed.Handler(s.hub, s.defaultChannel, s.sessions.Verify, s.logger))

	return mux
}

// Run serves the API until the context is canceled, then shuts down
// gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
