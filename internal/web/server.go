// Package web serves the pages, the intent endpoints and the live player
// channel.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"musicroom-web/internal/catalog"
	"musicroom-web/internal/playback"
	"musicroom-web/internal/realtime"
	"musicroom-web/internal/session"
)

type Deps struct {
	Sessions *session.Manager
	Store    playback.Store
	Source   catalog.Source

	// Optional. Without a hub /ws answers 404.
	Publisher playback.Publisher
	Queue     playback.Queue
	Hub       *realtime.Hub

	AllowedOrigin string
	Log           *zap.Logger
}

type Server struct {
	deps  Deps
	pages templates
	ws    *realtime.Server
	log   *zap.Logger
}

// NewServer parses the embedded templates. ctx bounds intents applied by
// websocket clients.
func NewServer(ctx context.Context, d Deps) (*Server, error) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{deps: d, pages: pages, log: d.Log}
	if d.Hub != nil {
		s.ws = realtime.NewServer(ctx, d.Hub, s, d.AllowedOrigin, d.Log.Named("realtime"))
	}
	return s, nil
}

// Middlewares is the default stack installed by cmd/server.
func (s *Server) Middlewares() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		requestLogMiddleware(s.log.Named("http")),
		middleware.Recoverer,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)
	r.Get("/static/*", handleStatic)
	r.Get("/ws", s.handleWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(pageTimeout))

		r.Get("/", s.handleHome)
		r.Get("/library", s.handleLibrary)
		r.Get("/search", s.handleSearch)
		r.Get("/artist/{id}", s.handleArtist)
		r.Get("/collection/{kind}/{id}", s.handleCollection)

		r.Get("/player", s.handlePlayer)
		r.Post("/intents/{intent}", s.handleIntent)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "musicroom-web",
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.ws == nil {
		writeError(w, http.StatusNotFound, "live updates disabled")
		return
	}
	sess := s.deps.Sessions.FromRequest(w, r)
	s.ws.ServeWS(w, r, sess.ID)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	sess := s.deps.Sessions.FromRequest(w, r)
	snap, err := s.player(sess.ID).Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "playback state unavailable")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) player(session string) *playback.Player {
	var opts []playback.Option
	if s.deps.Publisher != nil {
		opts = append(opts, playback.WithPublisher(s.deps.Publisher))
	}
	if s.deps.Queue != nil {
		opts = append(opts, playback.WithQueue(s.deps.Queue))
	}
	return playback.NewPlayer(s.deps.Store, session, s.log, opts...)
}
