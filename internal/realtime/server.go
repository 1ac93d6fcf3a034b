package realtime

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"musicroom-web/internal/playback"
)

// IntentHandler applies intents on behalf of a session.
type IntentHandler interface {
	HandleIntent(ctx context.Context, session string, in Intent) error
	Snapshot(ctx context.Context, session string) (playback.Snapshot, error)
}

type Server struct {
	hub      *Hub
	intents  IntentHandler
	upgrader websocket.Upgrader
	ctx      context.Context
	log      *zap.Logger
}

// NewServer accepts websocket upgrades from allowedOrigin, or from the
// request's own host when allowedOrigin is empty. ctx bounds the lifetime
// of intents applied by connected clients.
func NewServer(ctx context.Context, hub *Hub, intents IntentHandler, allowedOrigin string, log *zap.Logger) *Server {
	s := &Server{hub: hub, intents: intents, ctx: ctx, log: log}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r, allowedOrigin)
		},
	}
	return s
}

func originAllowed(r *http.Request, allowed string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if allowed != "" {
		return origin == allowed
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// ServeWS upgrades the request and attaches the connection to session.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request, session string) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade", zap.Error(err))
		return
	}

	client := &Client{
		hub:     s.hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		session: session,
		intents: s.intents,
		log:     s.log.With(zap.String("session", session)),
	}
	if !s.hub.add(client) {
		_ = conn.Close()
		return
	}

	if b, err := encodeEvent(EventWelcome, session, map[string]any{
		"now": time.Now().UTC().Format(time.RFC3339Nano),
	}); err == nil {
		s.hub.sendTo(client, b)
	}
	if snap, err := s.intents.Snapshot(r.Context(), session); err == nil {
		if b, err := encodeState(session, snap); err == nil {
			s.hub.sendTo(client, b)
		}
	}

	go client.writePump()
	go client.readPump(s.ctx)
}
