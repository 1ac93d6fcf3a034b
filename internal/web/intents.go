package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"musicroom-web/internal/media"
	"musicroom-web/internal/page"
	"musicroom-web/internal/playback"
	"musicroom-web/internal/realtime"
	"musicroom-web/internal/route"
	"musicroom-web/internal/session"
)

var (
	errUnknownIntent = errors.New("unknown intent")
	errBadValue      = errors.New("bad value")
)

// intentResponse answers intents posted with Accept: application/json.
type intentResponse struct {
	Player   playback.Snapshot `json:"player"`
	Navigate string            `json:"navigate,omitempty"`
}

// handleIntent applies a form intent and redirects to wherever the intent
// navigated, or back to the page it came from.
func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	ctx := r.Context()
	sess := s.deps.Sessions.FromRequest(w, r)

	from, ok := page.Parse(r.PostForm.Get("from"))
	if !ok {
		from = page.Home{}
	}
	intent := chi.URLParam(r, "intent")
	if !formIntents[intent] {
		writeError(w, http.StatusNotFound, errUnknownIntent.Error())
		return
	}
	nav := &route.RedirectNavigator{}
	ctrl, err := s.mounted(ctx, sess, from, nav)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	snap, err := s.apply(ctx, ctrl, intent, r.PostForm.Get)
	switch {
	case errors.Is(err, errUnknownIntent):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, errBadValue):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, "playback state unavailable")
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, intentResponse{Player: snap, Navigate: nav.Target()})
		return
	}
	target := nav.Target()
	if target == "" {
		target = from.Route()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// mounted returns a controller whose dataset is loaded, mounting only when
// the session's view belongs to another page.
func (s *Server) mounted(ctx context.Context, sess *session.Session, p page.Page, nav route.Navigator) (*page.Controller, error) {
	ctrl := s.controller(sess, p, nav)
	if ctrl.Mounted() {
		return ctrl, nil
	}
	_, _, err := ctrl.Mount(ctx)
	return ctrl, err
}

// apply runs one named intent. get reads the intent's parameters.
func (s *Server) apply(ctx context.Context, c *page.Controller, intent string, get func(string) string) (playback.Snapshot, error) {
	switch intent {
	case "play":
		return c.Play(ctx, get("id"))
	case "play-media":
		return c.PlayMedia(ctx, get("id"))
	case "play-first":
		return c.PlayFirst(ctx)
	case "toggle":
		return c.TogglePlayPause(ctx)
	case "seek", "volume":
		p, err := strconv.ParseFloat(get("percent"), 64)
		if err != nil {
			return playback.Snapshot{}, errors.Wrap(errBadValue, "percent")
		}
		if intent == "seek" {
			return c.Seek(ctx, p)
		}
		return c.SetVolume(ctx, p)
	case "next":
		return c.SkipNext(ctx)
	case "previous":
		return c.SkipPrevious(ctx)
	case "view":
		kind, err := media.ParseKind(get("kind"))
		if err != nil {
			return playback.Snapshot{}, errors.Wrap(errBadValue, "kind")
		}
		c.View(get("id"), kind)
	case "search":
		c.Search(get("term"))
	case "like":
		c.Like(get("id"))
	case "options":
		c.Options(get("id"))
	default:
		return playback.Snapshot{}, errUnknownIntent
	}
	return c.Snapshot(ctx)
}

// formIntents are the intents apply knows; the live channel accepts a subset.
var formIntents = map[string]bool{
	"play": true, "play-media": true, "play-first": true, "toggle": true,
	"seek": true, "volume": true, "next": true, "previous": true,
	"view": true, "search": true, "like": true, "options": true,
}

var liveIntents = map[string]bool{
	realtime.IntentPlay:     true,
	realtime.IntentToggle:   true,
	realtime.IntentSeek:     true,
	realtime.IntentVolume:   true,
	realtime.IntentNext:     true,
	realtime.IntentPrevious: true,
	realtime.IntentLike:     true,
}

// HandleIntent applies an intent received over the live channel.
func (s *Server) HandleIntent(ctx context.Context, sessionID string, in realtime.Intent) error {
	if !liveIntents[in.Type] {
		s.log.Debug("unknown live intent", zap.String("type", in.Type))
		return errUnknownIntent
	}

	from, ok := page.Parse(in.Page)
	if !ok {
		from = page.Home{}
	}
	sess := s.deps.Sessions.Get(sessionID)
	ctrl, err := s.mounted(ctx, sess, from, &route.RedirectNavigator{})
	if err != nil {
		return err
	}

	percent := strconv.FormatFloat(in.Percent, 'f', -1, 64)
	_, err = s.apply(ctx, ctrl, in.Type, func(k string) string {
		switch k {
		case "id":
			return in.TrackID
		case "percent":
			return percent
		}
		return ""
	})
	return err
}

func (s *Server) Snapshot(ctx context.Context, sessionID string) (playback.Snapshot, error) {
	return s.player(sessionID).Snapshot(ctx)
}
