package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"musicroom-web/internal/catalog"
	"musicroom-web/internal/page"
	"musicroom-web/internal/playback"
	"musicroom-web/internal/route"
	"musicroom-web/internal/session"
	"musicroom-web/internal/ui"
)

const pageTimeout = 30 * time.Second

//go:embed templates/*.gohtml
var tplFS embed.FS

// templates holds one parsed set per page: base, partials and the page.
type templates map[string]*template.Template

func parseTemplates() (templates, error) {
	out := make(templates)
	for _, name := range []string{"home", "artist", "library", "collection", "search"} {
		tpl, err := template.ParseFS(tplFS,
			"templates/base.gohtml",
			"templates/partials.gohtml",
			"templates/"+name+".gohtml",
		)
		if err != nil {
			return nil, err
		}
		out[name] = tpl
	}
	return out, nil
}

// pageData is what a page template renders. Every view carries the page
// path so its intent forms can post back to it.
type pageData struct {
	Name     string
	From     string
	Query    string
	Loading  bool
	NotFound bool
	Dataset  *catalog.Dataset
	Sections []sectionView
	Rows     []rowView
	Bar      barView
}

type sectionView struct {
	Title string
	Cards []cardView
}

type cardView struct {
	ui.MediaGridCard
	From string
}

type rowView struct {
	ui.SongRowItem
	From string
}

type barView struct {
	ui.PlaybackBar
	From string
	Live string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, page.Home{})
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, page.Library{})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, page.Search{Query: r.URL.Query().Get("q")})
}

func (s *Server) handleArtist(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, page.Artist{ID: chi.URLParam(r, "id")})
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, page.Collection{Kind: chi.URLParam(r, "kind"), ID: chi.URLParam(r, "id")})
}

func (s *Server) controller(sess *session.Session, p page.Page, nav route.Navigator) *page.Controller {
	return sess.Controller(p, page.Deps{
		Source:    s.deps.Source,
		Navigator: nav,
		Player:    s.player(sess.ID),
		Log:       s.log,
	})
}

// render mounts p for the request's session and renders the view that
// mount fetched, even if another tab of the session mounted since. A
// catalog failure renders the loading state with 503.
func (s *Server) render(w http.ResponseWriter, r *http.Request, p page.Page) {
	ctx := r.Context()
	sess := s.deps.Sessions.FromRequest(w, r)
	ctrl := s.controller(sess, p, &route.RedirectNavigator{})

	status := http.StatusOK
	view, _, err := ctrl.Mount(ctx)
	loading := err != nil
	if loading {
		status = http.StatusServiceUnavailable
	}

	snap, err := ctrl.Snapshot(ctx)
	if err != nil {
		s.log.Error("load snapshot", zap.String("session", sess.ID), zap.Error(err))
		snap = playback.NewSnapshot()
	}

	from := p.Route()
	data := pageData{
		Name:     p.Name(),
		From:     from,
		Loading:  loading,
		NotFound: !loading && view.Dataset == nil,
		Dataset:  view.Dataset,
		Bar:      barView{PlaybackBar: ctrl.Bar(ctx, snap), From: from, Live: s.liveURL()},
	}
	for _, sec := range ctrl.Cards(ctx) {
		sv := sectionView{Title: sec.Title}
		for _, c := range sec.Cards {
			sv.Cards = append(sv.Cards, cardView{MediaGridCard: c, From: from})
		}
		data.Sections = append(data.Sections, sv)
	}
	for _, row := range ctrl.Rows(ctx, snap) {
		data.Rows = append(data.Rows, rowView{SongRowItem: row, From: from})
	}
	if q, ok := p.(page.Search); ok {
		data.Query = strings.TrimSpace(q.Query)
	}
	if data.NotFound {
		status = http.StatusNotFound
	}

	var buf bytes.Buffer
	if err := s.pages[p.Name()].ExecuteTemplate(&buf, "base", data); err != nil {
		s.log.Error("render page", zap.String("page", p.Name()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "template error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) liveURL() string {
	if s.ws == nil {
		return ""
	}
	return "/ws"
}
