package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"musicroom-web/internal/catalog"
	"musicroom-web/internal/catalog/mocks"
	"musicroom-web/internal/playback"
	"musicroom-web/internal/realtime"
	"musicroom-web/internal/session"
)

type testApp struct {
	srv     *Server
	handler http.Handler
	cookie  *http.Cookie
}

func newTestApp(t *testing.T, live bool) *testApp {
	t.Helper()
	return newTestAppWith(t, live, nil)
}

// newTestAppWith serves src, or the demo fixture when src is nil.
func newTestAppWith(t *testing.T, live bool, src catalog.Source) *testApp {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zap.NewNop()
	if src == nil {
		src = catalog.NewMockSource(catalog.DefaultFixture(), log)
	}
	d := Deps{
		Sessions: session.NewManager(time.Hour, false, log),
		Store:    playback.NewMemoryStore(),
		Source:   src,
		Log:      log,
	}
	if live {
		d.Hub = realtime.NewHub(log)
		d.Publisher = realtime.NewHubPublisher(d.Hub, log)
		go d.Hub.Run(ctx)
	}
	srv, err := NewServer(ctx, d)
	require.NoError(t, err)
	return &testApp{srv: srv, handler: srv.Router(srv.Middlewares()...)}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			a.cookie = c
		}
	}
	return w
}

func (a *testApp) get(t *testing.T, target string) *httptest.ResponseRecorder {
	return a.do(t, http.MethodGet, target, nil, nil)
}

func (a *testApp) post(t *testing.T, intent string, form url.Values) *httptest.ResponseRecorder {
	return a.do(t, http.MethodPost, "/intents/"+intent, form, nil)
}

func (a *testApp) player(t *testing.T) map[string]any {
	t.Helper()
	w := a.get(t, "/player")
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, false)
	w := app.get(t, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestPages(t *testing.T) {
	app := newTestApp(t, false)

	tests := []struct {
		path   string
		status int
		want   []string
	}{
		{"/", http.StatusOK, []string{"Featured Albums", "Sunset Vibes", "Top Artists", "Nothing playing"}},
		{"/library", http.StatusOK, []string{"Liked Songs", "Starlight Serenade", "More options"}},
		{"/artist/artist1", http.StatusOK, []string{"DJ Groove", "Play Top Tracks", "Rhythm of the Night", "Nightscapes"}},
		{"/collection/playlist/pl1", http.StatusOK, []string{"Late Night Coding", "By You", "Binary Sunset", "Play All"}},
		{"/collection/album/album1", http.StatusOK, []string{"Golden Hour", "Chill Beats"}},
		{"/search?q=neon", http.StatusOK, []string{"Neon Dreams", "Synthwave Rider"}},
		{"/search", http.StatusOK, []string{"Search for songs, artists, albums and playlists."}},
		{"/search?q=zzzz", http.StatusOK, []string{"No results found"}},
		{"/artist/artist9", http.StatusNotFound, []string{"find that artist"}},
		{"/collection/album/album2", http.StatusNotFound, []string{"find that collection"}},
		{"/collection/podcast/x", http.StatusNotFound, []string{"find that collection"}},
		{"/collection/artist/artist1", http.StatusNotFound, []string{"find that collection"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := app.get(t, tt.path)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			for _, s := range tt.want {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

// slowLibrary holds Library until released.
type slowLibrary struct {
	catalog.Source
	started chan struct{}
	release chan struct{}
}

func (s *slowLibrary) Library(ctx context.Context) (*catalog.Dataset, error) {
	close(s.started)
	<-s.release
	return s.Source.Library(ctx)
}

func TestOverlappingMountsKeepTheirPages(t *testing.T) {
	src := &slowLibrary{
		Source:  catalog.NewMockSource(catalog.DefaultFixture(), zap.NewNop()),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	app := newTestAppWith(t, false, src)
	require.Equal(t, http.StatusOK, app.get(t, "/").Code)
	cookie := app.cookie
	require.NotNil(t, cookie)

	libDone := make(chan *httptest.ResponseRecorder)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/library", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		app.handler.ServeHTTP(w, req)
		libDone <- w
	}()
	<-src.started

	// another tab of the same session mounts home while library is in flight
	home := app.get(t, "/")
	require.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Featured Albums")

	close(src.release)
	lib := <-libDone
	assert.Equal(t, http.StatusOK, lib.Code)
	body := lib.Body.String()
	assert.Contains(t, body, "Liked Songs")
	assert.Contains(t, body, "Starlight Serenade")
	assert.NotContains(t, body, "Loading")
}

func TestSessionCookieIssued(t *testing.T) {
	app := newTestApp(t, false)
	app.get(t, "/")
	require.NotNil(t, app.cookie)
	assert.True(t, app.cookie.HttpOnly)
	id := app.cookie.Value

	// every request slides the cookie's lifetime without changing the id
	w := app.get(t, "/library")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, id, cookies[0].Value)
	assert.Equal(t, int(time.Hour.Seconds()), cookies[0].MaxAge)
}

func TestPlayFromHomeCard(t *testing.T) {
	app := newTestApp(t, false)
	app.get(t, "/")

	w := app.post(t, "play-media", url.Values{"from": {"/"}, "id": {"album1"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	state := app.player(t)
	track, ok := state["currentTrack"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "album1", track["id"])
	assert.Equal(t, true, state["isPlaying"])
	assert.Equal(t, 0.0, state["progressPercent"])

	// the snapshot follows the session to other pages
	body := app.get(t, "/search?q=neon").Body.String()
	assert.Contains(t, body, "Sunset Vibes")
	assert.NotContains(t, body, "Nothing playing")
}

func TestPlayRowMarksCurrent(t *testing.T) {
	app := newTestApp(t, false)
	from := "/collection/album/album1"
	app.get(t, from)

	w := app.post(t, "play", url.Values{"from": {from}, "id": {"track201"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, from, w.Header().Get("Location"))

	body := app.get(t, from).Body.String()
	assert.Contains(t, body, `class="row current"`)
	assert.Contains(t, body, "Pause Golden Hour")

	app.post(t, "toggle", url.Values{"from": {from}})
	body = app.get(t, from).Body.String()
	assert.Contains(t, body, "Play Golden Hour")
	assert.Contains(t, body, `aria-label="Play"`)
}

func TestPlayUnknownIsNoop(t *testing.T) {
	app := newTestApp(t, false)
	app.post(t, "play-first", url.Values{"from": {"/library"}})
	before := app.player(t)

	w := app.post(t, "play", url.Values{"from": {"/library"}, "id": {"missing"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, before, app.player(t))
}

func TestViewIntent(t *testing.T) {
	app := newTestApp(t, false)

	w := app.post(t, "view", url.Values{"from": {"/"}, "id": {"artist1"}, "kind": {"artist"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/artist/artist1", w.Header().Get("Location"))

	w = app.post(t, "view", url.Values{"from": {"/"}, "id": {"album1"}, "kind": {"album"}})
	assert.Equal(t, "/collection/album/album1", w.Header().Get("Location"))

	w = app.post(t, "view", url.Values{"from": {"/"}, "id": {"x"}, "kind": {"podcast"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeekAndVolume(t *testing.T) {
	app := newTestApp(t, false)
	app.post(t, "play-media", url.Values{"from": {"/"}, "id": {"album2"}})

	app.post(t, "seek", url.Values{"from": {"/"}, "percent": {"150"}})
	app.post(t, "volume", url.Values{"from": {"/"}, "percent": {"-10"}})
	state := app.player(t)
	assert.Equal(t, 100.0, state["progressPercent"])
	assert.Equal(t, 0.0, state["volumePercent"])

	w := app.post(t, "seek", url.Values{"from": {"/"}, "percent": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchIntent(t *testing.T) {
	app := newTestApp(t, false)

	w := app.post(t, "search", url.Values{"from": {"/"}, "term": {" neon dreams "}})
	assert.Equal(t, "/search?q=neon+dreams", w.Header().Get("Location"))

	w = app.post(t, "search", url.Values{"from": {"/library"}, "term": {"   "}})
	assert.Equal(t, "/library", w.Header().Get("Location"))
}

func TestIntentJSON(t *testing.T) {
	app := newTestApp(t, false)
	w := app.do(t, http.MethodPost, "/intents/play-media",
		url.Values{"from": {"/artist/artist1"}, "id": {"album10"}},
		http.Header{"Accept": {"application/json"}})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Player   map[string]any `json:"player"`
		Navigate string         `json:"navigate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "/collection/album/album10", res.Navigate)
	assert.Nil(t, res.Player["currentTrack"])
}

func TestIntentEdgeCases(t *testing.T) {
	app := newTestApp(t, false)

	w := app.post(t, "shuffle", url.Values{"from": {"/"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.post(t, "toggle", url.Values{"from": {"https://evil.com/"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Nil(t, app.player(t)["currentTrack"])

	for _, intent := range []string{"like", "options", "next", "previous"} {
		w = app.post(t, intent, url.Values{"from": {"/library"}, "id": {"song4"}})
		assert.Equal(t, http.StatusSeeOther, w.Code, intent)
	}
}

func TestStatic(t *testing.T) {
	app := newTestApp(t, false)

	w := app.get(t, "/static/placeholder.svg")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))

	w = app.get(t, "/static/player.js")
	assert.Equal(t, "application/javascript", w.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, app.get(t, "/static/missing.css").Code)
}

func TestWSDisabled(t *testing.T) {
	app := newTestApp(t, false)
	assert.Equal(t, http.StatusNotFound, app.get(t, "/ws").Code)
}

func readEvent(t *testing.T, ws *websocket.Conn) realtime.Event {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev realtime.Event
	require.NoError(t, ws.ReadJSON(&ev))
	return ev
}

func TestLiveChannel(t *testing.T) {
	app := newTestApp(t, true)
	app.get(t, "/")
	require.NotNil(t, app.cookie)

	server := httptest.NewServer(app.handler)
	defer server.Close()

	header := http.Header{}
	header.Set("Cookie", session.CookieName+"="+app.cookie.Value)
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", header)
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, realtime.EventWelcome, readEvent(t, ws).Type)
	assert.Equal(t, realtime.EventStateChanged, readEvent(t, ws).Type)

	require.NoError(t, ws.WriteJSON(realtime.Intent{Type: realtime.IntentPlay, TrackID: "album1", Page: "/"}))
	ev := readEvent(t, ws)
	require.Equal(t, realtime.EventStateChanged, ev.Type)
	var snap playback.Snapshot
	require.NoError(t, json.Unmarshal(ev.Payload, &snap))
	assert.True(t, snap.State.IsCurrent("album1"))

	for _, p := range []float64{20, 21, 22} {
		require.NoError(t, ws.WriteJSON(realtime.Intent{Type: realtime.IntentSeek, Percent: p, Page: "/"}))
	}
	for _, want := range []float64{20, 21, 22} {
		ev = readEvent(t, ws)
		require.NoError(t, json.Unmarshal(ev.Payload, &snap))
		assert.Equal(t, want, snap.Progress)
	}

	// form intents from another tab reach the live channel too
	app.post(t, "toggle", url.Values{"from": {"/"}})
	ev = readEvent(t, ws)
	require.NoError(t, json.Unmarshal(ev.Payload, &snap))
	assert.False(t, snap.State.Playing())

	require.NoError(t, ws.WriteJSON(realtime.Intent{Type: "shuffle"}))
	assert.Equal(t, realtime.EventError, readEvent(t, ws).Type)
}

func TestUnknownIntentSkipsCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl) // any catalog call fails the test
	app := newTestAppWith(t, false, src)

	w := app.post(t, "bogus", url.Values{"from": {"/library"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	err := app.srv.HandleIntent(context.Background(), "sess-1", realtime.Intent{Type: "bogus", Page: "/library"})
	assert.ErrorIs(t, err, errUnknownIntent)

	// form-only intents are not accepted live either
	err = app.srv.HandleIntent(context.Background(), "sess-1", realtime.Intent{Type: "view", Page: "/library"})
	assert.ErrorIs(t, err, errUnknownIntent)
}
