package page

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"musicroom-web/internal/catalog"
	"musicroom-web/internal/fetch"
	"musicroom-web/internal/media"
	"musicroom-web/internal/playback"
	"musicroom-web/internal/route"
	"musicroom-web/internal/ui"
)

// Deps are the collaborators a controller drives.
type Deps struct {
	Source    catalog.Source
	Navigator route.Navigator
	Player    *playback.Player
	Log       *zap.Logger
}

// Controller wires one page's intents. The loaded view is shared with the
// session so a newer mount supersedes an older one still in flight.
type Controller struct {
	page Page
	deps Deps
	view *fetch.Latest[View]
	log  *zap.Logger

	// own is the view this controller fetched itself, if it mounted.
	own *View
}

func NewController(p Page, deps Deps, view *fetch.Latest[View]) *Controller {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Controller{
		page: p,
		deps: deps,
		view: view,
		log:  deps.Log.With(zap.String("page", p.Name()), zap.String("route", p.Route())),
	}
}

func (c *Controller) Page() Page { return c.page }

// Mount fetches the page dataset under a fresh token and returns it. Not
// found is a state, not an error. committed is false when a newer mount of
// the session won; the returned view still belongs to this controller, it
// just does not replace the session's view.
func (c *Controller) Mount(ctx context.Context) (v View, committed bool, err error) {
	v, committed, err = fetch.Load(ctx, c.view, func(ctx context.Context) (View, error) {
		ds, err := c.page.Fetch(ctx, c.deps.Source)
		if errors.Is(err, catalog.ErrNotFound) {
			c.log.Info("dataset not found")
			return View{Route: c.page.Route()}, nil
		}
		if err != nil {
			return View{}, err
		}
		return View{Route: c.page.Route(), Dataset: ds}, nil
	})
	if err != nil {
		c.log.Error("fetch dataset", zap.Error(err))
		return View{}, false, err
	}
	if !committed {
		c.log.Debug("stale dataset kept for this request only")
	}
	c.own = &v
	return v, committed, nil
}

// loaded is the view this page reads: its own mount when it has one,
// otherwise the session's view if that belongs to this page.
func (c *Controller) loaded() (View, bool) {
	if c.own != nil {
		return *c.own, true
	}
	v, ok := c.view.Get()
	if !ok || v.Route != c.page.Route() {
		return View{}, false
	}
	return v, true
}

// Mounted reports whether a view for this page is loaded.
func (c *Controller) Mounted() bool {
	_, ok := c.loaded()
	return ok
}

// Dataset returns this page's loaded dataset, nil while loading or when
// not found.
func (c *Controller) Dataset() *catalog.Dataset {
	v, _ := c.loaded()
	return v.Dataset
}

func (c *Controller) NotFound() bool {
	return c.Mounted() && c.Dataset() == nil
}

func (c *Controller) Loading() bool { return !c.Mounted() }

func (c *Controller) Snapshot(ctx context.Context) (playback.Snapshot, error) {
	return c.deps.Player.Snapshot(ctx)
}

// Play resolves trackID against the loaded dataset. An unknown id leaves
// the snapshot untouched.
func (c *Controller) Play(ctx context.Context, trackID string) (playback.Snapshot, error) {
	info, ok := c.Dataset().Lookup(trackID)
	if !ok {
		c.log.Debug("play ignored: unknown track", zap.String("track", trackID))
		return c.Snapshot(ctx)
	}
	return c.deps.Player.Play(ctx, info)
}

// PlayMedia handles a card's play affordance according to its section.
func (c *Controller) PlayMedia(ctx context.Context, id string) (playback.Snapshot, error) {
	e, action, ok := c.Dataset().Entity(id)
	if !ok {
		c.log.Debug("play media ignored: unknown tile", zap.String("id", id))
		return c.Snapshot(ctx)
	}
	switch action {
	case catalog.PlayTrack:
		return c.Play(ctx, id)
	case catalog.PlayOpenCollection:
		c.deps.Navigator.GoTo(route.Collection(e.Kind(), e.ID))
	case catalog.PlayLogOnly:
		c.log.Info("play media", zap.String("kind", e.Kind().String()), zap.String("id", e.ID))
	default:
		c.log.Debug("play media ignored: no affordance", zap.String("id", id))
	}
	return c.Snapshot(ctx)
}

// PlayFirst plays the first listed track.
func (c *Controller) PlayFirst(ctx context.Context) (playback.Snapshot, error) {
	ds := c.Dataset()
	if ds == nil || len(ds.Tracks) == 0 {
		return c.Snapshot(ctx)
	}
	return c.Play(ctx, ds.Tracks[0].ID)
}

func (c *Controller) TogglePlayPause(ctx context.Context) (playback.Snapshot, error) {
	return c.deps.Player.TogglePlayPause(ctx)
}

func (c *Controller) Seek(ctx context.Context, percent float64) (playback.Snapshot, error) {
	return c.deps.Player.Seek(ctx, percent)
}

func (c *Controller) SetVolume(ctx context.Context, percent float64) (playback.Snapshot, error) {
	return c.deps.Player.SetVolume(ctx, percent)
}

func (c *Controller) SkipNext(ctx context.Context) (playback.Snapshot, error) {
	return c.deps.Player.SkipNext(ctx)
}

func (c *Controller) SkipPrevious(ctx context.Context) (playback.Snapshot, error) {
	return c.deps.Player.SkipPrevious(ctx)
}

// View navigates to the entity's detail page.
func (c *Controller) View(id string, kind media.Kind) {
	c.log.Debug("view", zap.String("kind", kind.String()), zap.String("id", id))
	c.deps.Navigator.GoTo(route.ForEntity(id, kind))
}

// Search navigates to the results for term; a blank term does nothing.
func (c *Controller) Search(term string) {
	p := route.Search(term)
	if p == "" {
		return
	}
	c.deps.Navigator.GoTo(p)
}

func (c *Controller) Like(trackID string) {
	c.trackIntent("like", trackID)
}

func (c *Controller) Options(trackID string) {
	c.trackIntent("options", trackID)
}

func (c *Controller) trackIntent(intent, trackID string) {
	fields := []zap.Field{zap.String("track", trackID)}
	for _, t := range c.tracks() {
		if t.ID == trackID {
			fields = append(fields, zap.String("title", t.Title), zap.Bool("liked", t.Liked))
		}
	}
	c.log.Info(intent, fields...)
}

func (c *Controller) tracks() []media.Track {
	if ds := c.Dataset(); ds != nil {
		return ds.Tracks
	}
	return nil
}

// CardSection is one titled grid of cards.
type CardSection struct {
	Title string
	Cards []ui.MediaGridCard
}

// Cards builds the grid cards; only sections with a play action get the
// play affordance.
func (c *Controller) Cards(ctx context.Context) []CardSection {
	ds := c.Dataset()
	if ds == nil {
		return nil
	}
	out := make([]CardSection, 0, len(ds.Sections))
	for _, sec := range ds.Sections {
		cs := CardSection{Title: sec.Title}
		for _, e := range sec.Entities {
			card := ui.MediaGridCard{Entity: e, OnView: c.View}
			if sec.Play != catalog.PlayNone {
				card.OnPlay = func(id string) { c.logErr("play media", c.discard(c.PlayMedia(ctx, id))) }
			}
			cs.Cards = append(cs.Cards, card)
		}
		out = append(out, cs)
	}
	return out
}

// Rows builds the song rows for the listed tracks against snap.
func (c *Controller) Rows(ctx context.Context, snap playback.Snapshot) []ui.SongRowItem {
	tracks := c.tracks()
	rows := make([]ui.SongRowItem, 0, len(tracks))
	_, library := c.page.(Library)
	for i, t := range tracks {
		id := t.ID
		current := snap.State.IsCurrent(id)
		row := ui.SongRowItem{
			TrackID:     id,
			TrackNumber: i + 1,
			Title:       t.Title,
			Artist:      t.Artist,
			Album:       t.Album,
			Duration:    t.Duration,
			IsCurrent:   current,
			IsPlaying:   current && snap.State.Playing(),
			IsLiked:     t.Liked,
			OnPlay:      func() { c.logErr("play", c.discard(c.Play(ctx, id))) },
			OnLike:      func() { c.Like(id) },
		}
		if library {
			row.OnOptions = func() { c.Options(id) }
		}
		rows = append(rows, row)
	}
	return rows
}

// Bar builds the player bar for snap.
func (c *Controller) Bar(ctx context.Context, snap playback.Snapshot) ui.PlaybackBar {
	return ui.PlaybackBar{
		Snapshot:       snap,
		OnPlayPause:    func() { c.logErr("toggle", c.discard(c.TogglePlayPause(ctx))) },
		OnSkipNext:     func() { c.logErr("next", c.discard(c.SkipNext(ctx))) },
		OnSkipPrevious: func() { c.logErr("previous", c.discard(c.SkipPrevious(ctx))) },
		OnSeek:         func(p float64) { c.logErr("seek", c.discard(c.Seek(ctx, p))) },
		OnVolumeChange: func(p float64) { c.logErr("volume", c.discard(c.SetVolume(ctx, p))) },
	}
}

func (c *Controller) discard(_ playback.Snapshot, err error) error { return err }

func (c *Controller) logErr(intent string, err error) {
	if err != nil {
		c.log.Error(intent, zap.Error(err))
	}
}
