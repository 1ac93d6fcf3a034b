// Package page binds a routed page to its dataset, the session player and
// the navigator, and turns user intents into transitions and navigation.
package page

import (
	"context"
	"strings"

	"musicroom-web/internal/catalog"
	"musicroom-web/internal/media"
	"musicroom-web/internal/route"
)

// Page is one routed view and the dataset it lists.
type Page interface {
	Name() string
	Route() string
	Fetch(ctx context.Context, src catalog.Source) (*catalog.Dataset, error)
}

type Home struct{}

func (Home) Name() string  { return "home" }
func (Home) Route() string { return route.Home() }
func (Home) Fetch(ctx context.Context, src catalog.Source) (*catalog.Dataset, error) {
	return src.Home(ctx)
}

type Library struct{}

func (Library) Name() string  { return "library" }
func (Library) Route() string { return route.Library() }
func (Library) Fetch(ctx context.Context, src catalog.Source) (*catalog.Dataset, error) {
	return src.Library(ctx)
}

type Artist struct {
	ID string
}

func (Artist) Name() string    { return "artist" }
func (a Artist) Route() string { return route.Artist(a.ID) }
func (a Artist) Fetch(ctx context.Context, src catalog.Source) (*catalog.Dataset, error) {
	return src.Artist(ctx, a.ID)
}

// Collection is the playlist or album detail page. Kind is the raw route
// parameter; anything but album or playlist is not found.
type Collection struct {
	Kind string
	ID   string
}

func (Collection) Name() string { return "collection" }

func (c Collection) Route() string {
	return route.Collection(media.Kind(c.Kind), c.ID)
}

func (c Collection) Fetch(ctx context.Context, src catalog.Source) (*catalog.Dataset, error) {
	kind, err := media.ParseKind(c.Kind)
	if err != nil || kind == media.KindArtist {
		return nil, catalog.ErrNotFound
	}
	return src.Collection(ctx, kind, c.ID)
}

type Search struct {
	Query string
}

func (Search) Name() string { return "search" }

func (s Search) Route() string {
	if p := route.Search(s.Query); p != "" {
		return p
	}
	return "/search"
}

func (s Search) Fetch(ctx context.Context, src catalog.Source) (*catalog.Dataset, error) {
	return src.Search(ctx, strings.TrimSpace(s.Query))
}

// View is what a session has loaded for its current page.
// A nil Dataset means the lookup found nothing.
type View struct {
	Route   string
	Dataset *catalog.Dataset
}
