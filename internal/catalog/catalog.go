// Package catalog provides the page datasets: the media tiles and track
// rows each page lists, looked up by page and route parameters.
package catalog

import (
	"context"
	"errors"

	"musicroom-web/internal/media"
)

var ErrNotFound = errors.New("catalog: not found")

// Source is the dataset collaborator used by the page controllers.
//
//go:generate mockgen -destination=mocks/source_mock.go -package=mocks musicroom-web/internal/catalog Source
type Source interface {
	Home(ctx context.Context) (*Dataset, error)
	Library(ctx context.Context) (*Dataset, error)
	Search(ctx context.Context, query string) (*Dataset, error)
	Artist(ctx context.Context, id string) (*Dataset, error)
	Collection(ctx context.Context, kind media.Kind, id string) (*Dataset, error)
}

// PlayAction says what a tile's play affordance does on a given section.
type PlayAction int

const (
	PlayNone           PlayAction = iota // no affordance
	PlayTrack                            // play the tile itself
	PlayOpenCollection                   // navigate to the collection
	PlayLogOnly                          // acknowledged, not wired to the player
)

type Section struct {
	Title    string
	Play     PlayAction
	Entities []media.Entity
}

// Dataset is everything one page renders besides the player bar.
type Dataset struct {
	ID          string
	Kind        media.Kind
	Title       string
	Subtitle    string
	Creator     string
	Description string
	ImageURL    string

	Sections    []Section
	TracksTitle string
	Tracks      []media.Track
}

const (
	placeholderArtist   = "Various Artists"
	placeholderDuration = 180
)

// Lookup resolves a play intent against the tracks and the playable tiles.
func (d *Dataset) Lookup(id string) (media.TrackInfo, bool) {
	if d == nil {
		return media.TrackInfo{}, false
	}
	for _, t := range d.Tracks {
		if t.ID == id {
			info, err := t.Info()
			return info, err == nil
		}
	}
	for _, sec := range d.Sections {
		if sec.Play != PlayTrack {
			continue
		}
		for _, e := range sec.Entities {
			if e.ID == id {
				return entityTrack(e), true
			}
		}
	}
	return media.TrackInfo{}, false
}

// Entity finds a tile by id across all sections.
func (d *Dataset) Entity(id string) (media.Entity, PlayAction, bool) {
	if d == nil {
		return media.Entity{}, PlayNone, false
	}
	for _, sec := range d.Sections {
		for _, e := range sec.Entities {
			if e.ID == id {
				return e, sec.Play, true
			}
		}
	}
	return media.Entity{}, PlayNone, false
}

func entityTrack(e media.Entity) media.TrackInfo {
	artist := e.Subtitle
	if artist == "" {
		artist = placeholderArtist
	}
	return media.TrackInfo{
		ID:          e.ID,
		Title:       e.Title,
		Artist:      artist,
		AlbumArtURL: e.ImageURL,
		Duration:    media.Seconds(placeholderDuration),
	}
}
