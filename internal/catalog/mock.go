package catalog

import (
	"context"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"

	"musicroom-web/internal/media"
)

// MockSource serves a Fixture from memory.
type MockSource struct {
	fixture *Fixture
	log     *zap.Logger
}

func NewMockSource(f *Fixture, log *zap.Logger) *MockSource {
	return &MockSource{fixture: f, log: log}
}

func (m *MockSource) Home(ctx context.Context) (*Dataset, error) {
	return m.listing(ListingHome), nil
}

func (m *MockSource) Library(ctx context.Context) (*Dataset, error) {
	return m.listing(ListingLibrary), nil
}

// Search filters the search listing with searchListing.
func (m *MockSource) Search(ctx context.Context, query string) (*Dataset, error) {
	query = strings.TrimSpace(query)
	m.log.Debug("search", zap.String("query", query))
	if query == "" {
		return &Dataset{}, nil
	}
	return dataset(nil, searchListing(m.fixture.Listings[ListingSearch], query)), nil
}

func (m *MockSource) Artist(ctx context.Context, id string) (*Dataset, error) {
	return m.detail(media.KindArtist, id)
}

func (m *MockSource) Collection(ctx context.Context, kind media.Kind, id string) (*Dataset, error) {
	if kind == media.KindArtist {
		return nil, ErrNotFound
	}
	return m.detail(kind, id)
}

func (m *MockSource) listing(key string) *Dataset {
	return dataset(nil, m.fixture.Listings[key])
}

func (m *MockSource) detail(kind media.Kind, id string) (*Dataset, error) {
	m.log.Debug("fetch details", zap.String("kind", string(kind)), zap.String("id", id))
	d, ok := m.fixture.detail(kind, id)
	if !ok {
		return nil, ErrNotFound
	}
	return dataset(&d, m.fixture.Listings[ListingKey(kind, id)]), nil
}

// searchListing keeps the tracks whose title, artist or album and the tiles
// whose title or subtitle fuzzy-match query, case-insensitively. Order is
// preserved and sections left empty are dropped. Every Source filters
// through here so a query answers the same on every backend.
func searchListing(l Listing, query string) Listing {
	out := Listing{TracksTitle: l.TracksTitle}
	for _, t := range l.Tracks {
		if matches(query, t.Title, t.Artist, t.Album) {
			out.Tracks = append(out.Tracks, t)
		}
	}
	for _, sec := range l.Sections {
		filtered := Section{Title: sec.Title, Play: sec.Play}
		for _, e := range sec.Entities {
			if matches(query, e.Title, e.Subtitle) {
				filtered.Entities = append(filtered.Entities, e)
			}
		}
		if len(filtered.Entities) > 0 {
			out.Sections = append(out.Sections, filtered)
		}
	}
	return out
}

func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && fuzzy.MatchFold(query, f) {
			return true
		}
	}
	return false
}
