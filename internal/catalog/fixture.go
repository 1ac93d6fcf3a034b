package catalog

import (
	"fmt"

	"github.com/pkg/errors"

	"musicroom-web/internal/media"
)

// Detail is the heading record of an artist, album or playlist page.
type Detail struct {
	Entity      media.Entity
	Description string
	Creator     string
}

// Listing is the tiles and rows attached to one page key.
type Listing struct {
	Sections    []Section
	TracksTitle string
	Tracks      []media.Track
}

// IDs lists the tile ids then the track ids of the listing.
func (l Listing) IDs() []string {
	var ids []string
	for _, sec := range l.Sections {
		for _, e := range sec.Entities {
			ids = append(ids, e.ID)
		}
	}
	for _, t := range l.Tracks {
		ids = append(ids, t.ID)
	}
	return ids
}

// Validate reports media.ErrDuplicateID when an id appears twice in the
// listing; a play intent must resolve to one item.
func (l Listing) Validate() error {
	return media.UniqueIDs(l.IDs()...)
}

// Fixture is a complete in-memory catalog.
type Fixture struct {
	Details  []Detail
	Listings map[string]Listing
}

const (
	ListingHome    = "home"
	ListingLibrary = "library"
	ListingSearch  = "search"
)

// ListingKey names the listing attached to a detail page.
func ListingKey(kind media.Kind, id string) string {
	return string(kind) + ":" + id
}

// Validate checks every listing of the fixture.
func (f *Fixture) Validate() error {
	for key, l := range f.Listings {
		if err := l.Validate(); err != nil {
			return errors.Wrapf(err, "listing %s", key)
		}
	}
	return nil
}

func (f *Fixture) detail(kind media.Kind, id string) (Detail, bool) {
	for _, d := range f.Details {
		if d.Entity.Kind() == kind && d.Entity.ID == id {
			return d, true
		}
	}
	return Detail{}, false
}

func unsplash(size, tags string, sig any) string {
	return fmt.Sprintf("https://source.unsplash.com/random/%s?%s&sig=%v", size, tags, sig)
}

func tile(id string, kind media.Kind, title, subtitle, image string) media.Entity {
	return media.MustEntity(id, kind, title, subtitle, image)
}

// placeholder track length in seconds used when playing a listed row
const rowDuration = 200

func row(id, title, artist, album, duration string, liked bool, art string) media.Track {
	return media.Track{
		ID:              id,
		Title:           title,
		Artist:          artist,
		Album:           album,
		Duration:        duration,
		Liked:           liked,
		ArtURL:          art,
		DurationSeconds: media.Seconds(rowDuration),
	}
}

// DefaultFixture is the demo catalog the pages ship with.
func DefaultFixture() *Fixture {
	f := &Fixture{Listings: make(map[string]Listing)}

	f.Listings[ListingHome] = Listing{
		Sections: []Section{
			{Title: "Featured Albums", Play: PlayTrack, Entities: []media.Entity{
				tile("album1", media.KindAlbum, "Sunset Vibes", "Chill Beats", unsplash("400x400", "music,album", 1)),
				tile("album2", media.KindAlbum, "Indie Dreams", "Acoustic Sessions", unsplash("400x400", "music,concert", 4)),
			}},
			{Title: "Popular Playlists", Play: PlayTrack, Entities: []media.Entity{
				tile("playlist1", media.KindPlaylist, "Workout Hits", "High Energy Mix", unsplash("400x400", "music,playlist", 2)),
				tile("playlist2", media.KindPlaylist, "Focus Flow", "Instrumental Concentration", unsplash("400x400", "music,party", 5)),
			}},
			{Title: "Top Artists", Play: PlayNone, Entities: []media.Entity{
				tile("artist1", media.KindArtist, "DJ Groove", "Electronic Mastermind", unsplash("400x400", "music,artist", 3)),
			}},
		},
	}

	f.Listings[ListingLibrary] = Listing{
		Sections: []Section{
			{Title: "Playlists", Play: PlayLogOnly, Entities: []media.Entity{
				tile("pl1", media.KindPlaylist, "Late Night Coding", "Focus Beats", unsplash("400x400", "music,sad", 10)),
				tile("pl2", media.KindPlaylist, "Road Trip Anthems", "Singalongs", unsplash("400x400", "music,roadtrip", 11)),
			}},
			{Title: "Artists", Play: PlayNone, Entities: []media.Entity{
				tile("artist3", media.KindArtist, "Beat Crafter", "Lo-fi Producer", unsplash("400x400", "person,dj", 12)),
			}},
			{Title: "Albums", Play: PlayLogOnly, Entities: []media.Entity{
				tile("album5", media.KindAlbum, "Classical Moods", "Piano Sonatas", unsplash("400x400", "music,classical", 13)),
			}},
		},
		TracksTitle: "Liked Songs",
		Tracks: []media.Track{
			row("song4", "Starlight Serenade", "Cosmic Voyager", "Galaxies", "5:02", true, unsplash("100x100", "music", "song4")),
			row("song5", "Ocean Depths", "Aqua Marine", "Blue World", "3:30", true, unsplash("100x100", "music", "song5")),
		},
	}

	f.Listings[ListingSearch] = Listing{
		Sections: []Section{
			{Title: "Albums", Play: PlayLogOnly, Entities: []media.Entity{
				tile("album3", media.KindAlbum, "Abstract Grooves", "Experimental Beats", unsplash("400x400", "music,abstract", 6)),
				tile("album4", media.KindAlbum, "City Lights", "Urban Anthems", unsplash("400x400", "music,urban", 7)),
			}},
			{Title: "Artists", Play: PlayNone, Entities: []media.Entity{
				tile("artist2", media.KindArtist, "Melody Maker", "Pop Sensation", unsplash("400x400", "person,musician", 8)),
			}},
			{Title: "Playlists", Play: PlayLogOnly, Entities: []media.Entity{
				tile("playlist3", media.KindPlaylist, "Chill Vibes", "Relax and Unwind", unsplash("400x400", "music,mood", 9)),
			}},
		},
		TracksTitle: "Songs",
		Tracks: []media.Track{
			row("song1", "Echoes in Time", "The Timeless", "Chronicles", "3:45", false, unsplash("100x100", "music,song", "song1")),
			row("song2", "Neon Dreams", "Synthwave Rider", "Night Drive", "4:12", true, unsplash("100x100", "music,song", "song2")),
			row("song3", "Lost in the Woods", "Forest Spirit", "Nature's Call", "2:58", false, unsplash("100x100", "music,song", "song3")),
		},
	}

	const bio = "A passionate musician exploring various genres and sounds. Known for electrifying performances " +
		"and unique compositions that captivate audiences worldwide. This artist has released several " +
		"critically acclaimed albums and continues to push musical boundaries."

	for _, a := range []struct{ id, name string }{
		{"artist1", "DJ Groove"},
		{"artist2", "Melody Maker"},
		{"artist3", "Beat Crafter"},
	} {
		image := unsplash("400x400", "person,musician", a.id)
		f.Details = append(f.Details, Detail{
			Entity:      tile(a.id, media.KindArtist, a.name, "", image),
			Description: bio,
		})
		f.Listings[ListingKey(media.KindArtist, a.id)] = Listing{
			Sections: []Section{
				{Title: "Albums", Play: PlayOpenCollection, Entities: []media.Entity{
					tile("album10", media.KindAlbum, "Nightscapes", "Full Album", unsplash("400x400", "music,electronic", a.id+"1")),
					tile("album11", media.KindAlbum, "Daybreak", "Acoustic Collection", unsplash("400x400", "music,acoustic", a.id+"2")),
				}},
			},
			TracksTitle: "Top Tracks",
			Tracks: []media.Track{
				row("track301", "Rhythm of the Night", a.name, "Nightscapes", "3:55", false, image),
				row("track302", "Morning Dew", a.name, "Daybreak", "4:20", false, image),
				row("track303", "Synthony", a.name, "Nightscapes", "3:10", true, image),
			},
		}
	}

	pl1Cover := unsplash("400x400", "music,coding", 20)
	f.Details = append(f.Details, Detail{
		Entity:      tile("pl1", media.KindPlaylist, "Late Night Coding", "", pl1Cover),
		Creator:     "You",
		Description: "Deep focus electronic and lo-fi music for late night coding sessions. Updated weekly.",
	})
	f.Listings[ListingKey(media.KindPlaylist, "pl1")] = Listing{
		Tracks: []media.Track{
			row("track101", "Binary Sunset", "Code Weaver", "", "4:15", false, pl1Cover),
			row("track102", "Algorithm Blues", "Syntax Sisters", "", "3:30", false, pl1Cover),
			row("track103", "Kernel Panic Dreams", "Debug Entity", "", "5:01", false, pl1Cover),
		},
	}

	album1Cover := unsplash("400x400", "music,sunset", 21)
	f.Details = append(f.Details, Detail{
		Entity:      tile("album1", media.KindAlbum, "Sunset Vibes", "Chill Beats", album1Cover),
		Description: "An album full of relaxing beats to unwind to.",
	})
	f.Listings[ListingKey(media.KindAlbum, "album1")] = Listing{
		Tracks: []media.Track{
			row("track201", "Golden Hour", "Chill Beats", "Sunset Vibes", "3:50", false, album1Cover),
			row("track202", "Crimson Sky", "Chill Beats", "Sunset Vibes", "4:20", false, album1Cover),
			row("track203", "Twilight Haze", "Chill Beats", "Sunset Vibes", "3:10", false, album1Cover),
		},
	}

	return f
}

// dataset assembles a page dataset from an optional detail and a listing.
func dataset(d *Detail, l Listing) *Dataset {
	ds := &Dataset{
		Sections:    l.Sections,
		TracksTitle: l.TracksTitle,
		Tracks:      l.Tracks,
	}
	if d != nil {
		ds.ID = d.Entity.ID
		ds.Kind = d.Entity.Kind()
		ds.Title = d.Entity.Title
		ds.Subtitle = d.Entity.Subtitle
		ds.ImageURL = d.Entity.ImageURL
		ds.Description = d.Description
		ds.Creator = d.Creator
	}
	return ds
}
