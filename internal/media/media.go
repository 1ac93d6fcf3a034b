package media

import (
	"errors"
	"math"
)

// Kind discriminates the media entities shown as grid tiles.
type Kind string

const (
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
	KindArtist   Kind = "artist"
)

var (
	ErrInvalidKind     = errors.New("media: invalid kind")
	ErrInvalidDuration = errors.New("media: duration must be a non-negative finite number")
	ErrDuplicateID     = errors.New("media: duplicate id in listing")
)

// ParseKind accepts only album, playlist and artist.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindAlbum, KindPlaylist, KindArtist:
		return k, nil
	}
	return "", ErrInvalidKind
}

func (k Kind) String() string { return string(k) }

// Entity is one album, playlist or artist tile.
// The kind is fixed at construction time.
type Entity struct {
	ID       string
	ImageURL string
	Title    string
	Subtitle string

	kind Kind
}

func NewEntity(id string, kind Kind, title, subtitle, imageURL string) (Entity, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Entity{}, err
	}
	return Entity{
		ID:       id,
		ImageURL: imageURL,
		Title:    title,
		Subtitle: subtitle,
		kind:     kind,
	}, nil
}

// MustEntity is NewEntity for literals known to be valid.
func MustEntity(id string, kind Kind, title, subtitle, imageURL string) Entity {
	e, err := NewEntity(id, kind, title, subtitle, imageURL)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Entity) Kind() Kind { return e.kind }

// TrackInfo is the "now playing" projection of a track.
type TrackInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	AlbumArtURL string   `json:"albumArtUrl,omitempty"`
	Duration    *float64 `json:"duration,omitempty"` // seconds
}

func NewTrackInfo(id, title, artist, artURL string, duration *float64) (TrackInfo, error) {
	if duration != nil && !validDuration(*duration) {
		return TrackInfo{}, ErrInvalidDuration
	}
	return TrackInfo{
		ID:          id,
		Title:       title,
		Artist:      artist,
		AlbumArtURL: artURL,
		Duration:    duration,
	}, nil
}

// DurationSeconds returns 0 when the duration is unknown.
func (t TrackInfo) DurationSeconds() float64 {
	if t.Duration == nil {
		return 0
	}
	return *t.Duration
}

func validDuration(d float64) bool {
	return d >= 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

// Seconds is a helper for optional duration literals.
func Seconds(s float64) *float64 { return &s }
