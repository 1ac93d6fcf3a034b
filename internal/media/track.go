package media

// Track is one song row in a listing. Duration is already formatted
// for display; DurationSeconds feeds the player bar when known.
type Track struct {
	ID              string
	Title           string
	Artist          string
	Album           string
	Duration        string
	Liked           bool
	ArtURL          string
	DurationSeconds *float64
}

// Info projects the row into the player's now-playing shape.
func (t Track) Info() (TrackInfo, error) {
	return NewTrackInfo(t.ID, t.Title, t.Artist, t.ArtURL, t.DurationSeconds)
}

// UniqueIDs reports ErrDuplicateID when two ids in the listing collide.
func UniqueIDs(ids ...string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return ErrDuplicateID
		}
		seen[id] = struct{}{}
	}
	return nil
}
