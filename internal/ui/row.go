package ui

import "strconv"

// RowGlyph is what the leading cell of a song row shows.
type RowGlyph string

const (
	RowPosition RowGlyph = "position"
	RowPlay     RowGlyph = "play"
	RowPause    RowGlyph = "pause"
)

// SongRowItem renders one track row. The owner closes over the track
// identity when it wires OnPlay.
type SongRowItem struct {
	TrackID     string
	TrackNumber int // 0 means unnumbered
	Title       string
	Artist      string
	Album       string
	Duration    string

	IsCurrent bool
	IsPlaying bool
	IsLiked   bool

	OnPlay    func()
	OnLike    func() // nil hides the like affordance
	OnOptions func() // nil hides the options affordance
}

// Glyph is a function of (IsCurrent, IsPlaying). IsPlaying alone means
// nothing for a row that is not current.
func (r SongRowItem) Glyph() RowGlyph {
	switch {
	case !r.IsCurrent:
		return RowPosition
	case r.IsPlaying:
		return RowPause
	default:
		return RowPlay
	}
}

// HoverGlyph replaces the position with a play glyph on hover.
func (r SongRowItem) HoverGlyph() RowGlyph {
	if g := r.Glyph(); g != RowPosition {
		return g
	}
	return RowPlay
}

func (r SongRowItem) Position() string {
	if r.TrackNumber <= 0 {
		return ""
	}
	return strconv.Itoa(r.TrackNumber)
}

func (r SongRowItem) AriaLabel() string {
	if r.Glyph() == RowPause {
		return "Pause " + r.Title
	}
	return "Play " + r.Title
}

func (r SongRowItem) LikeLabel() string {
	if r.IsLiked {
		return "Unlike song"
	}
	return "Like song"
}

func (r SongRowItem) ShowLike() bool    { return r.OnLike != nil }
func (r SongRowItem) ShowOptions() bool { return r.OnOptions != nil }

func (r SongRowItem) Click() {
	if r.OnPlay != nil {
		r.OnPlay()
	}
}

func (r SongRowItem) ClickLike() {
	if r.OnLike != nil {
		r.OnLike()
	}
}

func (r SongRowItem) ClickOptions() {
	if r.OnOptions != nil {
		r.OnOptions()
	}
}
