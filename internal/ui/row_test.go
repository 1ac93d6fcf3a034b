package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSongRowGlyph(t *testing.T) {
	cases := []struct {
		name             string
		current, playing bool
		glyph, hover     RowGlyph
		label            string
	}{
		{"not current", false, false, RowPosition, RowPlay, "Play Neon Dreams"},
		{"not current ignores playing", false, true, RowPosition, RowPlay, "Play Neon Dreams"},
		{"current playing", true, true, RowPause, RowPause, "Pause Neon Dreams"},
		{"current paused", true, false, RowPlay, RowPlay, "Play Neon Dreams"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := SongRowItem{Title: "Neon Dreams", IsCurrent: tc.current, IsPlaying: tc.playing}
			assert.Equal(t, tc.glyph, r.Glyph())
			assert.Equal(t, tc.hover, r.HoverGlyph())
			assert.Equal(t, tc.label, r.AriaLabel())
		})
	}
}

func TestSongRowCallbacks(t *testing.T) {
	var plays, likes int
	r := SongRowItem{
		TrackNumber: 2,
		OnPlay:      func() { plays++ },
		OnLike:      func() { likes++ },
	}

	assert.Equal(t, "2", r.Position())
	assert.True(t, r.ShowLike())
	assert.False(t, r.ShowOptions())

	r.Click()
	r.ClickLike()
	r.ClickOptions()
	assert.Equal(t, 1, plays)
	assert.Equal(t, 1, likes)

	assert.Equal(t, "", SongRowItem{}.Position())
	assert.Equal(t, "Like song", r.LikeLabel())
	r.IsLiked = true
	assert.Equal(t, "Unlike song", r.LikeLabel())
}
