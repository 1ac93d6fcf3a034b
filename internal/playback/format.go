package playback

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as M:SS, truncating fractions.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Glyph names the volume affordance icon.
type Glyph string

const (
	GlyphMuted Glyph = "volume-x"
	GlyphLow   Glyph = "volume-1"
	GlyphHigh  Glyph = "volume-2"
)

func VolumeGlyph(volume float64) Glyph {
	switch {
	case volume <= 0:
		return GlyphMuted
	case volume < 50:
		return GlyphLow
	default:
		return GlyphHigh
	}
}
