package ui

import (
	"musicroom-web/internal/media"
	"musicroom-web/internal/playback"
)

// PlaybackBar renders the persistent transport controls for a snapshot.
type PlaybackBar struct {
	Snapshot playback.Snapshot

	OnPlayPause    func()
	OnSkipNext     func()
	OnSkipPrevious func()
	OnSeek         func(percent float64)
	OnVolumeChange func(percent float64)
}

// Empty reports the idle bar; nothing else is rendered then.
func (b PlaybackBar) Empty() bool { return b.Snapshot.State.IsIdle() }

func (b PlaybackBar) Track() media.TrackInfo {
	t, _ := b.Snapshot.State.Track()
	return t
}

func (b PlaybackBar) Art() string {
	if t := b.Track(); t.AlbumArtURL != "" {
		return t.AlbumArtURL
	}
	return PlaceholderImage
}

func (b PlaybackBar) Playing() bool { return b.Snapshot.State.Playing() }

func (b PlaybackBar) PlayPauseLabel() string {
	if b.Playing() {
		return "Pause"
	}
	return "Play"
}

func (b PlaybackBar) Progress() float64 { return b.Snapshot.Progress }
func (b PlaybackBar) Volume() float64   { return b.Snapshot.Volume }

func (b PlaybackBar) Elapsed() string {
	return playback.FormatTime(b.Snapshot.ElapsedSeconds())
}

func (b PlaybackBar) Total() string {
	return playback.FormatTime(b.Track().DurationSeconds())
}

func (b PlaybackBar) VolumeGlyph() playback.Glyph {
	return playback.VolumeGlyph(b.Snapshot.Volume)
}

func (b PlaybackBar) PlayPause() {
	if b.OnPlayPause != nil {
		b.OnPlayPause()
	}
}

func (b PlaybackBar) Next() {
	if b.OnSkipNext != nil {
		b.OnSkipNext()
	}
}

func (b PlaybackBar) Previous() {
	if b.OnSkipPrevious != nil {
		b.OnSkipPrevious()
	}
}

// Seek forwards every value of a drag, in order.
func (b PlaybackBar) Seek(values ...float64) {
	if b.OnSeek == nil {
		return
	}
	for _, v := range values {
		b.OnSeek(v)
	}
}

// ChangeVolume forwards every value of a drag, in order.
func (b PlaybackBar) ChangeVolume(values ...float64) {
	if b.OnVolumeChange == nil {
		return
	}
	for _, v := range values {
		b.OnVolumeChange(v)
	}
}
