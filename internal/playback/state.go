// Package playback holds the client-side playback snapshot and its
// transitions. Transitions are pure; Player and Store add the session
// scoping on top.
package playback

import (
	"encoding/json"
	"math"

	"musicroom-web/internal/media"
)

const (
	DefaultVolume = 50
	maxPercent    = 100
)

// State is either Idle or Loaded(track) with a playing flag.
// A playing Idle state cannot be constructed.
type State struct {
	track   *media.TrackInfo
	playing bool
}

func Idle() State { return State{} }

func Loaded(t media.TrackInfo, playing bool) State {
	return State{track: &t, playing: playing}
}

func (s State) IsIdle() bool { return s.track == nil }

// Track returns the loaded track, ok=false when idle.
func (s State) Track() (media.TrackInfo, bool) {
	if s.track == nil {
		return media.TrackInfo{}, false
	}
	return *s.track, true
}

// Playing is always false when idle.
func (s State) Playing() bool { return s.track != nil && s.playing }

// IsCurrent reports whether trackID is the loaded track.
func (s State) IsCurrent(trackID string) bool {
	return s.track != nil && s.track.ID == trackID
}

func (s State) Equal(o State) bool {
	if s.IsIdle() || o.IsIdle() {
		return s.IsIdle() == o.IsIdle()
	}
	if s.playing != o.playing {
		return false
	}
	a, b := *s.track, *o.track
	if a.ID != b.ID || a.Title != b.Title || a.Artist != b.Artist || a.AlbumArtURL != b.AlbumArtURL {
		return false
	}
	if (a.Duration == nil) != (b.Duration == nil) {
		return false
	}
	return a.Duration == nil || *a.Duration == *b.Duration
}

// Snapshot is the playback value rendered by the player bar.
type Snapshot struct {
	State    State
	Progress float64 // percent, [0,100]
	Volume   float64 // percent, [0,100]
}

func NewSnapshot() Snapshot {
	return Snapshot{State: Idle(), Volume: DefaultVolume}
}

func (s Snapshot) Equal(o Snapshot) bool {
	return s.State.Equal(o.State) && s.Progress == o.Progress && s.Volume == o.Volume
}

// Play loads the track, starts it and rewinds progress.
func (s Snapshot) Play(t media.TrackInfo) Snapshot {
	s.State = Loaded(t, true)
	s.Progress = 0
	return s
}

// TogglePlayPause flips the playing flag. Idle stays Idle.
func (s Snapshot) TogglePlayPause() Snapshot {
	if t, ok := s.State.Track(); ok {
		s.State = Loaded(t, !s.State.playing)
	}
	return s
}

// Seek sets progress clamped to [0,100]. NaN is ignored.
func (s Snapshot) Seek(percent float64) Snapshot {
	if math.IsNaN(percent) {
		return s
	}
	s.Progress = clamp(percent)
	return s
}

// SetVolume sets volume clamped to [0,100]. NaN is ignored.
func (s Snapshot) SetVolume(percent float64) Snapshot {
	if math.IsNaN(percent) {
		return s
	}
	s.Volume = clamp(percent)
	return s
}

// ElapsedSeconds derives elapsed time from progress; 0 when duration is unknown.
func (s Snapshot) ElapsedSeconds() float64 {
	t, ok := s.State.Track()
	if !ok {
		return 0
	}
	return s.Progress / maxPercent * t.DurationSeconds()
}

func clamp(p float64) float64 {
	return math.Max(0, math.Min(maxPercent, p))
}

type wireSnapshot struct {
	CurrentTrack    *media.TrackInfo `json:"currentTrack"`
	IsPlaying       bool             `json:"isPlaying"`
	ProgressPercent float64          `json:"progressPercent"`
	VolumePercent   float64          `json:"volumePercent"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	w := wireSnapshot{
		IsPlaying:       s.State.Playing(),
		ProgressPercent: s.Progress,
		VolumePercent:   s.Volume,
	}
	if t, ok := s.State.Track(); ok {
		w.CurrentTrack = &t
	}
	return json.Marshal(w)
}

// UnmarshalJSON ignores isPlaying when currentTrack is null.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var w wireSnapshot
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	st := Idle()
	if w.CurrentTrack != nil {
		st = Loaded(*w.CurrentTrack, w.IsPlaying)
	}
	*s = Snapshot{
		State:    st,
		Progress: clamp(w.ProgressPercent),
		Volume:   clamp(w.VolumePercent),
	}
	return nil
}
