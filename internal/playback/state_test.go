package playback

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musicroom-web/internal/media"
)

func sunsetVibes() media.TrackInfo {
	return media.TrackInfo{ID: "album1", Title: "Sunset Vibes", Artist: "Chill Beats", Duration: media.Seconds(180)}
}

func TestNewSnapshotDefaults(t *testing.T) {
	s := NewSnapshot()
	assert.True(t, s.State.IsIdle())
	assert.False(t, s.State.Playing())
	assert.Equal(t, 0.0, s.Progress)
	assert.Equal(t, 50.0, s.Volume)
}

func TestPlay(t *testing.T) {
	s := NewSnapshot().Seek(40).Play(sunsetVibes())

	tr, ok := s.State.Track()
	require.True(t, ok)
	assert.Equal(t, "album1", tr.ID)
	assert.True(t, s.State.Playing())
	assert.Equal(t, 0.0, s.Progress)
	assert.True(t, s.State.IsCurrent("album1"))
	assert.False(t, s.State.IsCurrent("album2"))
}

func TestTogglePlayPause(t *testing.T) {
	idle := NewSnapshot()
	assert.True(t, idle.TogglePlayPause().Equal(idle), "toggle while idle must be a no-op")

	s := NewSnapshot().Play(sunsetVibes())
	paused := s.TogglePlayPause()
	assert.False(t, paused.State.Playing())
	assert.True(t, paused.State.IsCurrent("album1"))
	assert.True(t, paused.TogglePlayPause().State.Playing())
}

func TestSeekAndVolumeClamp(t *testing.T) {
	s := NewSnapshot()
	assert.Equal(t, 100.0, s.Seek(150).Progress)
	assert.Equal(t, 0.0, s.Seek(-10).Progress)
	assert.Equal(t, 37.5, s.Seek(37.5).Progress)

	assert.Equal(t, 100.0, s.SetVolume(101).Volume)
	assert.Equal(t, 0.0, s.SetVolume(-1).Volume)
	assert.Equal(t, 20.0, s.SetVolume(20).Volume)

	assert.Equal(t, 50.0, s.SetVolume(math.NaN()).Volume)
	assert.Equal(t, 0.0, s.Seek(math.NaN()).Progress)
}

func TestElapsedSeconds(t *testing.T) {
	assert.Equal(t, 0.0, NewSnapshot().Seek(50).ElapsedSeconds())

	s := NewSnapshot().Play(sunsetVibes()).Seek(50)
	assert.Equal(t, 90.0, s.ElapsedSeconds())

	noDuration := NewSnapshot().Play(media.TrackInfo{ID: "x"}).Seek(50)
	assert.Equal(t, 0.0, noDuration.ElapsedSeconds())
}

func TestSnapshotJSON(t *testing.T) {
	s := NewSnapshot().Play(sunsetVibes()).Seek(25).SetVolume(70)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"currentTrack": {"id":"album1","title":"Sunset Vibes","artist":"Chill Beats","duration":180},
		"isPlaying": true,
		"progressPercent": 25,
		"volumePercent": 70
	}`, string(data))

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(s))
}

func TestSnapshotJSONIdleIgnoresPlaying(t *testing.T) {
	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"currentTrack":null,"isPlaying":true,"progressPercent":500,"volumePercent":30}`), &s))
	assert.True(t, s.State.IsIdle())
	assert.False(t, s.State.Playing())
	assert.Equal(t, 100.0, s.Progress)
	assert.Equal(t, 30.0, s.Volume)
}
