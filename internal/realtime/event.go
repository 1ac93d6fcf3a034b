// Package realtime pushes playback state to every open tab of a session and
// accepts transport intents over websockets.
package realtime

import (
	"encoding/json"

	"musicroom-web/internal/playback"
)

// Channel is the Redis pub/sub channel shared by all instances.
const Channel = "broadcast"

const (
	EventWelcome      = "welcome"
	EventStateChanged = "player.state_changed"
	EventError        = "error"
)

// Event is the envelope for every outbound message.
type Event struct {
	Type    string          `json:"type"`
	Session string          `json:"session,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func encodeEvent(typ, session string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: typ, Session: session, Payload: raw})
}

func encodeState(session string, s playback.Snapshot) ([]byte, error) {
	return encodeEvent(EventStateChanged, session, s)
}

// Intent is one inbound transport request.
type Intent struct {
	Type    string  `json:"type"`
	TrackID string  `json:"trackId,omitempty"`
	Percent float64 `json:"percent,omitempty"`
	// Page is the path of the page the intent was issued from; play and
	// like resolve their track against its dataset.
	Page string `json:"page,omitempty"`
}

const (
	IntentPlay     = "play"
	IntentToggle   = "toggle"
	IntentSeek     = "seek"
	IntentVolume   = "volume"
	IntentNext     = "next"
	IntentPrevious = "previous"
	IntentLike     = "like"
)
