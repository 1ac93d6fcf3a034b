// Package ui holds the leaf components. Each is a pure function of its
// props; user activations are forwarded to the owner's callbacks.
package ui

import "musicroom-web/internal/media"

// PlaceholderImage is served from the embedded static assets.
const PlaceholderImage = "/static/placeholder.svg"

// Target is the part of a component a user activated.
type Target int

const (
	TargetBody Target = iota
	TargetPlay
)

// MediaGridCard renders one album, playlist or artist tile.
type MediaGridCard struct {
	Entity media.Entity

	OnView func(id string, kind media.Kind)
	// OnPlay is optional; nil hides the play affordance.
	OnPlay func(id string)
}

func (c MediaGridCard) ID() string       { return c.Entity.ID }
func (c MediaGridCard) Kind() media.Kind { return c.Entity.Kind() }
func (c MediaGridCard) Title() string    { return c.Entity.Title }
func (c MediaGridCard) Subtitle() string { return c.Entity.Subtitle }

// Image falls back to the placeholder for an empty URL. The markup also
// swaps to it when the browser fails to load the URL.
func (c MediaGridCard) Image() string {
	if c.Entity.ImageURL == "" {
		return PlaceholderImage
	}
	return c.Entity.ImageURL
}

func (c MediaGridCard) HasPlay() bool { return c.OnPlay != nil }

func (c MediaGridCard) PlayLabel() string { return "Play " + c.Entity.Title }

// Activate delivers exactly one signal. Activating the play affordance
// stops there and never reaches the view handler.
func (c MediaGridCard) Activate(t Target) {
	switch t {
	case TargetPlay:
		if c.OnPlay != nil {
			c.OnPlay(c.Entity.ID)
		}
	case TargetBody:
		if c.OnView != nil {
			c.OnView(c.Entity.ID, c.Entity.Kind())
		}
	}
}

func (c MediaGridCard) Click()     { c.Activate(TargetBody) }
func (c MediaGridCard) ClickPlay() { c.Activate(TargetPlay) }
