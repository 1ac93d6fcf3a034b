package playback

import (
	"context"

	"go.uber.org/zap"

	"musicroom-web/internal/media"
)

// Queue is the extension point for skip semantics. Ordering, repeat and
// shuffle policy belong to the implementation.
type Queue interface {
	Next(ctx context.Context, current media.TrackInfo) (media.TrackInfo, bool)
	Previous(ctx context.Context, current media.TrackInfo) (media.TrackInfo, bool)
}

// Publisher is notified after a transition changed the snapshot.
type Publisher interface {
	Publish(ctx context.Context, key string, s Snapshot)
}

// Player applies transitions to the snapshot stored under one session key.
type Player struct {
	store Store
	key   string
	queue Queue
	pub   Publisher
	log   *zap.Logger
}

type Option func(*Player)

func WithQueue(q Queue) Option { return func(p *Player) { p.queue = q } }
func WithPublisher(pub Publisher) Option { return func(p *Player) { p.pub = pub } }

func NewPlayer(store Store, key string, log *zap.Logger, opts ...Option) *Player {
	p := &Player{store: store, key: key, log: log.With(zap.String("session", key))}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Player) Snapshot(ctx context.Context) (Snapshot, error) {
	return p.store.Load(ctx, p.key)
}

func (p *Player) Play(ctx context.Context, t media.TrackInfo) (Snapshot, error) {
	p.log.Info("play", zap.String("track", t.ID), zap.String("title", t.Title))
	return p.apply(ctx, func(s Snapshot) Snapshot { return s.Play(t) })
}

func (p *Player) TogglePlayPause(ctx context.Context) (Snapshot, error) {
	return p.apply(ctx, Snapshot.TogglePlayPause)
}

func (p *Player) Seek(ctx context.Context, percent float64) (Snapshot, error) {
	return p.apply(ctx, func(s Snapshot) Snapshot { return s.Seek(percent) })
}

func (p *Player) SetVolume(ctx context.Context, percent float64) (Snapshot, error) {
	return p.apply(ctx, func(s Snapshot) Snapshot { return s.SetVolume(percent) })
}

func (p *Player) SkipNext(ctx context.Context) (Snapshot, error) {
	return p.skip(ctx, "next", func(q Queue, cur media.TrackInfo) (media.TrackInfo, bool) {
		return q.Next(ctx, cur)
	})
}

func (p *Player) SkipPrevious(ctx context.Context) (Snapshot, error) {
	return p.skip(ctx, "previous", func(q Queue, cur media.TrackInfo) (media.TrackInfo, bool) {
		return q.Previous(ctx, cur)
	})
}

func (p *Player) skip(ctx context.Context, dir string, pick func(Queue, media.TrackInfo) (media.TrackInfo, bool)) (Snapshot, error) {
	if p.queue == nil {
		p.log.Info("skip ignored: no queue", zap.String("direction", dir))
		return p.Snapshot(ctx)
	}
	return p.apply(ctx, func(s Snapshot) Snapshot {
		cur, ok := s.State.Track()
		if !ok {
			return s
		}
		next, ok := pick(p.queue, cur)
		if !ok {
			return s
		}
		return s.Play(next)
	})
}

func (p *Player) apply(ctx context.Context, fn func(Snapshot) Snapshot) (Snapshot, error) {
	var changed bool
	s, err := p.store.Update(ctx, p.key, func(cur Snapshot) Snapshot {
		next := fn(cur)
		changed = !next.Equal(cur)
		return next
	})
	if err != nil {
		p.log.Error("update snapshot", zap.Error(err))
		return Snapshot{}, err
	}
	if changed && p.pub != nil {
		p.pub.Publish(ctx, p.key, s)
	}
	return s, nil
}
