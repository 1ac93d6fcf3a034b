package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"musicroom-web/internal/playback"
)

// HubPublisher delivers state changes to the clients of this instance only.
type HubPublisher struct {
	hub *Hub
	log *zap.Logger
}

func NewHubPublisher(hub *Hub, log *zap.Logger) *HubPublisher {
	return &HubPublisher{hub: hub, log: log}
}

func (p *HubPublisher) Publish(_ context.Context, session string, s playback.Snapshot) {
	data, err := encodeState(session, s)
	if err != nil {
		p.log.Error("encode state", zap.Error(err))
		return
	}
	p.hub.Send(session, data)
}

// RedisPublisher publishes state changes on Channel so every instance
// subscribed with a Subscriber relays them to its clients.
type RedisPublisher struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisPublisher(rdb *redis.Client, log *zap.Logger) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, session string, s playback.Snapshot) {
	data, err := encodeState(session, s)
	if err != nil {
		p.log.Error("encode state", zap.Error(err))
		return
	}
	if err := p.rdb.Publish(ctx, Channel, string(data)).Err(); err != nil {
		p.log.Error("publish state", zap.String("session", session), zap.Error(err))
	}
}

// Subscriber relays Channel messages into a hub.
type Subscriber struct {
	sub *redis.PubSub
	hub *Hub
	log *zap.Logger
}

// Subscribe returns once the subscription is confirmed, so nothing
// published afterwards is missed.
func Subscribe(ctx context.Context, rdb *redis.Client, hub *Hub, log *zap.Logger) (*Subscriber, error) {
	sub := rdb.Subscribe(ctx, Channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}
	return &Subscriber{sub: sub, hub: hub, log: log}, nil
}

// Run relays messages until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) {
	defer s.sub.Close()

	ch := s.sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil || ev.Session == "" {
				s.log.Warn("ignoring broadcast without session", zap.String("payload", msg.Payload))
				continue
			}
			s.hub.Send(ev.Session, []byte(msg.Payload))
		}
	}
}
