package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection bound to a session.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session string
	intents IntentHandler
	log     *zap.Logger
}

// readPump applies every inbound intent in arrival order. Slider drags
// arrive as a burst of seek or volume intents and none are dropped.
func (c *Client) readPump(ctx context.Context) {
	defer c.hub.remove(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read", zap.Error(err))
			}
			return
		}

		var in Intent
		if err := json.Unmarshal(data, &in); err != nil {
			c.reply(EventError, map[string]string{"error": "invalid intent"})
			continue
		}
		if err := c.intents.HandleIntent(ctx, c.session, in); err != nil {
			c.log.Warn("intent failed", zap.String("type", in.Type), zap.Error(err))
			c.reply(EventError, map[string]string{"error": err.Error()})
		}
	}
}

// reply is a best-effort direct message to this client only.
func (c *Client) reply(typ string, payload any) {
	b, err := encodeEvent(typ, c.session, payload)
	if err != nil {
		return
	}
	c.hub.sendTo(c, b)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
