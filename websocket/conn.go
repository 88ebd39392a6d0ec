// Package websocket adapts a gorilla websocket connection to a hub session.
package websocket

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/ThakurMayank5/Collect-Server/hub"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

var ErrBufferFull = errors.New("send buffer full")

// Handler receives the lifecycle and inbound frames of a session.
type Handler interface {
	Connect(conn hub.Connection)
	Handle(conn hub.Connection, data []byte)
	Disconnect(conn hub.Connection)
}

type Conn struct {
	id      string
	ws      *websocket.Conn
	send    chan []byte
	handler Handler
	limiter *rate.Limiter

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConn wraps ws. Inbound frames beyond limit per second (after burst) are
// delayed, never dropped, so a session's events keep their order.
func NewConn(id string, ws *websocket.Conn, h Handler, limit rate.Limit, burst int) *Conn {
	ctx, cancel := context.WithCancel(context.Background())
	return &Conn{
		id:      id,
		ws:      ws,
		send:    make(chan []byte, sendBuffer),
		handler: h,
		limiter: rate.NewLimiter(limit, burst),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) Send(data []byte) error {
	select {
	case <-c.ctx.Done():
		return hub.ErrClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops the session. The write pump sends a close frame once the queue
// is flushed.
func (c *Conn) Close() error {
	c.closeOnce.Do(c.cancel)
	return nil
}

// Run registers the session and serves it until the peer goes away.
func (c *Conn) Run() {
	c.handler.Connect(c)
	go c.writePump()
	c.readPump()
}

func (c *Conn) readPump() {
	defer func() {
		c.handler.Disconnect(c)
		c.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("session", c.id).Msg("read error")
			}
			return
		}

		if err := c.limiter.Wait(c.ctx); err != nil {
			return
		}
		c.handler.Handle(c, data)
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
		c.ws.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.flush()
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// flush writes whatever was queued before the session closed.
func (c *Conn) flush() {
	for {
		select {
		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		default:
			return
		}
	}
}
