// Package hub tracks the live sessions of the lobby and fans messages out to
// them.
package hub

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// ErrClosed is returned by Connection.Send once the session is shutting down.
var ErrClosed = errors.New("session closed")

// Connection is one live client session.
type Connection interface {
	ID() string
	// Send queues data without blocking. ErrClosed means the session is
	// already going away; any other error means it can no longer keep up and
	// should be dropped.
	Send(data []byte) error
	Close() error
}

type Hub struct {
	mu       deadlock.RWMutex
	sessions map[string]Connection
}

func New() *Hub {
	return &Hub{
		sessions: make(map[string]Connection),
	}
}

func (h *Hub) Register(conn Connection) {
	h.mu.Lock()
	h.sessions[conn.ID()] = conn
	count := len(h.sessions)
	h.mu.Unlock()

	log.Info().Str("session", conn.ID()).Int("sessions", count).Msg("session registered")
}

// Unregister reports whether the session was registered.
func (h *Hub) Unregister(id string) bool {
	h.mu.Lock()
	_, ok := h.sessions[id]
	delete(h.sessions, id)
	count := len(h.sessions)
	h.mu.Unlock()

	if ok {
		log.Info().Str("session", id).Int("sessions", count).Msg("session unregistered")
	}
	return ok
}

// Send delivers data to one session. Unknown sessions are ignored.
func (h *Hub) Send(id string, data []byte) {
	h.mu.RLock()
	conn, ok := h.sessions[id]
	h.mu.RUnlock()

	if ok {
		h.deliver(conn, data)
	}
}

// Broadcast delivers data to every session except the sender.
func (h *Hub) Broadcast(senderID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, conn := range h.sessions {
		if id == senderID {
			continue
		}
		h.deliver(conn, data)
	}
}

func (h *Hub) BroadcastAll(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.sessions {
		h.deliver(conn, data)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// deliver closes a session whose queue is full; its reader then runs the
// normal disconnect path. Sessions already closing are skipped quietly.
func (h *Hub) deliver(conn Connection, data []byte) {
	err := conn.Send(data)
	if err == nil || errors.Is(err, ErrClosed) {
		return
	}
	log.Warn().Err(err).Str("session", conn.ID()).Msg("dropping slow session")
	go conn.Close()
}
