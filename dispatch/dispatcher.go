// Package dispatch routes client events to the game and delivers the
// resulting messages through the hub.
package dispatch

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"

	"github.com/ThakurMayank5/Collect-Server/game"
	"github.com/ThakurMayank5/Collect-Server/hub"
	"github.com/ThakurMayank5/Collect-Server/protocol"
)

// Dispatcher owns the game. mu guards the game and the round timer; every
// handler and timer tick runs with it held.
type Dispatcher struct {
	mu       deadlock.Mutex
	game     *game.Game
	hub      *hub.Hub
	interval time.Duration
	timer    *roundTimer
}

type Stats struct {
	Sessions int `json:"sessions"`
	game.Snapshot
}

func New(g *game.Game, h *hub.Hub, tickInterval time.Duration) *Dispatcher {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	return &Dispatcher{
		game:     g,
		hub:      h,
		interval: tickInterval,
	}
}

func (d *Dispatcher) Connect(conn hub.Connection) {
	d.hub.Register(conn)
}

// Disconnect drops the session and removes its player, if any.
func (d *Dispatcher) Disconnect(conn hub.Connection) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.hub.Unregister(conn.ID())

	players := d.game.Players()
	p, joined := players[conn.ID()]
	outs := d.game.Leave(conn.ID())
	if joined {
		log.Info().Str("session", conn.ID()).Str("player", p.Name).Int("players", len(players)-1).Msg("👋 player left")
	}
	for _, o := range outs {
		if o.Event == game.EventHostAssigned {
			log.Info().Str("session", o.Session).Msg("👑 host reassigned")
		}
	}
	if joined && len(players) == 1 {
		log.Info().Msg("🔄 lobby empty, round reset")
	}

	d.deliver(outs)
	d.syncTimer()
}

// Handle decodes one frame from conn and dispatches it. Malformed frames are
// dropped.
func (d *Dispatcher) Handle(conn hub.Connection, data []byte) {
	ev, err := protocol.Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("session", conn.ID()).Msg("dropping message")
		return
	}
	d.Dispatch(conn.ID(), ev)
}

func (d *Dispatcher) Dispatch(session string, ev protocol.Event) {
	if ev == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		outs []game.Outbound
		err  error
	)

	switch e := ev.(type) {
	case protocol.Join:
		outs, err = d.game.Join(session, e.PlayerName)
		if err == nil {
			p := d.game.Players()[session]
			log.Info().Str("session", session).Str("player", p.Name).Bool("host", p.IsHost).Msg("🎮 player joined")
		}
	case protocol.PlayerMove:
		outs, err = d.game.Move(session, e.Position)
	case protocol.StartGame:
		outs, err = d.game.Start(session)
		if err == nil {
			log.Info().Str("session", session).Int("players", len(d.game.Players())).Msg("🚀 round started")
		}
	case protocol.UpdateScore:
		outs, err = d.game.AddScore(session, e.Points)
	case protocol.CollectItem:
		outs, err = d.game.Collect(session, e.ItemID)
	case protocol.PauseGame:
		outs, err = d.game.Pause(session)
		if err == nil {
			log.Info().Str("session", session).Msg("⏸️ round paused")
		}
	case protocol.ResumeGame:
		outs, err = d.game.Resume(session)
		if err == nil {
			log.Info().Str("session", session).Msg("▶️ round resumed")
		}
	case protocol.QuitGame:
		outs, err = d.game.Quit(session)
		if err == nil {
			log.Info().Str("session", session).Msg("🛑 round quit")
		}
	default:
		err = fmt.Errorf("%w: %T", protocol.ErrUnknownEvent, ev)
	}

	if err != nil {
		log.Debug().Err(err).Str("session", session).Str("event", ev.Type()).Msg("event ignored")
	}

	d.deliver(outs)
	d.syncTimer()
}

// deliver must be called with mu held so per-store ordering carries over to
// the session queues.
func (d *Dispatcher) deliver(outs []game.Outbound) {
	for _, o := range outs {
		data, err := protocol.Encode(o.Event, o.Data)
		if err != nil {
			log.Error().Err(err).Str("event", o.Event).Msg("failed to encode message")
			continue
		}

		switch o.Audience {
		case game.ToSession:
			d.hub.Send(o.Session, data)
		case game.ToOthers:
			d.hub.Broadcast(o.Session, data)
		case game.ToAll:
			d.hub.BroadcastAll(data)
		}
	}
}

func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	snap := d.game.Snapshot()
	d.mu.Unlock()

	return Stats{
		Sessions: d.hub.Len(),
		Snapshot: snap,
	}
}

// Stop halts the round timer.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.halt()
		d.timer = nil
	}
}
