// Package game holds the authoritative state of one lobby: the roster, the
// collectible pool and the round clock.
//
// A Game is not safe for concurrent use. The owner serializes every call,
// and each mutating call returns the messages the change produced instead of
// sending them itself.
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Game struct {
	cfg   Config
	now   func() time.Time
	rng   *rand.Rand
	newID func() string

	players *roster
	items   pool
	round   round
}

type Option func(*Game)

func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithIDs replaces the collectible id generator.
func WithIDs(newID func() string) Option {
	return func(g *Game) { g.newID = newID }
}

func New(cfg Config, opts ...Option) *Game {
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette
	}
	g := &Game{
		cfg:     cfg,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:   uuid.NewString,
		players: newRoster(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reset()
	return g
}

func (g *Game) Config() Config {
	return g.cfg
}

// Join adds a player for session. A rejected join still returns the
// joinResponse for the sender alongside the error.
func (g *Game) Join(session, name string) ([]Outbound, error) {
	name = strings.TrimSpace(name)

	if _, ok := g.players.get(session); ok {
		return []Outbound{rejectJoin(session, msgAlreadyJoined)}, ErrAlreadyJoined
	}
	if utf8.RuneCountInString(name) < minNameLength {
		return []Outbound{rejectJoin(session, msgNameTooShort)}, fmt.Errorf("%w: %q", ErrNameTooShort, name)
	}
	if g.players.hasName(name) {
		return []Outbound{rejectJoin(session, msgNameTaken)}, fmt.Errorf("%w: %q", ErrNameTaken, name)
	}

	p := &Player{
		ID:       session,
		Name:     name,
		Position: g.randomPosition(),
		Color:    g.cfg.Palette[g.rng.Intn(len(g.cfg.Palette))],
		IsHost:   g.players.len() == 0,
	}
	g.players.add(p)
	g.round.scores[session] = 0

	players := g.players.snapshot()
	isHost := p.IsHost
	return []Outbound{
		emit(session, EventJoinResponse, JoinResponse{
			Success:  true,
			PlayerID: session,
			IsHost:   &isHost,
			Players:  players,
		}),
		broadcast(session, EventPlayerJoined, PlayerJoined{
			Players:   players,
			NewPlayer: *p,
		}),
	}, nil
}

func rejectJoin(session, message string) Outbound {
	return emit(session, EventJoinResponse, JoinResponse{Success: false, Message: message})
}

// Leave removes the session's player, promoting the earliest remaining
// player to host when needed. An unknown session is a no-op.
func (g *Game) Leave(session string) []Outbound {
	p, ok := g.players.remove(session)
	if !ok {
		return nil
	}
	delete(g.round.scores, session)

	var outs []Outbound
	if p.IsHost {
		if next, ok := g.players.first(); ok {
			next.IsHost = true
			outs = append(outs, emit(next.ID, EventHostAssigned, HostAssigned{IsHost: true}))
		}
	}
	outs = append(outs, emitAll(EventPlayerLeft, PlayerLeft{ID: session, Players: g.players.snapshot()}))

	if g.players.len() == 0 {
		g.reset()
	}
	return outs
}

// Move records a client-reported position. Positions are trusted as sent.
func (g *Game) Move(session string, pos Position) ([]Outbound, error) {
	p, ok := g.players.get(session)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if g.round.phase != PhaseRunning {
		return nil, fmt.Errorf("%w: move while %s", ErrInvalidTransition, g.round.phase)
	}
	p.Position = pos
	return []Outbound{broadcast(session, EventPlayerMoved, PlayerMoved{ID: session, Position: pos})}, nil
}

// AddScore applies points exactly as the client reported them. Nothing ties
// the delta to a collection the server witnessed.
func (g *Game) AddScore(session string, points int) ([]Outbound, error) {
	p, ok := g.players.get(session)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if g.round.phase != PhaseRunning {
		return nil, fmt.Errorf("%w: score while %s", ErrInvalidTransition, g.round.phase)
	}
	p.Score += points
	g.round.scores[session] += points
	return []Outbound{emitAll(EventScoreUpdated, ScoreUpdated{
		ID:     session,
		Score:  p.Score,
		Scores: g.round.copyScores(),
	})}, nil
}

// Collect removes itemID from the pool and spawns a replacement, evicting the
// oldest item if the pool reaches its ceiling. Only the first report for an
// id is announced; later ones get ErrNotFound.
func (g *Game) Collect(session, itemID string) ([]Outbound, error) {
	if _, ok := g.players.get(session); !ok {
		return nil, ErrUnknownPlayer
	}
	if !g.round.inProgress() {
		return nil, fmt.Errorf("%w: collect while %s", ErrInvalidTransition, g.round.phase)
	}
	if _, ok := g.items.remove(itemID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, itemID)
	}

	outs := []Outbound{emitAll(EventItemCollected, ItemCollected{ItemID: itemID, PlayerID: session})}
	if g.items.len() >= g.cfg.MaxCollectibles {
		return outs, nil
	}

	c := g.spawn(g.now())
	g.items.add(c)
	outs = append(outs, emitAll(EventNewItem, c.view()))

	if g.items.len() >= g.cfg.MaxCollectibles {
		if old, ok := g.items.oldest(nil); ok {
			g.items.remove(old.ID)
			outs = append(outs, emitAll(EventItemRemoved, old.ID))
		}
	}
	return outs, nil
}

// EvictStale removes at most one item: the oldest one past its lifetime, and
// only while the pool is above the floor.
func (g *Game) EvictStale(now time.Time) []string {
	if g.items.len() <= g.cfg.MinCollectibles {
		return nil
	}
	old, ok := g.items.oldest(staleAt(now, g.cfg.CollectibleLifetime))
	if !ok {
		return nil
	}
	g.items.remove(old.ID)
	return []string{old.ID}
}

func (g *Game) Start(session string) ([]Outbound, error) {
	p, ok := g.players.get(session)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if !p.IsHost {
		return nil, fmt.Errorf("%w: %s tried to start", ErrUnauthorized, p.Name)
	}
	if g.round.inProgress() {
		return nil, fmt.Errorf("%w: start while %s", ErrInvalidTransition, g.round.phase)
	}

	now := g.now()
	g.round.begin(now, g.cfg.Duration)
	g.players.each(func(p *Player) {
		p.Score = 0
		g.round.scores[p.ID] = 0
	})

	g.items.clear()
	for _, c := range g.spawnBatch(now, g.cfg.InitialCollectibles) {
		g.items.add(c)
	}

	return []Outbound{emitAll(EventGameStarted, GameStarted{
		GameState:    g.roundState(),
		Collectibles: g.items.views(),
	})}, nil
}

// Pause is open to every player, not only the host.
func (g *Game) Pause(session string) ([]Outbound, error) {
	p, ok := g.players.get(session)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if g.round.phase != PhaseRunning {
		return nil, fmt.Errorf("%w: pause while %s", ErrInvalidTransition, g.round.phase)
	}
	g.round.pause(g.now())
	return []Outbound{emitAll(EventGamePaused, GamePaused{PausedBy: p.Name})}, nil
}

func (g *Game) Resume(session string) ([]Outbound, error) {
	p, ok := g.players.get(session)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if g.round.phase != PhasePaused {
		return nil, fmt.Errorf("%w: resume while %s", ErrInvalidTransition, g.round.phase)
	}
	g.round.resume(g.now())
	return []Outbound{emitAll(EventGameResumed, GameResumed{ResumedBy: p.Name})}, nil
}

// Quit ends the round for everyone and returns the lobby to idle.
func (g *Game) Quit(session string) ([]Outbound, error) {
	p, ok := g.players.get(session)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	outs := []Outbound{emitAll(EventGameQuit, GameQuit{QuitBy: p.Name})}
	g.reset()
	return outs, nil
}

// Tick advances the round clock once. It reports true when the timer should
// stop: the round ended on this tick or is no longer in progress.
func (g *Game) Tick() ([]Outbound, bool) {
	switch g.round.phase {
	case PhasePaused:
		return nil, false
	case PhaseRunning:
	default:
		return nil, true
	}

	now := g.now()
	g.round.remaining = g.round.remainingAt(now, g.cfg.Duration)

	outs := []Outbound{emitAll(EventTimerUpdate, TimerUpdate{TimeRemaining: g.round.remaining})}
	for _, id := range g.EvictStale(now) {
		outs = append(outs, emitAll(EventItemRemoved, id))
	}

	if g.round.remaining > 0 {
		return outs, false
	}

	g.round.phase = PhaseEnded
	outs = append(outs, emitAll(EventGameOver, GameOver{
		Winner: g.winner(),
		Scores: g.round.copyScores(),
	}))
	return outs, true
}

// winner picks the strictly highest score in join order, so ties go to the
// earlier player.
func (g *Game) winner() string {
	name, best := "No winner", -1
	g.players.each(func(p *Player) {
		if s, ok := g.round.scores[p.ID]; ok && s > best {
			best = s
			name = p.Name
		}
	})
	return name
}

func (g *Game) reset() {
	g.round.reset(g.cfg.Duration)
	g.items.clear()
	g.players.each(func(p *Player) {
		p.Score = 0
	})
}

func (g *Game) spawnBatch(now time.Time, count int) []*Collectible {
	if count > g.cfg.MaxCollectibles {
		count = g.cfg.MaxCollectibles
	}
	out := make([]*Collectible, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, g.spawn(now))
	}
	return out
}

func (g *Game) spawn(now time.Time) *Collectible {
	return &Collectible{
		ID:        g.newID(),
		Position:  g.randomPosition(),
		Value:     g.rng.Intn(5) + 1,
		CreatedAt: now,
	}
}

func (g *Game) randomPosition() Position {
	return Position{
		X: float64(g.rng.Intn(max(1, int(g.cfg.Width)))),
		Y: float64(g.rng.Intn(max(1, int(g.cfg.Height)))),
	}
}

func (g *Game) roundState() RoundState {
	return RoundState{
		IsRunning:           g.round.inProgress(),
		IsPaused:            g.round.phase == PhasePaused,
		StartTime:           unixMilli(g.round.startTime),
		PauseTime:           unixMilli(g.round.pauseTime),
		Duration:            seconds(g.cfg.Duration),
		TimeRemaining:       g.round.remaining,
		Scores:              g.round.copyScores(),
		MaxCollectibles:     g.cfg.MaxCollectibles,
		MinCollectibles:     g.cfg.MinCollectibles,
		CollectibleLifetime: g.cfg.CollectibleLifetime.Milliseconds(),
	}
}

func (g *Game) Phase() Phase {
	return g.round.phase
}

// Generation changes every time a round starts.
func (g *Game) Generation() uint64 {
	return g.round.generation
}

func (g *Game) InProgress() bool {
	return g.round.inProgress()
}

func (g *Game) TimeRemaining() int {
	return g.round.remaining
}

func (g *Game) Players() map[string]Player {
	return g.players.snapshot()
}

func (g *Game) Scores() map[string]int {
	return g.round.copyScores()
}

func (g *Game) Collectibles() []Collectible {
	out := make([]Collectible, 0, g.items.len())
	for _, c := range g.items.items {
		out = append(out, *c)
	}
	return out
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Players:       g.players.len(),
		Phase:         g.round.phase.String(),
		TimeRemaining: g.round.remaining,
		Collectibles:  g.items.len(),
	}
}
