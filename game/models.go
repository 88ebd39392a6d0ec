package game

import "time"

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Player is one joined session. ID is the session id.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Color    string   `json:"color"`
	Score    int      `json:"score"`
	IsHost   bool     `json:"isHost"`
}

type Collectible struct {
	ID        string    `json:"id"`
	Position  Position  `json:"position"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"-"`
}

// CollectibleView is the wire form of a Collectible; createdAt is Unix millis.
type CollectibleView struct {
	ID        string   `json:"id"`
	Position  Position `json:"position"`
	Value     int      `json:"value"`
	CreatedAt int64    `json:"createdAt"`
}

func (c Collectible) view() CollectibleView {
	return CollectibleView{
		ID:        c.ID,
		Position:  c.Position,
		Value:     c.Value,
		CreatedAt: c.CreatedAt.UnixMilli(),
	}
}

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// RoundState is the gameState payload of gameStarted.
type RoundState struct {
	IsRunning           bool           `json:"isRunning"`
	IsPaused            bool           `json:"isPaused"`
	StartTime           int64          `json:"startTime,omitempty"`
	PauseTime           int64          `json:"pauseTime,omitempty"`
	Duration            int            `json:"duration"`
	TimeRemaining       int            `json:"timeRemaining"`
	Scores              map[string]int `json:"scores"`
	MaxCollectibles     int            `json:"maxCollectibles"`
	MinCollectibles     int            `json:"minCollectibles"`
	CollectibleLifetime int64          `json:"collectibleLifetime"`
}

// Snapshot is a read-only summary used by the stats endpoint.
type Snapshot struct {
	Players       int    `json:"players"`
	Phase         string `json:"phase"`
	TimeRemaining int    `json:"timeRemaining"`
	Collectibles  int    `json:"collectibles"`
}
