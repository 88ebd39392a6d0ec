package game

// Server to client event names.
const (
	EventJoinResponse  = "joinResponse"
	EventPlayerJoined  = "playerJoined"
	EventPlayerLeft    = "playerLeft"
	EventHostAssigned  = "hostAssigned"
	EventGameStarted   = "gameStarted"
	EventPlayerMoved   = "playerMoved"
	EventScoreUpdated  = "scoreUpdated"
	EventTimerUpdate   = "timerUpdate"
	EventItemCollected = "itemCollected"
	EventNewItem       = "newItem"
	EventItemRemoved   = "itemRemoved"
	EventGamePaused    = "gamePaused"
	EventGameResumed   = "gameResumed"
	EventGameQuit      = "gameQuit"
	EventGameOver      = "gameOver"
)

// Audience selects which sessions receive an Outbound.
type Audience int

const (
	// ToSession sends to Outbound.Session only.
	ToSession Audience = iota
	// ToOthers sends to every session except Outbound.Session.
	ToOthers
	// ToAll sends to every registered session.
	ToAll
)

// Outbound is a message produced by a state change. Data never aliases
// store memory.
type Outbound struct {
	Audience Audience
	Session  string
	Event    string
	Data     any
}

func emit(session, event string, data any) Outbound {
	return Outbound{Audience: ToSession, Session: session, Event: event, Data: data}
}

func broadcast(session, event string, data any) Outbound {
	return Outbound{Audience: ToOthers, Session: session, Event: event, Data: data}
}

func emitAll(event string, data any) Outbound {
	return Outbound{Audience: ToAll, Event: event, Data: data}
}

// JoinResponse answers a join. IsHost is nil on rejection and always set on
// success.
type JoinResponse struct {
	Success  bool              `json:"success"`
	PlayerID string            `json:"playerId,omitempty"`
	IsHost   *bool             `json:"isHost,omitempty"`
	Players  map[string]Player `json:"players,omitempty"`
	Message  string            `json:"message,omitempty"`
}

type PlayerJoined struct {
	Players   map[string]Player `json:"players"`
	NewPlayer Player            `json:"newPlayer"`
}

type PlayerLeft struct {
	ID      string            `json:"id"`
	Players map[string]Player `json:"players"`
}

type HostAssigned struct {
	IsHost bool `json:"isHost"`
}

type GameStarted struct {
	GameState    RoundState        `json:"gameState"`
	Collectibles []CollectibleView `json:"collectibles"`
}

type PlayerMoved struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
}

type ScoreUpdated struct {
	ID     string         `json:"id"`
	Score  int            `json:"score"`
	Scores map[string]int `json:"scores"`
}

type TimerUpdate struct {
	TimeRemaining int `json:"timeRemaining"`
}

type ItemCollected struct {
	ItemID   string `json:"itemId"`
	PlayerID string `json:"playerId"`
}

type GamePaused struct {
	PausedBy string `json:"pausedBy"`
}

type GameResumed struct {
	ResumedBy string `json:"resumedBy"`
}

type GameQuit struct {
	QuitBy string `json:"quitBy"`
}

type GameOver struct {
	Winner string         `json:"winner"`
	Scores map[string]int `json:"scores"`
}
