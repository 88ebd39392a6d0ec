// Package protocol defines the websocket envelope and the inbound client
// events.
package protocol

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/ThakurMayank5/Collect-Server/game"
)

// Client to server event names.
const (
	EventJoin        = "join"
	EventPlayerMove  = "playerMove"
	EventStartGame   = "startGame"
	EventUpdateScore = "updateScore"
	EventCollectItem = "collectItem"
	EventPauseGame   = "pauseGame"
	EventResumeGame  = "resumeGame"
	EventQuitGame    = "quitGame"
)

var (
	ErrEmptyMessage   = errors.New("empty message")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrMissingPayload = errors.New("missing payload")
)

// Message is the envelope of every frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type movePayload struct {
	Position *game.Position `json:"position"`
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Event is one decoded client message. The concrete types below are the only
// implementations.
type Event interface {
	Type() string
}

type Join struct {
	PlayerName string
}

type PlayerMove struct {
	Position game.Position
}

type StartGame struct{}

type UpdateScore struct {
	Points int
}

type CollectItem struct {
	ItemID string
}

type PauseGame struct{}

type ResumeGame struct{}

type QuitGame struct{}

func (Join) Type() string        { return EventJoin }
func (PlayerMove) Type() string  { return EventPlayerMove }
func (StartGame) Type() string   { return EventStartGame }
func (UpdateScore) Type() string { return EventUpdateScore }
func (CollectItem) Type() string { return EventCollectItem }
func (PauseGame) Type() string   { return EventPauseGame }
func (ResumeGame) Type() string  { return EventResumeGame }
func (QuitGame) Type() string    { return EventQuitGame }

func Encode(event string, data any) ([]byte, error) {
	if event == "" {
		return nil, fmt.Errorf("encode: empty event type")
	}
	return json.Marshal(Message{Type: event, Data: data})
}

func Decode(b []byte) (Event, error) {
	if len(b) == 0 {
		return nil, ErrEmptyMessage
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case EventJoin:
		name, err := decodePayload[string](env)
		if err != nil {
			return nil, err
		}
		return Join{PlayerName: name}, nil
	case EventPlayerMove:
		move, err := decodePayload[movePayload](env)
		if err != nil {
			return nil, err
		}
		if move.Position == nil {
			return nil, fmt.Errorf("%w: %s position", ErrMissingPayload, env.Type)
		}
		return PlayerMove{Position: *move.Position}, nil
	case EventStartGame:
		return StartGame{}, nil
	case EventUpdateScore:
		points, err := decodePayload[int](env)
		if err != nil {
			return nil, err
		}
		return UpdateScore{Points: points}, nil
	case EventCollectItem:
		id, err := decodePayload[string](env)
		if err != nil {
			return nil, err
		}
		return CollectItem{ItemID: id}, nil
	case EventPauseGame:
		return PauseGame{}, nil
	case EventResumeGame:
		return ResumeGame{}, nil
	case EventQuitGame:
		return QuitGame{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
}

func decodePayload[T any](env envelope) (T, error) {
	var out T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return out, fmt.Errorf("%w: %s", ErrMissingPayload, env.Type)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return out, nil
}
