package game

import "errors"

var (
	ErrNameTaken         = errors.New("name already taken")
	ErrNameTooShort      = errors.New("name too short")
	ErrAlreadyJoined     = errors.New("session already joined")
	ErrUnknownPlayer     = errors.New("session has no player")
	ErrUnauthorized      = errors.New("only the host can do that")
	ErrInvalidTransition = errors.New("invalid round transition")
	ErrNotFound          = errors.New("collectible not found")
)

// Messages shown to the joining client.
const (
	msgNameTaken     = "Name already taken"
	msgNameTooShort  = "Name must be at least 2 characters"
	msgAlreadyJoined = "Already joined"
)
