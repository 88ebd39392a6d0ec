// Package config defines the server options. Every option is a kong flag
// bound to an environment variable.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ThakurMayank5/Collect-Server/game"
)

type Config struct {
	Port     int    `help:"HTTP listen port." env:"PORT" default:"3000" validate:"gt=0,lte=65535"`
	LogLevel string `help:"Log level." env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error"`

	FieldWidth  float64 `help:"Play-field width in pixels." env:"FIELD_WIDTH" default:"800" validate:"gt=0"`
	FieldHeight float64 `help:"Play-field height in pixels." env:"FIELD_HEIGHT" default:"500" validate:"gt=0"`

	RoundDuration time.Duration `help:"Length of a round." env:"ROUND_DURATION" default:"120s" validate:"gte=1s"`
	TickInterval  time.Duration `help:"Round timer period." env:"TICK_INTERVAL" default:"1s" validate:"gt=0"`

	InitialCollectibles int           `help:"Collectibles spawned when a round starts." env:"INITIAL_COLLECTIBLES" default:"5" validate:"gt=0,gtefield=MinCollectibles,ltefield=MaxCollectibles"`
	MinCollectibles     int           `help:"Pool size at or below which stale collectibles are kept." env:"MIN_COLLECTIBLES" default:"5" validate:"gte=0,ltefield=MaxCollectibles"`
	MaxCollectibles     int           `help:"Maximum collectibles alive at once." env:"MAX_COLLECTIBLES" default:"10" validate:"gt=0"`
	CollectibleLifetime time.Duration `help:"Age after which a collectible may be evicted." env:"COLLECTIBLE_LIFETIME" default:"30s" validate:"gt=0"`

	Palette []string `help:"Player colors." env:"PALETTE" default:"#FF5733,#33FF57,#3357FF,#F3FF33,#FF33F3,#33FFF3" sep:"," validate:"min=1,dive,hexcolor"`

	MessageRate  float64 `help:"Inbound messages per second allowed per session." env:"MESSAGE_RATE" default:"120" validate:"gt=0"`
	MessageBurst int     `help:"Inbound message burst per session." env:"MESSAGE_BURST" default:"60" validate:"gt=0"`

	AllowOrigins []string `help:"Allowed CORS and websocket origins." env:"ALLOW_ORIGINS" default:"*" sep:"," validate:"min=1"`
}

var validate = validator.New()

// Validate is called by kong after parsing.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) Game() game.Config {
	return game.Config{
		Width:               c.FieldWidth,
		Height:              c.FieldHeight,
		Duration:            c.RoundDuration,
		InitialCollectibles: c.InitialCollectibles,
		MinCollectibles:     c.MinCollectibles,
		MaxCollectibles:     c.MaxCollectibles,
		CollectibleLifetime: c.CollectibleLifetime,
		Palette:             c.Palette,
	}
}

// AllowsAnyOrigin reports whether the origin list is the wildcard.
func (c *Config) AllowsAnyOrigin() bool {
	for _, o := range c.AllowOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// LoadEnv loads a .env file into the environment if one exists.
func LoadEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		log.Warn().Msg("no .env file found, using environment variables")
		return
	}
	log.Info().Msg("loaded environment variables from .env")
}
