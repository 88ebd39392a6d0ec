package game

import "time"

type Config struct {
	Width  float64
	Height float64

	Duration            time.Duration
	InitialCollectibles int
	// MinCollectibles is the floor below which stale items are not evicted.
	MinCollectibles     int
	MaxCollectibles     int
	CollectibleLifetime time.Duration

	Palette []string
}

var DefaultPalette = []string{
	"#FF5733",
	"#33FF57",
	"#3357FF",
	"#F3FF33",
	"#FF33F3",
	"#33FFF3",
}

func DefaultConfig() Config {
	return Config{
		Width:               800,
		Height:              500,
		Duration:            120 * time.Second,
		InitialCollectibles: 5,
		MinCollectibles:     5,
		MaxCollectibles:     10,
		CollectibleLifetime: 30 * time.Second,
		Palette:             DefaultPalette,
	}
}

const minNameLength = 2
