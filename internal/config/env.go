package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are operator knobs read from the environment. Game rules live in
// game.Config; these only say where things are and how loud they are.
type Settings struct {
	ScoreFile string  `env:"DUCKHUNT_SCORE_FILE" envDefault:"scores.txt"`
	AssetDir  string  `env:"DUCKHUNT_ASSET_DIR"  envDefault:"assets"`
	Mute      bool    `env:"DUCKHUNT_MUTE"       envDefault:"false"`
	Volume    float64 `env:"DUCKHUNT_VOLUME"     envDefault:"0.6"`
	TPS       int     `env:"DUCKHUNT_TPS"        envDefault:"60"`
}

// Load reads Settings from the process environment.
func Load() (Settings, error) {
	return parse(env.Options{})
}

// LoadFrom reads Settings from the given variables instead of the process
// environment.
func LoadFrom(environ map[string]string) (Settings, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.ScoreFile == "" {
		return errors.New("DUCKHUNT_SCORE_FILE must not be empty")
	}
	if s.Volume < 0 || s.Volume > 1 {
		return fmt.Errorf("DUCKHUNT_VOLUME must be within [0,1], got %v", s.Volume)
	}
	if s.TPS <= 0 {
		return fmt.Errorf("DUCKHUNT_TPS must be > 0, got %d", s.TPS)
	}
	return nil
}
