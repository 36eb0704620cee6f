package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Screen geometry in logical pixels. The HUD band runs along the bottom edge
// and is never part of the playable area.
const (
	ScreenWidth  = 960
	ScreenHeight = 720
	HUDHeight    = 120
	TargetRadius = 36
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config carries the round rules. It is passed into the engine at
// construction; nothing reads it from package state.
type Config struct {
	RoundLength time.Duration
	// SpawnIntervals is indexed by level-1 and must strictly decrease.
	SpawnIntervals  [LevelCount]time.Duration
	SpeedMultiplier float64
	// Bounds is the rectangle the target centre may occupy.
	Bounds       Rect
	TargetRadius float64
}

// PlayArea is the part of the screen above the HUD band.
func PlayArea() Rect {
	return Rect{W: ScreenWidth, H: ScreenHeight - HUDHeight}
}

// DefaultConfig returns the stock rules with the given speed multiplier.
func DefaultConfig(speed float64) Config {
	return Config{
		RoundLength: 60 * time.Second,
		SpawnIntervals: [LevelCount]time.Duration{
			2000 * time.Millisecond,
			1400 * time.Millisecond,
			900 * time.Millisecond,
		},
		SpeedMultiplier: speed,
		Bounds:          PlayArea().Inset(TargetRadius),
		TargetRadius:    TargetRadius,
	}
}

// Validate checks the invariants the round engine relies on.
func (c Config) Validate() error {
	if err := ValidateSpeed(c.SpeedMultiplier); err != nil {
		return err
	}
	if c.RoundLength < time.Second {
		return fmt.Errorf("%w: round length %s is shorter than one second", ErrInvalidConfig, c.RoundLength)
	}
	for i, iv := range c.SpawnIntervals {
		if iv <= 0 {
			return fmt.Errorf("%w: spawn interval for level %d must be positive", ErrInvalidConfig, i+1)
		}
		if i > 0 && iv >= c.SpawnIntervals[i-1] {
			return fmt.Errorf("%w: spawn interval for level %d must be shorter than level %d", ErrInvalidConfig, i+1, i)
		}
	}
	// The scaled intervals must survive the conversion back to Duration
	// and keep their strict ordering.
	for i, iv := range c.SpawnIntervals {
		if float64(iv)*c.SpeedMultiplier >= math.MaxInt64 {
			return fmt.Errorf("%w: speed %v overflows the level %d spawn interval", ErrInvalidConfig, c.SpeedMultiplier, i+1)
		}
		scaled := c.SpawnInterval(Level(i + 1))
		if scaled <= 0 {
			return fmt.Errorf("%w: speed %v rounds the level %d spawn interval to zero", ErrInvalidConfig, c.SpeedMultiplier, i+1)
		}
		if i > 0 && scaled >= c.SpawnInterval(Level(i)) {
			return fmt.Errorf("%w: speed %v makes the level %d spawn interval no shorter than level %d", ErrInvalidConfig, c.SpeedMultiplier, i+1, i)
		}
	}
	if c.Bounds.Empty() {
		return fmt.Errorf("%w: playable bounds are empty", ErrInvalidConfig)
	}
	if c.TargetRadius <= 0 {
		return fmt.Errorf("%w: target radius must be positive", ErrInvalidConfig)
	}
	return nil
}

// ValidateSpeed rejects non-finite and non-positive speed multipliers.
func ValidateSpeed(speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return fmt.Errorf("%w: speed must be a finite number > 0, got %v", ErrInvalidConfig, speed)
	}
	return nil
}

// SpawnInterval is how long a target stays put at level l before escaping.
func (c Config) SpawnInterval(l Level) time.Duration {
	if !l.Valid() {
		l = Level1
	}
	return time.Duration(float64(c.SpawnIntervals[l.index()]) * c.SpeedMultiplier)
}

// RoundSeconds is the round length truncated to whole seconds.
func (c Config) RoundSeconds() int {
	return int(c.RoundLength / time.Second)
}
