package game

import (
	"math/rand"
	"time"
)

// FrameStep is one logical frame at the default 60 TPS.
const FrameStep = time.Second / 60

// TestRound is a headless round harness on a synthetic clock. It has no
// Ebiten dependency and is used by tests and the headless report.
type TestRound struct {
	Clock *ManualClock
	Round *Round
	Log   *RoundLog
	Level Level

	cfg   Config
	rng   *rand.Rand
	start time.Time
}

// RoundOption is a builder function applied to a TestRound before the round starts.
type RoundOption func(*TestRound)

// WithLevel sets the round level.
func WithLevel(l Level) RoundOption {
	return func(tr *TestRound) { tr.Level = l }
}

// WithSpeed sets the spawn speed multiplier.
func WithSpeed(s float64) RoundOption {
	return func(tr *TestRound) { tr.cfg.SpeedMultiplier = s }
}

// WithRoundLength overrides the round length.
func WithRoundLength(d time.Duration) RoundOption {
	return func(tr *TestRound) { tr.cfg.RoundLength = d }
}

// WithSeed sets the RNG seed for deterministic target placement.
func WithSeed(seed int64) RoundOption {
	return func(tr *TestRound) {
		tr.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}
}

// WithStart sets the synthetic time the round starts at.
func WithStart(t time.Time) RoundOption {
	return func(tr *TestRound) { tr.start = t }
}

// WithVerboseLog records spawns and misses as well.
func WithVerboseLog(v bool) RoundOption {
	return func(tr *TestRound) { tr.Log = NewRoundLog(v) }
}

// NewTestRound applies opts, then starts a round at the clock's start time.
func NewTestRound(opts ...RoundOption) *TestRound {
	tr := &TestRound{
		Level: Level1,
		Log:   NewRoundLog(false),
		cfg:   DefaultConfig(1),
		rng:   rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		start: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, o := range opts {
		o(tr)
	}
	tr.Clock = NewManualClock(tr.start)
	tr.Round = NewRound(tr.cfg, tr.rng, tr.Log)
	tr.Round.Start(tr.Level, tr.start)
	return tr
}

// Now is the current synthetic time.
func (tr *TestRound) Now() time.Time { return tr.Clock.Now() }

// At returns the synthetic time d after the round started.
func (tr *TestRound) At(d time.Duration) time.Time { return tr.start.Add(d) }

// Advance moves the clock by d and ticks once.
func (tr *TestRound) Advance(d time.Duration) TickResult {
	return tr.Round.Tick(tr.Clock.Advance(d))
}

// RunTicks advances n frames and returns how many targets escaped and
// whether the round ended.
func (tr *TestRound) RunTicks(n int) (escapes int, ended bool) {
	for i := 0; i < n; i++ {
		res := tr.Advance(FrameStep)
		if res.Escaped {
			escapes++
		}
		if res.Ended {
			return escapes, true
		}
	}
	return escapes, false
}

// ShootTarget fires at the centre of the active target.
func (tr *TestRound) ShootTarget() ShotResult {
	t, ok := tr.Round.Target()
	if !ok {
		return tr.ShootAt(Point{})
	}
	return tr.ShootAt(t.Pos)
}

// ShootAt fires at p with the click generated and processed this instant.
func (tr *TestRound) ShootAt(p Point) ShotResult {
	now := tr.Clock.Now()
	return tr.Round.Fire(p, now, now)
}
