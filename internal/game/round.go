package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Target is the single active duck.
type Target struct {
	Pos       Point
	SpawnedAt time.Time
}

// Session is the mutable state of one round. Only Round mutates it; callers
// get copies through Round.Session.
type Session struct {
	Level     Level
	Score     int
	Shots     int
	StartedAt time.Time
	PausedFor time.Duration // accumulated time spent paused
	PausedAt  time.Time     // valid only while Paused
	Paused    bool
}

// ShotResult is the outcome of a single click during play.
type ShotResult int

const (
	ShotIgnored ShotResult = iota // not counted at all
	ShotMiss                      // counted, target untouched
	ShotHit                       // counted and scored
	ShotLate                      // counted, but time ran out before it was processed
)

func (r ShotResult) String() string {
	switch r {
	case ShotMiss:
		return "miss"
	case ShotHit:
		return "hit"
	case ShotLate:
		return "late"
	default:
		return "ignored"
	}
}

// TickResult reports what a tick changed.
type TickResult struct {
	Escaped bool // the target timed out and was replaced
	Ended   bool // the round ran out of time on this tick
}

// Round is the time-boxed scoring engine. It is not safe for concurrent use;
// the game loop owns it.
type Round struct {
	cfg     Config
	rng     *rand.Rand
	log     *RoundLog
	s       Session
	target  *Target
	escapes int
	started bool
	over    bool
}

// NewRound creates an idle round engine. A nil log disables event logging.
func NewRound(cfg Config, rng *rand.Rand, log *RoundLog) *Round {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- game only
	}
	return &Round{cfg: cfg, rng: rng, log: log, s: Session{Level: Level1}}
}

// Config returns the rules the round runs under.
func (r *Round) Config() Config { return r.cfg }

// Session returns a snapshot of the current session.
func (r *Round) Session() Session { return r.s }

// Target returns the active target, if any.
func (r *Round) Target() (Target, bool) {
	if r.target == nil {
		return Target{}, false
	}
	return *r.target, true
}

// Escapes is the number of targets that timed out this round.
func (r *Round) Escapes() int { return r.escapes }

// Active reports whether the round is running and not paused.
func (r *Round) Active() bool {
	return r.started && !r.over && !r.s.Paused
}

// Over reports whether the round has run out of time.
func (r *Round) Over() bool { return r.over }

// Start resets score, shots and timers and spawns the first target.
func (r *Round) Start(level Level, now time.Time) {
	if !level.Valid() {
		level = Level1
	}
	r.s = Session{Level: level, StartedAt: now}
	r.target = nil
	r.escapes = 0
	r.started = true
	r.over = false
	r.log.Add(0, level, "round", "start", fmt.Sprintf("interval=%s", r.cfg.SpawnInterval(level)), 0)
	r.Spawn(now)
}

// Elapsed is the play time since Start with pauses excluded.
func (r *Round) Elapsed(now time.Time) time.Duration {
	if !r.started {
		return 0
	}
	if r.s.Paused && now.After(r.s.PausedAt) {
		now = r.s.PausedAt
	}
	e := now.Sub(r.s.StartedAt) - r.s.PausedFor
	if e < 0 {
		return 0
	}
	return e
}

// Remaining is the number of whole seconds left, never negative.
func (r *Round) Remaining(now time.Time) int {
	left := r.cfg.RoundSeconds() - int(r.Elapsed(now)/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// Pause freezes the round clock. Pausing twice is a no-op.
func (r *Round) Pause(now time.Time) {
	if !r.started || r.over || r.s.Paused {
		return
	}
	r.s.Paused = true
	r.s.PausedAt = now
	r.log.Add(r.Elapsed(now), r.s.Level, "round", "pause", "", 0)
}

// Resume restarts the round clock. The active target's spawn time moves by
// the paused duration so it cannot escape while the game is paused.
func (r *Round) Resume(now time.Time) {
	if !r.s.Paused {
		return
	}
	d := now.Sub(r.s.PausedAt)
	if d < 0 {
		d = 0
	}
	r.s.PausedFor += d
	r.s.Paused = false
	r.s.PausedAt = time.Time{}
	if r.target != nil {
		r.target.SpawnedAt = r.target.SpawnedAt.Add(d)
	}
	r.log.Add(r.Elapsed(now), r.s.Level, "round", "resume", d.String(), d.Seconds())
}

// Spawn replaces the current target with one at a uniformly random position
// inside the playable bounds.
func (r *Round) Spawn(now time.Time) Target {
	b := r.cfg.Bounds
	t := &Target{
		Pos: Point{
			X: b.X + r.rng.Float64()*b.W,
			Y: b.Y + r.rng.Float64()*b.H,
		},
		SpawnedAt: now,
	}
	r.target = t
	r.log.AddVerbose(r.Elapsed(now), r.s.Level, "target", "spawn",
		fmt.Sprintf("(%.0f,%.0f)", t.Pos.X, t.Pos.Y), 0)
	return *t
}

// Deadline is when the active target escapes if it is not hit.
func (r *Round) Deadline() (time.Time, bool) {
	if r.target == nil {
		return time.Time{}, false
	}
	return r.target.SpawnedAt.Add(r.cfg.SpawnInterval(r.s.Level)), true
}

// Tick advances round time. The end of the round takes precedence over an
// escape on the same tick.
func (r *Round) Tick(now time.Time) TickResult {
	if !r.Active() {
		return TickResult{}
	}
	if r.Remaining(now) == 0 {
		r.over = true
		r.target = nil
		r.log.Add(r.Elapsed(now), r.s.Level, "round", "end",
			fmt.Sprintf("score=%d shots=%d escapes=%d", r.s.Score, r.s.Shots, r.escapes), float64(r.s.Score))
		return TickResult{Ended: true}
	}
	if d, ok := r.Deadline(); ok && now.After(d) {
		r.escapes++
		r.log.Add(r.Elapsed(now), r.s.Level, "target", "escape",
			fmt.Sprintf("(%.0f,%.0f)", r.target.Pos.X, r.target.Pos.Y), float64(r.escapes))
		r.Spawn(now)
		return TickResult{Escaped: true}
	}
	return TickResult{}
}

// RegisterShot counts one in-bounds click during active play.
func (r *Round) RegisterShot() {
	r.s.Shots++
}

// RegisterHit scores one point and respawns the target. It does not count a
// shot; the click that produced the hit was already counted.
func (r *Round) RegisterHit(now time.Time) {
	r.s.Score++
	r.log.Add(r.Elapsed(now), r.s.Level, "target", "hit",
		fmt.Sprintf("score=%d", r.s.Score), float64(r.s.Score))
	r.Spawn(now)
}

// Fire applies shot counting and hit testing to one click exactly once.
// at is when the click was generated, now is the frame processing it.
func (r *Round) Fire(p Point, at, now time.Time) ShotResult {
	if !r.Active() || r.Remaining(at) == 0 {
		return ShotIgnored
	}
	r.RegisterShot()
	if r.Remaining(now) == 0 {
		r.log.Add(r.Elapsed(now), r.s.Level, "shot", "late", "", 0)
		return ShotLate
	}
	if r.target != nil && r.target.Pos.Dist(p) <= r.cfg.TargetRadius {
		r.RegisterHit(now)
		return ShotHit
	}
	r.log.AddVerbose(r.Elapsed(now), r.s.Level, "shot", "miss",
		fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y), 0)
	return ShotMiss
}
