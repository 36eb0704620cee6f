package game

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"strings"
	"time"
)

// Result is the outcome of the last finished round.
type Result struct {
	Level   Level
	Score   int
	Shots   int
	Escapes int
	NewBest bool
}

// Machine drives the screens. It applies the effects returned by Transition
// to the round engine, the score store and the presenter. One goroutine
// owns it.
type Machine struct {
	screen  Screen
	level   Level
	round   *Round
	store   *ScoreStore
	records Records
	layout  Layout
	out     Presenter
	logger  *log.Logger
	result  Result
}

// MachineOption customises NewMachine.
type MachineOption func(*machineSetup)

type machineSetup struct {
	rng    *rand.Rand
	log    *RoundLog
	logger *log.Logger
	layout Layout
}

// WithRand seeds target placement.
func WithRand(rng *rand.Rand) MachineOption {
	return func(s *machineSetup) { s.rng = rng }
}

// WithRoundLog records round events into log.
func WithRoundLog(log *RoundLog) MachineOption {
	return func(s *machineSetup) { s.log = log }
}

// WithLogger sets the operator log.
func WithLogger(logger *log.Logger) MachineOption {
	return func(s *machineSetup) { s.logger = logger }
}

// WithLayout replaces the default button layout.
func WithLayout(l Layout) MachineOption {
	return func(s *machineSetup) { s.layout = l }
}

// NewMachine loads the stored records and starts on the entry screen at
// level 1. out may be nil when nothing should be played.
func NewMachine(cfg Config, store *ScoreStore, out Presenter, opts ...MachineOption) *Machine {
	setup := machineSetup{layout: DefaultLayout()}
	for _, o := range opts {
		o(&setup)
	}
	if setup.logger == nil {
		setup.logger = log.New(io.Discard, "", 0)
	}
	m := &Machine{
		screen: ScreenEntry,
		level:  Level1,
		round:  NewRound(cfg, setup.rng, setup.log),
		store:  store,
		layout: setup.layout,
		out:    out,
		logger: setup.logger,
	}
	if store != nil {
		m.records = store.Load()
	}
	return m
}

// Screen is the active screen.
func (m *Machine) Screen() Screen { return m.screen }

// Level is the selected level.
func (m *Machine) Level() Level { return m.level }

// Round exposes the round engine for read-only inspection.
func (m *Machine) Round() *Round { return m.round }

// Records returns a copy of the best-score table.
func (m *Machine) Records() Records { return m.records }

// LastResult is the outcome of the most recent finished round.
func (m *Machine) LastResult() Result { return m.result }

// Layout is the button placement in use.
func (m *Machine) Layout() Layout { return m.layout }

// Begin starts the menu music. Call once before the first frame.
func (m *Machine) Begin() {
	if m.out != nil {
		m.out.PlayMusic(TrackMenu, true)
	}
}

// Handle feeds one event through the state machine and applies its effects.
// It reports whether the event was accepted on the current screen.
func (m *Machine) Handle(e Event, now time.Time) bool {
	next, effects := Transition(m.screen, e)
	if next == m.screen && len(effects) == 0 {
		return false
	}
	prev := m.screen
	m.screen = next
	for _, eff := range effects {
		m.apply(eff, now)
	}
	if prev != next {
		m.logger.Printf("screen %s -> %s (%s)", prev, next, e)
	}
	return true
}

func (m *Machine) apply(eff Effect, now time.Time) {
	switch eff.Kind {
	case EffectStartRound, EffectResetRound:
		m.round.Start(m.level, now)
	case EffectPauseRound:
		m.round.Pause(now)
	case EffectResumeRound:
		m.round.Resume(now)
	case EffectRecordScore:
		m.recordScore()
	case EffectLevelNext:
		m.level = m.level.Next()
	case EffectLevelPrev:
		m.level = m.level.Prev()
	case EffectPlaySound:
		m.play(eff.Sound)
	case EffectPlayMusic:
		if m.out != nil {
			m.out.PlayMusic(eff.Track, eff.Loop)
		}
	}
}

func (m *Machine) play(id SoundID) {
	if m.out != nil {
		m.out.PlaySound(id)
	}
}

func (m *Machine) recordScore() {
	s := m.round.Session()
	m.result = Result{
		Level:   s.Level,
		Score:   s.Score,
		Shots:   s.Shots,
		Escapes: m.round.Escapes(),
	}
	if !m.records.Update(s.Level, s.Score, s.Shots) {
		return
	}
	m.result.NewBest = true
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.records); err != nil {
		m.logger.Printf("persist best score to %s: %v", m.store.Path(), err)
	}
}

// TogglePause pauses a running round or resumes a paused one.
func (m *Machine) TogglePause(now time.Time) bool {
	switch m.screen {
	case ScreenPlaying:
		return m.Handle(EventPause, now)
	case ScreenPaused:
		return m.Handle(EventResume, now)
	}
	return false
}

// FrameInput is everything sampled from the devices in one frame.
type FrameInput struct {
	Clicks []Click
	// TogglePause is set when the pause key went down this frame.
	TogglePause bool
}

// Frame runs one logical frame with clicks only.
func (m *Machine) Frame(now time.Time, clicks []Click) {
	m.Step(now, FrameInput{Clicks: clicks})
}

// Step runs one logical frame: clicks are applied in arrival order against
// the screen active when each is processed, then the round clock ticks, then
// the pause key is applied. A round that ends this frame cannot be paused.
func (m *Machine) Step(now time.Time, in FrameInput) {
	for _, c := range in.Clicks {
		it := m.layout.Map(m.screen, c.Pos)
		switch it.Kind {
		case IntentButton:
			m.Handle(it.Event, now)
		case IntentFire:
			m.fire(c, now)
		}
	}
	if m.screen == ScreenPlaying {
		res := m.round.Tick(now)
		if res.Escaped {
			m.play(SoundEscape)
		}
		if res.Ended {
			m.Handle(EventTimeUp, now)
		}
	}
	if in.TogglePause {
		m.TogglePause(now)
	}
}

func (m *Machine) fire(c Click, now time.Time) ShotResult {
	res := m.round.Fire(c.Pos, c.At, now)
	switch res {
	case ShotHit:
		m.play(SoundShot)
		m.play(SoundHit)
	case ShotMiss, ShotLate:
		m.play(SoundShot)
	}
	return res
}

var (
	colorText   = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	colorAccent = color.RGBA{R: 255, G: 210, B: 60, A: 255}
	colorDim    = color.RGBA{R: 170, G: 170, B: 170, A: 255}
)

// Approximate glyph cell of the HUD font, used to centre labels.
const (
	glyphW = 7
	glyphH = 13
)

func centeredText(p Presenter, s string, cx, cy float64, c color.Color) {
	p.DrawText(s, Point{X: cx - float64(len(s)*glyphW)/2, Y: cy - glyphH/2}, c)
}

// Render draws the current frame through p. aim is the pointer position.
func (m *Machine) Render(p Presenter, now time.Time, aim Point) {
	p.DrawBackground(m.level)
	cx := float64(ScreenWidth) / 2

	switch m.screen {
	case ScreenPlaying, ScreenPaused:
		if t, ok := m.round.Target(); ok {
			p.DrawSprite(SpriteDuck, t.Pos)
		}
		m.renderHUD(p, now)
		if m.screen == ScreenPaused {
			p.DrawOverlayScreen(ScreenPaused)
			centeredText(p, "PAUSED", cx, 240, colorAccent)
		}
	case ScreenEntry:
		p.DrawOverlayScreen(ScreenEntry)
		centeredText(p, "DUCK HUNT", cx, 200, colorAccent)
	case ScreenLevelChoose:
		p.DrawOverlayScreen(ScreenLevelChoose)
		centeredText(p, "CHOOSE LEVEL", cx, 200, colorAccent)
		centeredText(p, fmt.Sprintf("LEVEL %d", int(m.level)), cx, 330, colorText)
		r := m.records.Get(m.level)
		centeredText(p, fmt.Sprintf("best %d in %d shots", r.Best, r.Shots), cx, 370, colorDim)
	case ScreenGameOver:
		p.DrawOverlayScreen(ScreenGameOver)
		res := m.result
		centeredText(p, "TIME UP", cx, 200, colorAccent)
		centeredText(p, fmt.Sprintf("LEVEL %d  SCORE %d  SHOTS %d", int(res.Level), res.Score, res.Shots), cx, 260, colorText)
		best := m.records.Get(res.Level)
		centeredText(p, fmt.Sprintf("best %d in %d shots", best.Best, best.Shots), cx, 300, colorDim)
		if res.NewBest {
			centeredText(p, "NEW BEST!", cx, 340, colorAccent)
		}
	case ScreenScoreboard:
		p.DrawOverlayScreen(ScreenScoreboard)
		centeredText(p, "BEST SCORES", cx, 180, colorAccent)
		for i, line := range strings.Split(strings.TrimRight(FormatRecords(m.records), "\n"), "\n") {
			centeredText(p, line, cx, 260+float64(i)*40, colorText)
		}
		centeredText(p, "press C to copy", cx, 500, colorDim)
	}

	for _, b := range m.layout.Buttons(m.screen) {
		c := b.Rect.Center()
		p.DrawSprite(b.Sprite, c)
		centeredText(p, b.Label, c.X, c.Y, colorText)
	}

	if m.screen == ScreenPlaying && m.layout.PlayArea().Contains(aim) {
		p.DrawSprite(SpriteCrosshair, aim)
	}
}

func (m *Machine) renderHUD(p Presenter, now time.Time) {
	s := m.round.Session()
	y := float64(ScreenHeight) - HUDHeight/2 - glyphH/2
	p.DrawText(fmt.Sprintf("LEVEL %d", int(s.Level)), Point{X: 24, Y: y}, colorText)
	p.DrawText(fmt.Sprintf("SCORE %d", s.Score), Point{X: 130, Y: y}, colorAccent)
	p.DrawText(fmt.Sprintf("SHOTS %d", s.Shots), Point{X: 240, Y: y}, colorText)
	p.DrawText(fmt.Sprintf("TIME %d", m.round.Remaining(now)), Point{X: 350, Y: y}, colorText)
}
