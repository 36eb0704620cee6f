package game

import (
	"bytes"
	"image/color"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakePresenter struct {
	backgrounds []Level
	overlays    []Screen
	texts       []string
	sprites     []SpriteID
	sounds      []SoundID
	music       []TrackID
}

func (f *fakePresenter) DrawBackground(level Level)                { f.backgrounds = append(f.backgrounds, level) }
func (f *fakePresenter) DrawOverlayScreen(screen Screen)           { f.overlays = append(f.overlays, screen) }
func (f *fakePresenter) DrawText(s string, _ Point, _ color.Color) { f.texts = append(f.texts, s) }
func (f *fakePresenter) DrawSprite(id SpriteID, _ Point)           { f.sprites = append(f.sprites, id) }
func (f *fakePresenter) PlaySound(id SoundID)                      { f.sounds = append(f.sounds, id) }
func (f *fakePresenter) PlayMusic(id TrackID, _ bool)              { f.music = append(f.music, id) }

func (f *fakePresenter) countSound(id SoundID) int {
	n := 0
	for _, s := range f.sounds {
		if s == id {
			n++
		}
	}
	return n
}

func (f *fakePresenter) hasText(sub string) bool {
	for _, s := range f.texts {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (f *fakePresenter) hasSprite(id SpriteID) bool {
	for _, s := range f.sprites {
		if s == id {
			return true
		}
	}
	return false
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return t0.Add(d) }

func newTestMachine(t *testing.T) (*Machine, *fakePresenter, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.txt")
	fp := &fakePresenter{}
	m := NewMachine(DefaultConfig(1), NewScoreStore(path, nil), fp,
		WithRand(rand.New(rand.NewSource(1))), // #nosec G404 -- test
		WithRoundLog(NewRoundLog(false)),
	)
	return m, fp, path
}

func buttonClick(t *testing.T, m *Machine, e Event, when time.Time) Click {
	t.Helper()
	for _, b := range m.Layout().Buttons(m.Screen()) {
		if b.Event == e {
			return Click{Pos: b.Rect.Center(), At: when}
		}
	}
	t.Fatalf("no %s button on %s", e, m.Screen())
	return Click{}
}

func targetClick(t *testing.T, m *Machine, when time.Time) Click {
	t.Helper()
	tg, ok := m.Round().Target()
	if !ok {
		t.Fatal("no active target")
	}
	return Click{Pos: tg.Pos, At: when}
}

// startPlaying walks Entry -> LevelChoose -> Playing at t0.
func startPlaying(t *testing.T, m *Machine) {
	t.Helper()
	m.Frame(t0, []Click{buttonClick(t, m, EventStart, t0)})
	m.Frame(t0, []Click{buttonClick(t, m, EventPlay, t0)})
	if m.Screen() != ScreenPlaying {
		t.Fatalf("expected playing, got %s", m.Screen())
	}
}

func TestMachine_InitialState(t *testing.T) {
	m, fp, _ := newTestMachine(t)
	if m.Screen() != ScreenEntry || m.Level() != Level1 {
		t.Fatalf("expected entry at level 1, got %s %s", m.Screen(), m.Level())
	}
	if m.Records() != (Records{}) {
		t.Fatalf("fresh start should have zero records, got %+v", m.Records())
	}
	m.Begin()
	if len(fp.music) != 1 || fp.music[0] != TrackMenu {
		t.Fatalf("expected menu music, got %+v", fp.music)
	}
}

func TestMachine_LevelCyclingStaysOnLevelChoose(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Handle(EventStart, t0)
	m.Handle(EventLevelNext, t0)
	m.Handle(EventLevelNext, t0)
	if m.Level() != Level3 {
		t.Fatalf("expected level 3, got %s", m.Level())
	}
	m.Handle(EventLevelNext, t0)
	if m.Level() != Level1 {
		t.Fatalf("next from 3 should wrap to 1, got %s", m.Level())
	}
	m.Handle(EventLevelPrev, t0)
	if m.Level() != Level3 {
		t.Fatalf("prev from 1 should wrap to 3, got %s", m.Level())
	}
	if m.Screen() != ScreenLevelChoose {
		t.Fatalf("level buttons must not leave the screen, got %s", m.Screen())
	}
}

func TestMachine_PlayStartsRoundAtSelectedLevel(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Handle(EventStart, t0)
	m.Handle(EventLevelPrev, t0)
	m.Handle(EventPlay, t0)
	s := m.Round().Session()
	if s.Level != Level3 || !s.StartedAt.Equal(t0) {
		t.Fatalf("expected level 3 round started at t0, got %+v", s)
	}
}

func TestMachine_HitAndMiss(t *testing.T) {
	m, fp, _ := newTestMachine(t)
	startPlaying(t, m)

	m.Frame(at(time.Second), []Click{targetClick(t, m, at(time.Second))})
	tg, _ := m.Round().Target()
	miss := Point{X: tg.Pos.X + 3*TargetRadius, Y: tg.Pos.Y}
	if tg.Pos.X > ScreenWidth/2 {
		miss.X = tg.Pos.X - 3*TargetRadius
	}
	m.Frame(at(2*time.Second), []Click{{Pos: miss, At: at(2 * time.Second)}})

	s := m.Round().Session()
	if s.Score != 1 || s.Shots != 2 {
		t.Fatalf("expected score=1 shots=2, got %+v", s)
	}
	if fp.countSound(SoundShot) != 2 || fp.countSound(SoundHit) != 1 {
		t.Fatalf("unexpected sounds %+v", fp.sounds)
	}
}

func TestMachine_HUDClickIsNotAShot(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	m.Frame(at(time.Second), []Click{{Pos: Point{X: 40, Y: ScreenHeight - 20}, At: at(time.Second)}})
	if s := m.Round().Session(); s.Shots != 0 {
		t.Fatalf("HUD click counted as a shot: %+v", s)
	}
}

func TestMachine_PauseResumeExcludesPausedTime(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	m.Frame(at(10*time.Second), []Click{buttonClick(t, m, EventPause, at(10*time.Second))})
	if m.Screen() != ScreenPaused {
		t.Fatalf("expected paused, got %s", m.Screen())
	}
	m.Frame(at(25*time.Second), nil)
	m.Frame(at(40*time.Second), []Click{buttonClick(t, m, EventResume, at(40*time.Second))})
	if m.Screen() != ScreenPlaying {
		t.Fatalf("expected playing, got %s", m.Screen())
	}
	if got := m.Round().Elapsed(at(50 * time.Second)); got != 20*time.Second {
		t.Fatalf("expected 20s of play, got %s", got)
	}
}

func TestMachine_ClicksWhilePausedAreNotShots(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	m.TogglePause(at(time.Second))
	m.Frame(at(2*time.Second), []Click{{Pos: Point{X: 10, Y: 10}, At: at(2 * time.Second)}})
	if s := m.Round().Session(); s.Shots != 0 {
		t.Fatalf("paused clicks must not count, got %+v", s)
	}
	m.TogglePause(at(3 * time.Second))
	if m.Screen() != ScreenPlaying {
		t.Fatalf("toggle should resume, got %s", m.Screen())
	}
}

func TestMachine_ResetKeepsPlaying(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	m.Frame(at(time.Second), []Click{targetClick(t, m, at(time.Second))})
	m.Frame(at(5*time.Second), []Click{buttonClick(t, m, EventReset, at(5*time.Second))})
	s := m.Round().Session()
	if m.Screen() != ScreenPlaying {
		t.Fatalf("reset must stay on the playing screen, got %s", m.Screen())
	}
	if s.Score != 0 || s.Shots != 0 || !s.StartedAt.Equal(at(5*time.Second)) {
		t.Fatalf("reset should restart the round, got %+v", s)
	}
}

func TestMachine_TimeUpRecordsAndPersists(t *testing.T) {
	m, fp, path := newTestMachine(t)
	startPlaying(t, m)
	m.Frame(at(time.Second), []Click{targetClick(t, m, at(time.Second))})
	m.Frame(at(60*time.Second), nil)

	if m.Screen() != ScreenGameOver {
		t.Fatalf("expected game over, got %s", m.Screen())
	}
	res := m.LastResult()
	if res.Score != 1 || res.Shots != 1 || !res.NewBest {
		t.Fatalf("unexpected result %+v", res)
	}
	if fp.countSound(SoundGameOver) != 1 {
		t.Fatal("expected the game over sound")
	}
	if got := NewScoreStore(path, nil).Load().Get(Level1); got != (Record{Best: 1, Shots: 1}) {
		t.Fatalf("record not persisted, got %+v", got)
	}
}

func TestMachine_FailedSaveKeepsRecordAndLogsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "scores.txt")
	var logBuf bytes.Buffer
	m := NewMachine(DefaultConfig(1), NewScoreStore(path, nil), &fakePresenter{},
		WithRand(rand.New(rand.NewSource(1))), // #nosec G404 -- test
		WithLogger(log.New(&logBuf, "", 0)),
	)
	startPlaying(t, m)
	m.Frame(at(time.Second), []Click{targetClick(t, m, at(time.Second))})
	m.Frame(at(60*time.Second), nil)

	if got := m.Records().Get(Level1); got != (Record{Best: 1, Shots: 1}) {
		t.Fatalf("in-memory record should survive a failed save, got %+v", got)
	}
	if !strings.Contains(logBuf.String(), "persist best score to "+path) {
		t.Fatalf("expected the save failure to name %s, got %q", path, logBuf.String())
	}
}

func TestMachine_StepAppliesClicksBeforePauseKey(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	now := at(time.Second)
	m.Step(now, FrameInput{Clicks: []Click{targetClick(t, m, now)}, TogglePause: true})

	if m.Screen() != ScreenPaused {
		t.Fatalf("expected paused, got %s", m.Screen())
	}
	if s := m.Round().Session(); s.Score != 1 || s.Shots != 1 {
		t.Fatalf("click in the pause frame should still score, got %+v", s)
	}

	later := at(2 * time.Second)
	m.Step(later, FrameInput{Clicks: []Click{buttonClick(t, m, EventResume, later)}, TogglePause: true})
	if m.Screen() != ScreenPaused {
		t.Fatalf("resume click then pause key should leave the round paused, got %s", m.Screen())
	}
}

func TestMachine_PauseKeyOnFinalFrameStillEndsRound(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	m.Step(at(60*time.Second), FrameInput{TogglePause: true})
	if m.Screen() != ScreenGameOver {
		t.Fatalf("expected game over, got %s", m.Screen())
	}
}

func TestMachine_ClickOnFinalFrameCountsButDoesNotScore(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	click := targetClick(t, m, at(59900*time.Millisecond))
	m.Frame(at(60*time.Second), []Click{click})

	if m.Screen() != ScreenGameOver {
		t.Fatalf("expected game over, got %s", m.Screen())
	}
	res := m.LastResult()
	if res.Score != 0 || res.Shots != 1 {
		t.Fatalf("expected score=0 shots=1, got %+v", res)
	}
	if res.NewBest {
		t.Fatal("(0,1) does not beat (0,0)")
	}
}

func TestMachine_ClickAfterGameOverIsIgnored(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	m.Frame(at(60*time.Second), nil)
	m.Frame(at(61*time.Second), []Click{{Pos: Point{X: 300, Y: 100}, At: at(61 * time.Second)}})
	if m.Screen() != ScreenGameOver || m.Round().Session().Shots != 0 {
		t.Fatal("clicks after the round must not count")
	}
}

func TestMachine_PlayAgainRestartsAtSameLevel(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Handle(EventStart, t0)
	m.Handle(EventLevelNext, t0)
	m.Handle(EventPlay, t0)
	m.Frame(at(60*time.Second), nil)
	m.Frame(at(70*time.Second), []Click{buttonClick(t, m, EventPlayAgain, at(70*time.Second))})
	s := m.Round().Session()
	if m.Screen() != ScreenPlaying || s.Level != Level2 || !s.StartedAt.Equal(at(70*time.Second)) {
		t.Fatalf("play again should restart level 2, got %s %+v", m.Screen(), s)
	}
}

func TestMachine_WorseResultKeepsRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	if err := NewScoreStore(path, nil).Save(Records{{Best: 5, Shots: 20}}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	m := NewMachine(DefaultConfig(1), NewScoreStore(path, nil), nil, WithRand(rand.New(rand.NewSource(3)))) // #nosec G404 -- test
	startPlaying(t, m)
	m.Frame(at(60*time.Second), nil)
	if m.LastResult().NewBest {
		t.Fatal("a zero score must not replace (5,20)")
	}
	if got := m.Records().Get(Level1); got != (Record{Best: 5, Shots: 20}) {
		t.Fatalf("record changed to %+v", got)
	}
}

func TestMachine_QuitToMenuStopsTicking(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	m.Handle(EventPause, at(time.Second))
	m.Handle(EventQuitToMenu, at(time.Second))
	if m.Screen() != ScreenLevelChoose {
		t.Fatalf("expected level choose, got %s", m.Screen())
	}
	m.Frame(at(5*time.Minute), nil)
	if m.Screen() != ScreenLevelChoose {
		t.Fatalf("menu screens must not run the round clock, got %s", m.Screen())
	}
}

func TestMachine_ScoreboardRoundTrip(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Frame(t0, []Click{buttonClick(t, m, EventViewScores, t0)})
	if m.Screen() != ScreenScoreboard {
		t.Fatalf("expected scoreboard, got %s", m.Screen())
	}
	m.Frame(t0, []Click{buttonClick(t, m, EventBack, t0)})
	if m.Screen() != ScreenEntry {
		t.Fatalf("expected entry, got %s", m.Screen())
	}
}

func TestMachine_OneIntentPerClick(t *testing.T) {
	m, _, _ := newTestMachine(t)
	c := buttonClick(t, m, EventStart, t0)
	m.Frame(t0, []Click{c})
	if m.Screen() != ScreenLevelChoose {
		t.Fatalf("expected level choose, got %s", m.Screen())
	}
	// The same click position on the next screen is a separate click.
	m.Frame(t0, nil)
	if m.Screen() != ScreenLevelChoose {
		t.Fatalf("a click must fire at most once, got %s", m.Screen())
	}
}

func TestMachine_EscapePlaysSound(t *testing.T) {
	m, fp, _ := newTestMachine(t)
	startPlaying(t, m)
	m.Frame(at(2500*time.Millisecond), nil)
	if fp.countSound(SoundEscape) != 1 {
		t.Fatalf("expected one escape sound, got %+v", fp.sounds)
	}
}

func TestRender_PlayingShowsTargetHUDAndCrosshair(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	fp := &fakePresenter{}
	m.Render(fp, at(15*time.Second), Point{X: 200, Y: 200})
	if len(fp.backgrounds) != 1 || fp.backgrounds[0] != Level1 {
		t.Fatalf("expected one level 1 background, got %+v", fp.backgrounds)
	}
	if !fp.hasSprite(SpriteDuck) || !fp.hasSprite(SpriteCrosshair) {
		t.Fatalf("expected duck and crosshair, got %+v", fp.sprites)
	}
	if !fp.hasText("SCORE 0") || !fp.hasText("TIME 45") {
		t.Fatalf("unexpected HUD %+v", fp.texts)
	}
	if len(fp.overlays) != 0 {
		t.Fatalf("no overlay while playing, got %+v", fp.overlays)
	}
}

func TestRender_CrosshairHiddenOverHUD(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	fp := &fakePresenter{}
	m.Render(fp, at(time.Second), Point{X: 40, Y: ScreenHeight - 20})
	if fp.hasSprite(SpriteCrosshair) {
		t.Fatal("crosshair should not be drawn over the HUD band")
	}
}

func TestRender_GameOverShowsNewBest(t *testing.T) {
	m, _, _ := newTestMachine(t)
	startPlaying(t, m)
	m.Frame(at(time.Second), []Click{targetClick(t, m, at(time.Second))})
	m.Frame(at(60*time.Second), nil)
	fp := &fakePresenter{}
	m.Render(fp, at(61*time.Second), Point{})
	if len(fp.overlays) != 1 || fp.overlays[0] != ScreenGameOver {
		t.Fatalf("expected the game over overlay, got %+v", fp.overlays)
	}
	if !fp.hasText("NEW BEST!") || !fp.hasText("PLAY AGAIN") {
		t.Fatalf("unexpected texts %+v", fp.texts)
	}
}

func TestRender_ScoreboardListsEveryLevel(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Handle(EventViewScores, t0)
	fp := &fakePresenter{}
	m.Render(fp, t0, Point{})
	for _, want := range []string{"Level 1", "Level 2", "Level 3"} {
		if !fp.hasText(want) {
			t.Fatalf("scoreboard missing %q: %+v", want, fp.texts)
		}
	}
}
