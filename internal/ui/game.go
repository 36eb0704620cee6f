package ui

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/duck-hunt/internal/config"
	"github.com/Garsondee/duck-hunt/internal/game"
)

// Game adapts game.Machine to ebiten.Game: it samples input once per tick,
// runs the machine's frame and renders through Presenter.
type Game struct {
	machine  *game.Machine
	clock    game.Clock
	view     *Presenter
	feed     *Feed
	roundLog *game.RoundLog
	logger   *log.Logger

	touches []ebiten.TouchID
	cursor  ebiten.CursorModeType
}

// New wires the machine, score store, audio and presenter together.
func New(cfg game.Config, s config.Settings, logger *log.Logger) *Game {
	prefixed := func(p string) *log.Logger {
		return log.New(logger.Writer(), p, logger.Flags())
	}
	a := NewAudio(s.AssetDir, s.Volume, s.Mute, prefixed("[audio] "))
	view := NewPresenter(s.AssetDir, a, prefixed("[assets] "))
	rl := game.NewRoundLog(false)
	store := game.NewScoreStore(s.ScoreFile, prefixed("[scores] "))
	m := game.NewMachine(cfg, store, view,
		game.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))), // #nosec G404 -- game only
		game.WithRoundLog(rl),
		game.WithLogger(prefixed("[game] ")),
	)
	m.Begin()
	return &Game{
		machine:  m,
		clock:    game.SystemClock{},
		view:     view,
		feed:     NewFeed(),
		roundLog: rl,
		logger:   logger,
		cursor:   ebiten.CursorModeVisible,
	}
}

// Update runs one logical frame.
func (g *Game) Update() error {
	now := g.clock.Now()
	in := game.FrameInput{
		Clicks:      g.drainClicks(now),
		TogglePause: inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP),
	}
	if g.machine.Screen() == game.ScreenScoreboard && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := copyScoreboard(g.machine.Records()); err != nil {
			g.logger.Printf("copy scoreboard: %v", err)
		}
	}

	g.machine.Step(now, in)
	g.feed.Sync(g.roundLog)
	g.syncCursor()
	return nil
}

// drainClicks collects this tick's mouse and touch presses in arrival order.
func (g *Game) drainClicks(now time.Time) []game.Click {
	var clicks []game.Click
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		clicks = append(clicks, game.Click{Pos: game.Point{X: float64(x), Y: float64(y)}, At: now})
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		clicks = append(clicks, game.Click{Pos: game.Point{X: float64(x), Y: float64(y)}, At: now})
	}
	return clicks
}

// syncCursor hides the system cursor while the crosshair is shown.
func (g *Game) syncCursor() {
	want := ebiten.CursorModeVisible
	if g.machine.Screen() == game.ScreenPlaying {
		want = ebiten.CursorModeHidden
	}
	if want != g.cursor {
		ebiten.SetCursorMode(want)
		g.cursor = want
	}
}

// Draw renders the current screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.view.begin(screen)
	x, y := ebiten.CursorPosition()
	g.machine.Render(g.view, g.clock.Now(), game.Point{X: float64(x), Y: float64(y)})
	switch g.machine.Screen() {
	case game.ScreenPlaying, game.ScreenPaused:
		g.feed.Draw(g.view)
	}
}

// Layout keeps a fixed logical canvas and lets Ebiten scale it.
func (g *Game) Layout(_, _ int) (int, int) {
	return game.ScreenWidth, game.ScreenHeight
}
