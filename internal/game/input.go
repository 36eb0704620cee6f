package game

import "time"

// Button sizes in logical pixels.
const (
	ButtonWidth      = 220
	ButtonHeight     = 56
	SmallButtonWidth = 64
	HUDButtonWidth   = 110
	HUDButtonHeight  = 48
)

// Click is one discrete press drained from the input queue.
type Click struct {
	Pos Point
	At  time.Time
}

// Button is a clickable screen region that fires Event.
type Button struct {
	Label  string
	Event  Event
	Rect   Rect
	Sprite SpriteID
}

// IntentKind classifies what a click means on the current screen.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentButton
	IntentFire
)

// Intent is the domain action derived from one click.
type Intent struct {
	Kind  IntentKind
	Event Event // set for IntentButton
	Pos   Point
}

// Layout places the buttons of every screen and the playable area.
type Layout struct {
	buttons [screenCount][]Button
	play    Rect
}

func centered(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// DefaultLayout is the stock button placement for a ScreenWidth x
// ScreenHeight canvas.
func DefaultLayout() Layout {
	cx := float64(ScreenWidth) / 2
	hudY := float64(ScreenHeight) - HUDHeight/2
	var l Layout
	l.play = PlayArea()
	l.buttons[ScreenEntry] = []Button{
		{Label: "START", Event: EventStart, Rect: centered(cx, 340, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
		{Label: "SCORES", Event: EventViewScores, Rect: centered(cx, 420, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
	}
	l.buttons[ScreenLevelChoose] = []Button{
		{Label: "<", Event: EventLevelPrev, Rect: centered(cx-150, 330, SmallButtonWidth, ButtonHeight), Sprite: SpriteButtonSmall},
		{Label: ">", Event: EventLevelNext, Rect: centered(cx+150, 330, SmallButtonWidth, ButtonHeight), Sprite: SpriteButtonSmall},
		{Label: "PLAY", Event: EventPlay, Rect: centered(cx, 430, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
		{Label: "BACK", Event: EventBack, Rect: centered(cx, 510, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
	}
	l.buttons[ScreenPlaying] = []Button{
		{Label: "PAUSE", Event: EventPause, Rect: centered(ScreenWidth-200, hudY, HUDButtonWidth, HUDButtonHeight), Sprite: SpriteButtonHUD},
		{Label: "RESET", Event: EventReset, Rect: centered(ScreenWidth-75, hudY, HUDButtonWidth, HUDButtonHeight), Sprite: SpriteButtonHUD},
	}
	l.buttons[ScreenPaused] = []Button{
		{Label: "RESUME", Event: EventResume, Rect: centered(cx, 340, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
		{Label: "MENU", Event: EventQuitToMenu, Rect: centered(cx, 420, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
	}
	l.buttons[ScreenGameOver] = []Button{
		{Label: "PLAY AGAIN", Event: EventPlayAgain, Rect: centered(cx, 420, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
		{Label: "BACK", Event: EventBack, Rect: centered(cx, 500, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
	}
	l.buttons[ScreenScoreboard] = []Button{
		{Label: "BACK", Event: EventBack, Rect: centered(cx, 560, ButtonWidth, ButtonHeight), Sprite: SpriteButton},
	}
	return l
}

// Buttons returns the buttons shown on screen s.
func (l Layout) Buttons(s Screen) []Button {
	if s < 0 || s >= screenCount {
		return nil
	}
	return l.buttons[s]
}

// PlayArea is the region where clicks count as shots.
func (l Layout) PlayArea() Rect { return l.play }

// Map turns a click on screen s into at most one intent. Buttons win over
// the play area.
func (l Layout) Map(s Screen, p Point) Intent {
	for _, b := range l.Buttons(s) {
		if b.Rect.Contains(p) {
			return Intent{Kind: IntentButton, Event: b.Event, Pos: p}
		}
	}
	if s == ScreenPlaying && l.play.Contains(p) {
		return Intent{Kind: IntentFire, Pos: p}
	}
	return Intent{Pos: p}
}
