package game

// Screen is the active screen. Exactly one is active at a time.
type Screen int

const (
	ScreenEntry Screen = iota
	ScreenLevelChoose
	ScreenPaused
	ScreenScoreboard
	ScreenGameOver
	ScreenPlaying
	screenCount
)

var screenNames = [screenCount]string{
	ScreenEntry:       "entry",
	ScreenLevelChoose: "level_choose",
	ScreenPaused:      "paused",
	ScreenScoreboard:  "scoreboard",
	ScreenGameOver:    "game_over",
	ScreenPlaying:     "playing",
}

func (s Screen) String() string {
	if s < 0 || s >= screenCount {
		return "unknown"
	}
	return screenNames[s]
}

// Event is a domain action that may move the state machine.
type Event int

const (
	EventNone Event = iota
	EventStart
	EventViewScores
	EventPlay
	EventBack
	EventLevelNext
	EventLevelPrev
	EventPause
	EventResume
	EventQuitToMenu
	EventReset
	EventPlayAgain
	EventTimeUp
)

var eventNames = map[Event]string{
	EventNone:       "none",
	EventStart:      "start",
	EventViewScores: "view_scores",
	EventPlay:       "play",
	EventBack:       "back",
	EventLevelNext:  "level_next",
	EventLevelPrev:  "level_prev",
	EventPause:      "pause",
	EventResume:     "resume",
	EventQuitToMenu: "quit_to_menu",
	EventReset:      "reset",
	EventPlayAgain:  "play_again",
	EventTimeUp:     "time_up",
}

func (e Event) String() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return "unknown"
}

// EffectKind names a side effect requested by a transition.
type EffectKind int

const (
	EffectStartRound EffectKind = iota
	EffectResetRound
	EffectPauseRound
	EffectResumeRound
	EffectRecordScore
	EffectLevelNext
	EffectLevelPrev
	EffectPlaySound
	EffectPlayMusic
)

// Effect is one side effect. Sound is set for EffectPlaySound, Track and
// Loop for EffectPlayMusic.
type Effect struct {
	Kind  EffectKind
	Sound SoundID
	Track TrackID
	Loop  bool
}

var (
	clickSound    = Effect{Kind: EffectPlaySound, Sound: SoundClick}
	gameOverSound = Effect{Kind: EffectPlaySound, Sound: SoundGameOver}
	menuMusic     = Effect{Kind: EffectPlayMusic, Track: TrackMenu, Loop: true}
	roundMusic    = Effect{Kind: EffectPlayMusic, Track: TrackRound, Loop: true}
)

// Transition is the pure state machine. Events that do not apply to s
// return s unchanged with no effects.
func Transition(s Screen, e Event) (Screen, []Effect) {
	switch s {
	case ScreenEntry:
		switch e {
		case EventStart:
			return ScreenLevelChoose, []Effect{clickSound}
		case EventViewScores:
			return ScreenScoreboard, []Effect{clickSound}
		}
	case ScreenLevelChoose:
		switch e {
		case EventPlay:
			return ScreenPlaying, []Effect{clickSound, {Kind: EffectStartRound}, roundMusic}
		case EventBack:
			return ScreenEntry, []Effect{clickSound}
		case EventLevelNext:
			return ScreenLevelChoose, []Effect{clickSound, {Kind: EffectLevelNext}}
		case EventLevelPrev:
			return ScreenLevelChoose, []Effect{clickSound, {Kind: EffectLevelPrev}}
		}
	case ScreenPlaying:
		switch e {
		case EventPause:
			return ScreenPaused, []Effect{clickSound, {Kind: EffectPauseRound}}
		case EventReset:
			return ScreenPlaying, []Effect{clickSound, {Kind: EffectResetRound}}
		case EventTimeUp:
			return ScreenGameOver, []Effect{{Kind: EffectRecordScore}, gameOverSound, menuMusic}
		}
	case ScreenPaused:
		switch e {
		case EventResume:
			return ScreenPlaying, []Effect{clickSound, {Kind: EffectResumeRound}}
		case EventQuitToMenu:
			return ScreenLevelChoose, []Effect{clickSound, menuMusic}
		}
	case ScreenGameOver:
		switch e {
		case EventPlayAgain:
			return ScreenPlaying, []Effect{clickSound, {Kind: EffectStartRound}, roundMusic}
		case EventBack:
			return ScreenLevelChoose, []Effect{clickSound}
		}
	case ScreenScoreboard:
		if e == EventBack {
			return ScreenEntry, []Effect{clickSound}
		}
	}
	return s, nil
}
