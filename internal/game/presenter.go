package game

import "image/color"

// SpriteID names a drawable image.
type SpriteID int

const (
	SpriteDuck SpriteID = iota
	SpriteCrosshair
	SpriteButton      // ButtonWidth x ButtonHeight
	SpriteButtonSmall // SmallButtonWidth x ButtonHeight
	SpriteButtonHUD   // HUDButtonWidth x HUDButtonHeight
)

// SoundID names a one-shot sound.
type SoundID int

const (
	SoundClick SoundID = iota
	SoundShot
	SoundHit
	SoundEscape
	SoundGameOver
)

// TrackID names a music track.
type TrackID int

const (
	TrackMenu TrackID = iota
	TrackRound
)

// Presenter is everything the core needs from the rendering and audio
// backend. Implementations must not call back into the core.
type Presenter interface {
	DrawBackground(level Level)
	DrawOverlayScreen(screen Screen)
	DrawText(content string, pos Point, c color.Color)
	DrawSprite(id SpriteID, pos Point)
	PlaySound(id SoundID)
	PlayMusic(id TrackID, loop bool)
}
