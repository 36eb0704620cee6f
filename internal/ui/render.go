package ui

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/duck-hunt/internal/game"
)

// skyColors tints the fallback background per level, dawn to dusk.
var skyColors = [game.LevelCount]color.RGBA{
	{R: 120, G: 190, B: 250, A: 255},
	{R: 250, G: 170, B: 110, A: 255},
	{R: 60, G: 50, B: 110, A: 255},
}

var (
	grassColor   = color.RGBA{R: 60, G: 140, B: 50, A: 255}
	hudColor     = color.RGBA{R: 18, G: 20, B: 18, A: 255}
	overlayColor = color.RGBA{R: 0, G: 0, B: 0, A: 150}
	buttonFill   = color.RGBA{R: 45, G: 60, B: 45, A: 235}
	buttonEdge   = color.RGBA{R: 140, G: 190, B: 140, A: 255}
	duckBody     = color.RGBA{R: 110, G: 70, B: 40, A: 255}
	duckHead     = color.RGBA{R: 30, G: 110, B: 50, A: 255}
	duckBeak     = color.RGBA{R: 250, G: 190, B: 40, A: 255}
	crossColor   = color.RGBA{R: 230, G: 40, B: 40, A: 255}
)

// Presenter draws onto the frame handed to begin and forwards sound calls
// to Audio. Images that fail to load are drawn as vector shapes.
type Presenter struct {
	dst         *ebiten.Image
	face        *text.GoXFace
	audio       *Audio
	duck        *ebiten.Image
	crosshair   *ebiten.Image
	backgrounds [game.LevelCount]*ebiten.Image
}

// NewPresenter loads sprites from dir/images.
func NewPresenter(dir string, a *Audio, logger *log.Logger) *Presenter {
	p := &Presenter{
		face:  text.NewGoXFace(basicfont.Face7x13),
		audio: a,
	}
	load := func(name string) *ebiten.Image {
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(dir, "images", name))
		if err != nil {
			logger.Printf("image %s: %v; using fallback shape", name, err)
			return nil
		}
		return img
	}
	p.duck = load("duck.png")
	p.crosshair = load("crosshair.png")
	for i := range p.backgrounds {
		p.backgrounds[i] = load(fmt.Sprintf("background%d.png", i+1))
	}
	return p
}

func (p *Presenter) begin(dst *ebiten.Image) {
	p.dst = dst
}

// DrawBackground fills the sky, ground and HUD band for level.
func (p *Presenter) DrawBackground(level game.Level) {
	idx := int(level) - 1
	if idx < 0 || idx >= game.LevelCount {
		idx = 0
	}
	w, h := float32(game.ScreenWidth), float32(game.ScreenHeight)
	playH := h - game.HUDHeight
	if bg := p.backgrounds[idx]; bg != nil {
		b := bg.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(playH)/float64(b.Dy()))
		p.dst.DrawImage(bg, op)
	} else {
		p.dst.Fill(skyColors[idx])
		vector.FillRect(p.dst, 0, playH-60, w, 60, grassColor, false)
	}
	vector.FillRect(p.dst, 0, playH, w, game.HUDHeight, hudColor, false)
	vector.StrokeLine(p.dst, 0, playH, w, playH, 2, buttonEdge, false)
}

// DrawOverlayScreen dims everything drawn so far. Menus sit on top of it.
func (p *Presenter) DrawOverlayScreen(screen game.Screen) {
	a := overlayColor
	if screen == game.ScreenEntry || screen == game.ScreenScoreboard {
		a.A = 190
	}
	vector.FillRect(p.dst, 0, 0, game.ScreenWidth, game.ScreenHeight, a, false)
}

// DrawText draws content with its top-left corner at pos.
func (p *Presenter) DrawText(content string, pos game.Point, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(p.dst, content, p.face, op)
}

// DrawSprite draws id centred on pos.
func (p *Presenter) DrawSprite(id game.SpriteID, pos game.Point) {
	x, y := float32(pos.X), float32(pos.Y)
	switch id {
	case game.SpriteDuck:
		if p.duck != nil {
			p.drawCentered(p.duck, pos, 2*game.TargetRadius)
			return
		}
		r := float32(game.TargetRadius)
		vector.FillCircle(p.dst, x, y+r*0.15, r*0.75, duckBody, true)
		vector.FillCircle(p.dst, x+r*0.45, y-r*0.45, r*0.4, duckHead, true)
		vector.FillRect(p.dst, x+r*0.8, y-r*0.5, r*0.35, r*0.15, duckBeak, false)
	case game.SpriteCrosshair:
		if p.crosshair != nil {
			p.drawCentered(p.crosshair, pos, 48)
			return
		}
		vector.StrokeCircle(p.dst, x, y, 16, 2, crossColor, true)
		vector.StrokeLine(p.dst, x-24, y, x+24, y, 2, crossColor, false)
		vector.StrokeLine(p.dst, x, y-24, x, y+24, 2, crossColor, false)
	case game.SpriteButton:
		p.drawButton(x, y, game.ButtonWidth, game.ButtonHeight)
	case game.SpriteButtonSmall:
		p.drawButton(x, y, game.SmallButtonWidth, game.ButtonHeight)
	case game.SpriteButtonHUD:
		p.drawButton(x, y, game.HUDButtonWidth, game.HUDButtonHeight)
	}
}

func (p *Presenter) drawButton(cx, cy, w, h float32) {
	vector.FillRect(p.dst, cx-w/2, cy-h/2, w, h, buttonFill, false)
	vector.StrokeRect(p.dst, cx-w/2, cy-h/2, w, h, 2, buttonEdge, false)
}

// drawCentered scales img so its larger side is size pixels.
func (p *Presenter) drawCentered(img *ebiten.Image, pos game.Point, size float64) {
	b := img.Bounds()
	side := float64(max(b.Dx(), b.Dy()))
	s := size / side
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(pos.X, pos.Y)
	p.dst.DrawImage(img, op)
}

// PlaySound implements game.Presenter.
func (p *Presenter) PlaySound(id game.SoundID) {
	p.audio.PlaySound(id)
}

// PlayMusic implements game.Presenter.
func (p *Presenter) PlayMusic(id game.TrackID, loop bool) {
	p.audio.PlayMusic(id, loop)
}
