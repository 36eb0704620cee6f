package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/Garsondee/duck-hunt/internal/game"
)

const sampleRate = 44100

var soundFiles = map[game.SoundID]string{
	game.SoundClick:    "click",
	game.SoundShot:     "shot",
	game.SoundHit:      "hit",
	game.SoundEscape:   "escape",
	game.SoundGameOver: "gameover",
}

var trackFiles = map[game.TrackID]string{
	game.TrackMenu:  "menu",
	game.TrackRound: "round",
}

// Audio plays decoded clips through a single Ebiten audio context. Clips
// that failed to load are silent.
type Audio struct {
	ctx    *audio.Context
	sounds map[game.SoundID][]byte
	tracks map[game.TrackID][]byte
	volume float64
	logger *log.Logger

	music      *audio.Player
	musicTrack game.TrackID
}

// NewAudio decodes every clip under dir/sounds. A muted Audio never opens
// an audio device.
func NewAudio(dir string, volume float64, muted bool, logger *log.Logger) *Audio {
	a := &Audio{
		sounds: make(map[game.SoundID][]byte),
		tracks: make(map[game.TrackID][]byte),
		volume: volume,
		logger: logger,
	}
	if muted {
		return a
	}
	a.ctx = audio.NewContext(sampleRate)
	for id, name := range soundFiles {
		if pcm, err := loadClip(filepath.Join(dir, "sounds"), name); err != nil {
			logger.Printf("sound %s: %v", name, err)
		} else {
			a.sounds[id] = pcm
		}
	}
	for id, name := range trackFiles {
		if pcm, err := loadClip(filepath.Join(dir, "sounds"), name); err != nil {
			logger.Printf("track %s: %v", name, err)
		} else {
			a.tracks[id] = pcm
		}
	}
	return a
}

// loadClip decodes name.wav or name.mp3 to 16-bit stereo PCM.
func loadClip(dir, name string) ([]byte, error) {
	for _, ext := range []string{".wav", ".mp3"} {
		data, err := os.ReadFile(filepath.Join(dir, name+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var stream io.Reader
		switch ext {
		case ".wav":
			stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		case ".mp3":
			stream, err = mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s%s: %w", name, ext, err)
		}
		return io.ReadAll(stream)
	}
	return nil, fmt.Errorf("no %s.wav or %s.mp3 in %s", name, name, dir)
}

// PlaySound starts a one-shot clip.
func (a *Audio) PlaySound(id game.SoundID) {
	pcm, ok := a.sounds[id]
	if !ok || a.ctx == nil {
		return
	}
	p := a.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(a.volume)
	p.Play()
}

// PlayMusic switches the background track. Asking for the track that is
// already playing keeps it going.
func (a *Audio) PlayMusic(id game.TrackID, loop bool) {
	if a.ctx == nil {
		return
	}
	if a.music != nil && a.musicTrack == id && a.music.IsPlaying() {
		return
	}
	a.stopMusic()
	pcm, ok := a.tracks[id]
	if !ok {
		return
	}
	var src io.Reader = bytes.NewReader(pcm)
	if loop {
		src = audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	}
	p, err := a.ctx.NewPlayer(src)
	if err != nil {
		a.logger.Printf("music %s: %v", trackFiles[id], err)
		return
	}
	p.SetVolume(a.volume * 0.5)
	p.Play()
	a.music = p
	a.musicTrack = id
}

func (a *Audio) stopMusic() {
	if a.music == nil {
		return
	}
	if err := a.music.Close(); err != nil {
		a.logger.Printf("close music: %v", err)
	}
	a.music = nil
}
