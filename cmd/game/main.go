package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Garsondee/duck-hunt/internal/config"
	"github.com/Garsondee/duck-hunt/internal/game"
	"github.com/Garsondee/duck-hunt/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

type options struct {
	speed float64
}

// parseFlags reads the command line. Non-numeric or non-positive speeds are
// configuration errors.
func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("duck-hunt", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Float64Var(&opts.speed, "speed", 1.0, "game speed factor (0.5 - faster, 1 - default, 2 - slower)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := game.DefaultConfig(opts.speed).Validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg := game.DefaultConfig(opts.speed)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Duck Hunt")
	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(settings.TPS)
	if err := ebiten.RunGame(ui.New(cfg, settings, log.Default())); err != nil {
		log.Fatal(err)
	}
}
