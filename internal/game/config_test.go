package game

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig(1).Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestSpawnInterval_DecreasesWithLevel(t *testing.T) {
	for _, s := range []float64{0.1, 0.5, 1, 2, 3.7} {
		cfg := DefaultConfig(s)
		for _, l := range []Level{Level1, Level2} {
			if cfg.SpawnInterval(l) <= cfg.SpawnInterval(l+1) {
				t.Fatalf("speed %.2f: interval(%s)=%s should exceed interval(%s)=%s",
					s, l, cfg.SpawnInterval(l), l+1, cfg.SpawnInterval(l+1))
			}
		}
	}
}

func TestSpawnInterval_IncreasesWithSpeed(t *testing.T) {
	speeds := []float64{0.1, 0.5, 1, 2, 3.7}
	for _, l := range Levels() {
		for i := 1; i < len(speeds); i++ {
			lo := DefaultConfig(speeds[i-1]).SpawnInterval(l)
			hi := DefaultConfig(speeds[i]).SpawnInterval(l)
			if hi <= lo {
				t.Fatalf("%s: interval at speed %.2f (%s) should exceed speed %.2f (%s)",
					l, speeds[i], hi, speeds[i-1], lo)
			}
		}
	}
}

func TestSpawnInterval_DefaultSpeedMatchesTable(t *testing.T) {
	cfg := DefaultConfig(1)
	if got := cfg.SpawnInterval(Level2); got != cfg.SpawnIntervals[1] {
		t.Fatalf("expected %s, got %s", cfg.SpawnIntervals[1], got)
	}
	if got := DefaultConfig(0.5).SpawnInterval(Level1); got != time.Second {
		t.Fatalf("expected half of 2s, got %s", got)
	}
}

func TestValidateSpeed_RejectsBadValues(t *testing.T) {
	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := ValidateSpeed(s); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("speed %v: expected ErrInvalidConfig, got %v", s, err)
		}
	}
	if err := ValidateSpeed(0.01); err != nil {
		t.Fatalf("small positive speed should be valid, got %v", err)
	}
}

func TestValidate_RejectsNonDecreasingIntervals(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.SpawnIntervals[2] = cfg.SpawnIntervals[1]
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_RejectsEmptyBounds(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.Bounds = Rect{}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBounds_KeepTargetAboveHUD(t *testing.T) {
	b := DefaultConfig(1).Bounds
	if b.X-TargetRadius < 0 || b.Y-TargetRadius < 0 {
		t.Fatalf("bounds %+v let the target poke off the top-left edge", b)
	}
	if b.X+b.W+TargetRadius > ScreenWidth {
		t.Fatalf("bounds %+v let the target poke off the right edge", b)
	}
	if b.Y+b.H+TargetRadius > ScreenHeight-HUDHeight {
		t.Fatalf("bounds %+v let the target overlap the HUD band", b)
	}
}

func TestValidate_RejectsSpeedThatOverflowsInterval(t *testing.T) {
	for _, s := range []float64{5e9, 1e10, math.MaxFloat64} {
		cfg := DefaultConfig(s)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("speed %v: expected ErrInvalidConfig, got %v (L1=%s)", s, err, cfg.SpawnInterval(Level1))
		}
	}
}

func TestValidate_RejectsSpeedThatRoundsIntervalToZero(t *testing.T) {
	for _, s := range []float64{5e-10, 1e-9, math.SmallestNonzeroFloat64} {
		if err := DefaultConfig(s).Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("speed %v: expected ErrInvalidConfig, got %v", s, err)
		}
	}
}

func TestValidate_RejectsSpeedThatCollapsesLevels(t *testing.T) {
	cfg := DefaultConfig(0.6)
	cfg.SpawnIntervals = [LevelCount]time.Duration{3, 2, 1}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for equal scaled intervals, got %v", err)
	}
}

func TestValidate_ExtremeAcceptedSpeedsKeepOrdering(t *testing.T) {
	for _, s := range []float64{1e-8, 4e9} {
		cfg := DefaultConfig(s)
		if err := cfg.Validate(); err != nil {
			t.Fatalf("speed %v should validate, got %v", s, err)
		}
		for _, l := range []Level{Level1, Level2} {
			hi, lo := cfg.SpawnInterval(l), cfg.SpawnInterval(l+1)
			if lo <= 0 || hi <= lo {
				t.Fatalf("speed %v: interval(%s)=%s should exceed interval(%s)=%s > 0", s, l, hi, l+1, lo)
			}
		}
	}
}

func TestTick_LargestValidSpeedDoesNotEscapeImmediately(t *testing.T) {
	tr := NewTestRound(WithSpeed(4e9))
	if res := tr.Advance(FrameStep); res.Escaped {
		t.Fatal("target escaped on the first frame at a valid speed")
	}
}
