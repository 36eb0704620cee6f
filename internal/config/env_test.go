package config

import "testing"

func TestLoadFrom_Defaults(t *testing.T) {
	s, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ScoreFile != "scores.txt" || s.AssetDir != "assets" {
		t.Fatalf("unexpected paths: %+v", s)
	}
	if s.Mute || s.Volume != 0.6 || s.TPS != 60 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	s, err := LoadFrom(map[string]string{
		"DUCKHUNT_SCORE_FILE": "/tmp/ducks.txt",
		"DUCKHUNT_MUTE":       "true",
		"DUCKHUNT_VOLUME":     "0.25",
		"DUCKHUNT_TPS":        "120",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ScoreFile != "/tmp/ducks.txt" || !s.Mute || s.Volume != 0.25 || s.TPS != 120 {
		t.Fatalf("overrides not applied: %+v", s)
	}
}

func TestLoadFrom_RejectsBadVolume(t *testing.T) {
	if _, err := LoadFrom(map[string]string{"DUCKHUNT_VOLUME": "1.5"}); err == nil {
		t.Fatal("expected error for volume above 1")
	}
}

func TestLoadFrom_RejectsNonNumericTPS(t *testing.T) {
	if _, err := LoadFrom(map[string]string{"DUCKHUNT_TPS": "fast"}); err == nil {
		t.Fatal("expected parse error for non-numeric TPS")
	}
}

func TestLoadFrom_RejectsZeroTPS(t *testing.T) {
	if _, err := LoadFrom(map[string]string{"DUCKHUNT_TPS": "0"}); err == nil {
		t.Fatal("expected error for zero TPS")
	}
}
