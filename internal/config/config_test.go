package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asciiglobe/internal/globe"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AspectRatio != 2.0 || cfg.Difficulty != globe.DifficultyEasy || cfg.Width != 800 || cfg.Height != 600 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("ASCIIGLOBE_DIFFICULTY", "hard")
	t.Setenv("ASCIIGLOBE_GUESSES", "5")
	t.Setenv("ASCIIGLOBE_MUTE", "true")

	cfg, err := Load([]string{"-difficulty", "medium", "-size", "1024x768", "-dpr", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Difficulty != globe.DifficultyMedium {
		t.Fatalf("flag should win over env, got %s", cfg.Difficulty)
	}
	if cfg.MaxGuesses != 5 || !cfg.Mute {
		t.Fatalf("env values not applied: %+v", cfg)
	}
	if cfg.Width != 1024 || cfg.Height != 768 || cfg.DPR != 2 {
		t.Fatalf("unexpected snapshot settings %+v", cfg)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ASCIIGLOBE_SEED=99\n"), 0644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("ASCIIGLOBE_SEED", "")
	os.Unsetenv("ASCIIGLOBE_SEED")

	LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env"))
	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 99 {
		t.Fatalf("expected seed from .env, got %d", cfg.Seed)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := [][]string{
		{"-a", "5"},
		{"-difficulty", "nightmare"},
		{"-dpr", "0.5"},
		{"-size", "800"},
		{"-guesses", "-1"},
		{"stray"},
	}
	for _, args := range cases {
		if _, err := Load(args, io.Discard); err == nil {
			t.Fatalf("expected an error for %v", args)
		}
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("ASCIIGLOBE_ASPECT", "wide")
	_, err := Load(nil, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "ASCIIGLOBE_ASPECT") {
		t.Fatalf("expected an env error, got %v", err)
	}
}

func TestLoad_Help(t *testing.T) {
	var out strings.Builder
	_, err := Load([]string{"-h"}, &out)
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "-difficulty") {
		t.Fatalf("usage should list flags")
	}
}

func TestGlobeOptions(t *testing.T) {
	cfg := Default()
	cfg.MinScale = 30
	opts := cfg.GlobeOptions()
	if opts.MinScale != 30 || opts.MaxScale != 20000 || opts.LODThreshold != 800 {
		t.Fatalf("unexpected options %+v", opts)
	}
}
