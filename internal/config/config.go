package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"asciiglobe/internal/globe"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "ASCIIGLOBE_"

// ErrHelp is returned by Load when -h was given
var ErrHelp = flag.ErrHelp

// Config holds the command line and environment settings
type Config struct {
	CacheDir    string  // Natural Earth download cache
	DataDir     string  // optional directory with shapefiles or GeoJSON, skips the download
	DebugLog    string  // debug log file, empty disables logging
	AspectRatio float64 // terminal character height to width
	Difficulty  globe.Difficulty
	MaxGuesses  int
	Seed        int64
	Mute        bool    // no terminal bell on camera transitions
	MinScale    float64 // smallest globe scale in the terminal

	Snapshot string  // write one PNG frame here instead of starting the UI
	Target   string  // snapshot target country
	DPR      float64 // snapshot device pixel ratio
	Width    int     // snapshot width in logical pixels
	Height   int     // snapshot height in logical pixels
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		AspectRatio: 2.0,
		Difficulty:  globe.DifficultyEasy,
		MinScale:    40,
		DPR:         1,
		Width:       800,
		Height:      600,
	}
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are ignored and existing variables win.
func LoadEnvFiles(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load builds the configuration: defaults, then ASCIIGLOBE_* environment
// variables, then command line flags. Usage goes to out.
func Load(args []string, out io.Writer) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	difficulty := cfg.Difficulty.String()
	size := fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)

	fs := flag.NewFlagSet("asciiglobe", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(out, "asciiglobe - Terminal geography guessing game on an orthographic globe")
		fmt.Fprintln(out, "\nUsage: asciiglobe [options]")
		fmt.Fprintln(out, "\nOptions:")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.CacheDir, "cache", cfg.CacheDir, "Cache directory for map data (default: ~/.asciiglobe/data)")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory with Natural Earth shapefiles or GeoJSON (skips download)")
	fs.StringVar(&cfg.DebugLog, "d", cfg.DebugLog, "Debug log file (e.g., debug.log)")
	fs.Float64Var(&cfg.AspectRatio, "a", cfg.AspectRatio, "Character aspect ratio - adjust for font width (1.0-4.0)")
	fs.StringVar(&difficulty, "difficulty", difficulty, "Base map difficulty: easy, medium, hard or extreme")
	fs.IntVar(&cfg.MaxGuesses, "guesses", cfg.MaxGuesses, "Wrong guesses allowed per round (0 = unlimited)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for target selection (0 = time based)")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable the terminal bell")
	fs.Float64Var(&cfg.MinScale, "min-scale", cfg.MinScale, "Smallest globe scale in the terminal")
	fs.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "Render one round-start frame to this PNG file and exit")
	fs.StringVar(&cfg.Target, "target", cfg.Target, "Target country for -snapshot (default: random)")
	fs.Float64Var(&cfg.DPR, "dpr", cfg.DPR, "Device pixel ratio for -snapshot (1-4)")
	fs.StringVar(&size, "size", size, "Logical size for -snapshot, WIDTHxHEIGHT")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	d, err := globe.ParseDifficulty(difficulty)
	if err != nil {
		return cfg, err
	}
	cfg.Difficulty = d

	if cfg.Width, cfg.Height, err = parseSize(size); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.AspectRatio < 1.0 || c.AspectRatio > 4.0 {
		return errors.New("aspect ratio must be between 1.0 and 4.0")
	}
	if c.MaxGuesses < 0 {
		return errors.New("guesses must not be negative")
	}
	if c.MinScale < 1 || c.MinScale > 20000 {
		return errors.New("min scale must be between 1 and 20000")
	}
	if c.DPR < 1 || c.DPR > 4 {
		return errors.New("device pixel ratio must be between 1 and 4")
	}
	if c.Width < 1 || c.Height < 1 {
		return errors.New("snapshot size must be positive")
	}
	return nil
}

// GlobeOptions returns the camera settings for the terminal globe
func (c Config) GlobeOptions() globe.Options {
	opts := globe.DefaultOptions()
	opts.MinScale = c.MinScale
	return opts
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, parse func(string) error) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			if err := parse(v); err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			}
		}
	}

	str("CACHE_DIR", &c.CacheDir)
	str("DATA_DIR", &c.DataDir)
	str("DEBUG_LOG", &c.DebugLog)
	num("ASPECT", func(v string) (err error) {
		c.AspectRatio, err = strconv.ParseFloat(v, 64)
		return err
	})
	num("DIFFICULTY", func(v string) (err error) {
		c.Difficulty, err = globe.ParseDifficulty(v)
		return err
	})
	num("GUESSES", func(v string) (err error) {
		c.MaxGuesses, err = strconv.Atoi(v)
		return err
	})
	num("SEED", func(v string) (err error) {
		c.Seed, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	num("MUTE", func(v string) (err error) {
		c.Mute, err = strconv.ParseBool(v)
		return err
	})
	num("MIN_SCALE", func(v string) (err error) {
		c.MinScale, err = strconv.ParseFloat(v, 64)
		return err
	})

	return errors.Join(errs...)
}

func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return width, height, nil
}
