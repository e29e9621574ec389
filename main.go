package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"asciiglobe/internal/cache"
	"asciiglobe/internal/config"
	"asciiglobe/internal/debug"
	"asciiglobe/internal/game"
	"asciiglobe/internal/geo"
	"asciiglobe/internal/globe"
	"asciiglobe/internal/render"
	"asciiglobe/internal/ui"

	"github.com/gdamore/tcell/v2"
)

// noFrames drops frame requests; a snapshot never animates
type noFrames struct{}

func (noFrames) RequestFrame(func(time.Time)) {}

func main() {
	config.LoadEnvFiles(".env")
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, config.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up debug logging if requested
	if cfg.DebugLog != "" {
		logFile, err := os.Create(cfg.DebugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			debug.SetOutput(logFile)
			debug.Log("debug_log_started", "difficulty", cfg.Difficulty.String())
			fmt.Printf("Debug logging enabled: %s\n", cfg.DebugLog)
		}
	}

	features, err := loadFeatures(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d countries (%d high detail), %d land masses\n",
		len(features.Countries.Low), len(features.Countries.High), len(features.Land.Low))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := game.New(features.Countries.Low, game.Options{
		Difficulty: cfg.Difficulty,
		MaxGuesses: cfg.MaxGuesses,
		Seed:       seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Snapshot != "" {
		if err := writeSnapshot(cfg, features, g); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", cfg.Snapshot)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	opts := cfg.GlobeOptions()
	app := ui.NewApp(screen, g, func(frames globe.FrameRequester, sound globe.SoundCue) *globe.Globe {
		return globe.New(features, frames, sound, opts)
	}, ui.Options{AspectRatio: cfg.AspectRatio, Mute: cfg.Mute})

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}

// loadFeatures reads a local data directory or the Natural Earth cache,
// downloading what is missing
func loadFeatures(cfg config.Config) (geo.FeatureSet, error) {
	if cfg.DataDir != "" {
		fmt.Printf("Loading geographic features from %s...\n", cfg.DataDir)
		return geo.LoadFeatureSet(cfg.DataDir)
	}

	fmt.Println("Initializing map data cache...")
	cacheManager, err := cache.NewManager(cfg.CacheDir)
	if err != nil {
		return geo.FeatureSet{}, fmt.Errorf("failed to initialize cache: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Checking Natural Earth data...")
	if err := cacheManager.EnsureData(ctx); err != nil {
		return geo.FeatureSet{}, fmt.Errorf("failed to download map data: %w", err)
	}

	fmt.Println("Loading geographic features...")
	features, err := geo.NewShapefileLoader(cacheManager.GetCacheDir()).LoadAll()
	if err != nil {
		return geo.FeatureSet{}, fmt.Errorf("failed to load shapefiles: %w", err)
	}
	return features, nil
}

// writeSnapshot renders the round-start view of one target to a PNG
func writeSnapshot(cfg config.Config, features geo.FeatureSet, g *game.Game) error {
	if cfg.Target != "" {
		if err := g.StartRound(cfg.Target); err != nil {
			return err
		}
	} else {
		g.NewRound()
	}

	gl := globe.New(features, noFrames{}, nil, globe.DefaultOptions())
	gl.Resize(globe.Viewport{Width: float64(cfg.Width), Height: float64(cfg.Height)})
	gl.SetVisualState(g.VisualState())

	canvas := render.NewImageCanvas(cfg.Width, cfg.Height, cfg.DPR)
	gl.Render(canvas)

	f, err := os.Create(cfg.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer f.Close()

	if err := canvas.WritePNG(f); err != nil {
		return err
	}
	return f.Close()
}
