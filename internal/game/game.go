package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"asciiglobe/internal/debug"
	"asciiglobe/internal/geo"
	"asciiglobe/internal/globe"
)

var (
	ErrNoCountries    = errors.New("no countries to play with")
	ErrUnknownCountry = errors.New("unknown country")
	ErrAlreadyGuessed = errors.New("country already guessed")
	ErrRoundOver      = errors.New("round is over")
)

// Options configures a game
type Options struct {
	Difficulty globe.Difficulty
	MaxGuesses int   // 0 means unlimited
	Seed       int64 // random seed for target selection
}

// Game holds the current round: target, guesses and status. Countries are
// the low detail set; guesses are matched on their display name.
type Game struct {
	mu sync.RWMutex

	countries []*geo.Feature
	byName    map[string]*geo.Feature // keyed by lower-cased name
	names     []string
	rng       *rand.Rand
	opts      Options

	round    int
	target   *geo.Feature
	guesses  []Guess
	revealed []*geo.Feature
	status   globe.Status
}

// New creates a game over the given countries
func New(countries []*geo.Feature, opts Options) (*Game, error) {
	g := &Game{
		byName: make(map[string]*geo.Feature, len(countries)),
		rng:    rand.New(rand.NewSource(opts.Seed)),
		opts:   opts,
		status: globe.StatusReady,
	}
	for _, f := range countries {
		name := f.Name()
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, exists := g.byName[key]; exists {
			continue
		}
		g.byName[key] = f
		g.countries = append(g.countries, f)
		g.names = append(g.names, name)
	}
	if len(g.countries) == 0 {
		return nil, ErrNoCountries
	}
	sort.Strings(g.names)
	return g, nil
}

// Names returns every guessable country name in alphabetical order
func (g *Game) Names() []string {
	return g.names
}

// Lookup finds a country by name, ignoring case
func (g *Game) Lookup(name string) (*geo.Feature, bool) {
	f, ok := g.byName[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// NewRound starts a round with a random target, different from the last
// one when there is a choice
func (g *Game) NewRound() {
	g.mu.Lock()
	defer g.mu.Unlock()

	target := g.countries[g.rng.Intn(len(g.countries))]
	if len(g.countries) > 1 {
		for target == g.target {
			target = g.countries[g.rng.Intn(len(g.countries))]
		}
	}
	g.start(target)
}

// StartRound starts a round with the named target
func (g *Game) StartRound(name string) error {
	target, ok := g.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.start(target)
	return nil
}

func (g *Game) start(target *geo.Feature) {
	g.round++
	g.target = target
	g.guesses = nil
	g.revealed = nil
	g.status = globe.StatusPlaying
	debug.Log("round_started", "round", g.round, "target", target.Name())
}

// Guess submits an answer. Wrong answers are added to the revealed trail
// with the next palette color; running out of guesses loses the round.
func (g *Game) Guess(name string) (Guess, error) {
	f, ok := g.Lookup(name)
	if !ok {
		return Guess{}, fmt.Errorf("%w: %q", ErrUnknownCountry, name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != globe.StatusPlaying {
		return Guess{}, ErrRoundOver
	}
	for _, prev := range g.guesses {
		if prev.Name() == f.Name() {
			return Guess{}, fmt.Errorf("%w: %s", ErrAlreadyGuessed, f.Name())
		}
	}

	guess := Guess{
		Feature:    f,
		Correct:    f == g.target,
		DistanceKm: geo.DistanceKm(f.Centroid(), g.target.Centroid()),
		Bearing:    geo.InitialBearing(f.Centroid(), g.target.Centroid()),
	}

	if guess.Correct {
		guess.DistanceKm = 0
		g.status = globe.StatusWon
	} else {
		guess.Feature = f.WithColor(globe.GuessColor(len(g.revealed)))
		g.revealed = append(g.revealed, guess.Feature)
		if g.opts.MaxGuesses > 0 && len(g.revealed) >= g.opts.MaxGuesses {
			g.status = globe.StatusLost
		}
	}
	g.guesses = append(g.guesses, guess)

	debug.Log("guess",
		"round", g.round,
		"name", f.Name(),
		"correct", guess.Correct,
		"distance_km", int(guess.DistanceKm),
		"status", g.status.String())

	return guess, nil
}

// GiveUp ends the current round and reveals the target
func (g *Game) GiveUp() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != globe.StatusPlaying {
		return ErrRoundOver
	}
	g.status = globe.StatusGivenUp
	debug.Log("round_given_up", "round", g.round, "target", g.target.Name())
	return nil
}

// SetDifficulty changes the difficulty of the base map
func (g *Game) SetDifficulty(d globe.Difficulty) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opts.Difficulty = d
}

// Round returns the number of rounds started
func (g *Game) Round() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.round
}

// Target returns the current target, nil before the first round
func (g *Game) Target() *geo.Feature {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.target
}

// Status returns the round status
func (g *Game) Status() globe.Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Guesses returns a copy of the guesses in submission order
func (g *Game) Guesses() []Guess {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Guess, len(g.guesses))
	copy(out, g.guesses)
	return out
}

// GuessesLeft returns the remaining guesses, or -1 when unlimited
func (g *Game) GuessesLeft() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.opts.MaxGuesses <= 0 {
		return -1
	}
	return g.opts.MaxGuesses - len(g.revealed)
}

// VisualState returns what the globe should show for the current round
func (g *Game) VisualState() globe.VisualState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	revealed := make([]*geo.Feature, len(g.revealed))
	copy(revealed, g.revealed)
	return globe.VisualState{
		Round:      g.round,
		Target:     g.target,
		Revealed:   revealed,
		Status:     g.status,
		Difficulty: g.opts.Difficulty,
	}
}
