// Package mocksource generates synthetic swing events for development
// and demos without pad hardware attached. It implements swing.Source,
// so downstream consumers cannot tell it apart from the real decoder.
package mocksource

import (
	"context"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ironsight-data/ironsight/internal/monitoring"
	"github.com/ironsight-data/ironsight/internal/swing"
	"github.com/ironsight-data/ironsight/internal/units"
)

// Preset names a player profile with characteristic dispersion.
type Preset string

const (
	ConsistentPlayer Preset = "consistent_player"
	Beginner         Preset = "beginner"
	Slicer           Preset = "slicer"
	Hooker           Preset = "hooker"
	TourPro          Preset = "tour_pro"
)

// metric is one Gaussian-distributed swing quantity.
type metric struct {
	Mean  float64
	Sigma float64
}

// profile describes the swing tendencies of one preset. Speed is a
// multiplier applied to the club's typical speed, not an absolute.
type profile struct {
	SpeedScale metric
	Face       metric
	Path       metric
	Contact    metric
	Tempo      metric
}

var profiles = map[Preset]profile{
	ConsistentPlayer: {
		SpeedScale: metric{1.00, 0.03},
		Face:       metric{0, 1.5},
		Path:       metric{0, 1.5},
		Contact:    metric{0, 0.5},
		Tempo:      metric{3.0, 0.2},
	},
	Beginner: {
		SpeedScale: metric{0.85, 0.10},
		Face:       metric{0, 5.0},
		Path:       metric{0, 5.0},
		Contact:    metric{0, 1.2},
		Tempo:      metric{2.6, 0.6},
	},
	Slicer: {
		SpeedScale: metric{0.95, 0.05},
		Face:       metric{5.0, 2.0},
		Path:       metric{-4.0, 2.0},
		Contact:    metric{0.5, 0.8},
		Tempo:      metric{2.8, 0.4},
	},
	Hooker: {
		SpeedScale: metric{0.95, 0.05},
		Face:       metric{-5.0, 2.0},
		Path:       metric{4.0, 2.0},
		Contact:    metric{-0.5, 0.8},
		Tempo:      metric{2.8, 0.4},
	},
	TourPro: {
		SpeedScale: metric{1.10, 0.02},
		Face:       metric{0, 0.8},
		Path:       metric{0, 0.8},
		Contact:    metric{0, 0.3},
		Tempo:      metric{3.0, 0.1},
	},
}

// typicalSpeeds holds amateur reference club speeds in mph, scaled by
// the preset's speed multiplier when sampling.
var typicalSpeeds = map[swing.ClubType]float64{
	swing.Driver:     95,
	swing.Wood3:      90,
	swing.Wood5:      88,
	swing.Wood7:      86,
	swing.Hybrid2:    87,
	swing.Hybrid3:    86,
	swing.Hybrid4:    85,
	swing.Hybrid5:    84,
	swing.Iron2:      86,
	swing.Iron3:      85,
	swing.Iron4:      84,
	swing.Iron5:      83,
	swing.Iron6:      81,
	swing.Iron7:      79,
	swing.Iron8:      77,
	swing.Iron9:      75,
	swing.PitchWedge: 72,
	swing.GapWedge:   68,
	swing.SandWedge:  64,
	swing.LobWedge:   60,
	swing.Putter:     8,
}

// Presets returns the known preset names.
func Presets() []Preset {
	return []Preset{ConsistentPlayer, Beginner, Slicer, Hooker, TourPro}
}

// Config controls the generator. Zero values take the defaults from
// DefaultConfig.
type Config struct {
	Club   swing.ClubType
	Preset Preset
	// MinInterval and MaxInterval bound the random pause between
	// generated swings.
	MinInterval time.Duration
	MaxInterval time.Duration
	// Seed fixes the random source; 0 seeds from the wall clock.
	Seed uint64
	// EventBuffer is the event channel capacity.
	EventBuffer int
}

// DefaultConfig returns a generator that swings every few seconds.
func DefaultConfig() Config {
	return Config{
		Club:        swing.Driver,
		Preset:      ConsistentPlayer,
		MinInterval: 3 * time.Second,
		MaxInterval: 8 * time.Second,
		EventBuffer: 16,
	}
}

// Generator produces synthetic swing events. Create with NewGenerator;
// the zero value is not usable.
type Generator struct {
	cfg     Config
	profile profile
	rng     *rand.Rand
	events  chan swing.Event
	trigger chan struct{}
	club    chan swing.ClubType
}

var _ swing.Source = (*Generator)(nil)

// NewGenerator builds a Generator for the given config. Unknown presets
// fall back to the consistent player.
func NewGenerator(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Club == "" {
		cfg.Club = def.Club
	}
	if cfg.Preset == "" {
		cfg.Preset = def.Preset
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = def.MinInterval
	}
	if cfg.MaxInterval < cfg.MinInterval {
		cfg.MaxInterval = cfg.MinInterval
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = def.EventBuffer
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	prof, ok := profiles[cfg.Preset]
	if !ok {
		monitoring.Logf("mocksource: unknown preset %q, using %s", cfg.Preset, ConsistentPlayer)
		prof = profiles[ConsistentPlayer]
	}

	return &Generator{
		cfg:     cfg,
		profile: prof,
		rng:     rand.New(rand.NewSource(seed)),
		events:  make(chan swing.Event, cfg.EventBuffer),
		trigger: make(chan struct{}, 1),
		club:    make(chan swing.ClubType, 1),
	}
}

// Events returns the channel synthetic events are delivered on.
func (g *Generator) Events() <-chan swing.Event {
	return g.events
}

// SetClub changes the club used for subsequent swings.
func (g *Generator) SetClub(c swing.ClubType) {
	select {
	case <-g.club:
	default:
	}
	g.club <- c
}

// TriggerSwing requests an immediate swing, skipping the remaining
// interval wait. A pending trigger is not stacked.
func (g *Generator) TriggerSwing() {
	select {
	case g.trigger <- struct{}{}:
	default:
	}
}

// Run generates swings until ctx is cancelled. The random sampling all
// happens on this goroutine, so a single Generator must not be Run
// twice concurrently.
func (g *Generator) Run(ctx context.Context) error {
	club := g.cfg.Club

	if err := g.emit(ctx, swing.Event{Kind: swing.EventConnected}); err != nil {
		return err
	}
	defer func() {
		select {
		case g.events <- swing.Event{Kind: swing.EventDisconnected}:
		default:
		}
	}()

	for {
		wait := g.nextInterval()
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-g.trigger:
			timer.Stop()
		case <-timer.C:
		}

		select {
		case club = <-g.club:
		default:
		}

		m := g.sample(club)
		monitoring.Logf("mocksource: %s swing %.1f mph face %.1f path %.1f",
			club, m.SpeedMPH, m.FaceAngleDeg, m.PathDeg)
		if err := g.emit(ctx, swing.Event{Kind: swing.EventSwing, Swing: &m}); err != nil {
			return err
		}
	}
}

func (g *Generator) emit(ctx context.Context, ev swing.Event) error {
	select {
	case g.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Generator) nextInterval() time.Duration {
	span := g.cfg.MaxInterval - g.cfg.MinInterval
	if span <= 0 {
		return g.cfg.MinInterval
	}
	return g.cfg.MinInterval + time.Duration(g.rng.Int63n(int64(span)))
}

// sample draws one swing from the preset's distributions and clamps it
// into the measurable range of the pad.
func (g *Generator) sample(club swing.ClubType) swing.ClubMeasurement {
	base, ok := typicalSpeeds[club]
	if !ok {
		base = 80
	}

	speed := base * g.draw(g.profile.SpeedScale)
	return swing.ClubMeasurement{
		SpeedMPH:     units.Clamp(speed, 30, 140),
		FaceAngleDeg: units.Clamp(g.draw(g.profile.Face), -15, 15),
		PathDeg:      units.Clamp(g.draw(g.profile.Path), -15, 15),
		ContactPoint: units.Clamp(g.draw(g.profile.Contact), -2, 2),
		TempoRatio:   units.Clamp(g.draw(g.profile.Tempo), 2, 4.5),
		Club:         club,
	}
}

func (g *Generator) draw(m metric) float64 {
	if m.Sigma <= 0 {
		return m.Mean
	}
	return distuv.Normal{Mu: m.Mean, Sigma: m.Sigma, Src: g.rng}.Rand()
}
