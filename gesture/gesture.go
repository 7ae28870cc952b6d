// Package gesture turns a stream of pointer samples into playlist
// navigation: a side-to-side wave steps forward, a held fist steps back.
package gesture

import (
	"math"
	"time"
)

// Action is what a recognized gesture asks the playlist to do.
type Action int

const (
	None Action = iota
	Next
	Prev
)

func (a Action) String() string {
	switch a {
	case Next:
		return "next"
	case Prev:
		return "prev"
	default:
		return "none"
	}
}

// Config tunes wave recognition.
type Config struct {
	Window    int           `yaml:"window"`
	Amplitude float64       `yaml:"amplitude"`
	Flips     int           `yaml:"flips"`
	Cooldown  time.Duration `yaml:"cooldown"`
}

// DefaultConfig returns the stock recognizer settings.
func DefaultConfig() Config {
	return Config{Window: 15, Amplitude: 40, Flips: 3, Cooldown: 1200 * time.Millisecond}
}

// Sample is one observation of the tracked hand.
type Sample struct {
	X    float64
	Fist bool
	At   time.Duration
}

// Detector keeps the recent x history. Time comes from the samples, so it
// is deterministic under test.
type Detector struct {
	cfg   Config
	xs    []float64
	last  time.Duration
	fired bool
	name  string
}

func NewDetector(cfg Config) *Detector {
	if cfg.Window < 3 {
		cfg.Window = 3
	}
	return &Detector{cfg: cfg, xs: make([]float64, 0, cfg.Window)}
}

// Observe records s and returns the action it triggers, if any. Wave wins
// over fist when both match on the same sample.
func (d *Detector) Observe(s Sample) Action {
	d.xs = append(d.xs, s.X)
	if len(d.xs) > d.cfg.Window {
		d.xs = d.xs[len(d.xs)-d.cfg.Window:]
	}

	d.name = "open"
	if s.Fist {
		d.name = "fist"
	}

	ready := !d.fired || s.At-d.last > d.cfg.Cooldown
	if !ready {
		return None
	}

	switch {
	case d.waved():
		d.name = "wave"
		d.fire(s.At)
		return Next
	case s.Fist:
		d.fire(s.At)
		return Prev
	}
	return None
}

// Reset drops the history, e.g. when the pointer leaves the window.
func (d *Detector) Reset() {
	d.xs = d.xs[:0]
	d.name = ""
}

// Gesture names the last recognized hand shape for the HUD.
func (d *Detector) Gesture() string {
	if d.name == "" {
		return "-"
	}
	return d.name
}

func (d *Detector) fire(at time.Duration) {
	d.fired = true
	d.last = at
	d.xs = d.xs[:0]
}

func (d *Detector) waved() bool {
	if len(d.xs) < d.cfg.Window {
		return false
	}

	lo, hi := d.xs[0], d.xs[0]
	for _, x := range d.xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	flips := 0
	for i := 2; i < len(d.xs); i++ {
		v1 := d.xs[i-1] - d.xs[i-2]
		v2 := d.xs[i] - d.xs[i-1]
		if sign(v1) != sign(v2) {
			flips++
		}
	}
	return hi-lo > d.cfg.Amplitude && flips >= d.cfg.Flips
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
