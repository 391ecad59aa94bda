package ecs

import (
	"fmt"
	"math"
	"time"
)

// DefaultDeltaMillis is the delta assumed when Tick is called with 0,
// matching a 60Hz frame.
const DefaultDeltaMillis = 16.0

// Ticker advances a world one logical frame at a time. It tracks the tick
// count, an fps estimate derived from the last delta, and the wall-clock
// time of the last tick. Start and Stop gate the host loop; Tick itself
// runs whether or not the ticker is marked running, so a stopped engine
// can still be single-stepped (the counters keep advancing).
type Ticker struct {
	world  *World
	runner *Runner

	running bool
	tick    uint64
	fps     int
	last    time.Time
}

// Status is a read-only snapshot of ticker state.
type Status struct {
	Running  bool
	Tick     uint64
	FPS      int
	LastTick time.Time
}

func NewTicker(w *World, r *Runner) *Ticker {
	return &Ticker{world: w, runner: r}
}

// Start marks the ticker running and resets the timing baseline. Tick and
// fps counters are untouched, so stop/start cycles don't lose history.
func (t *Ticker) Start() {
	t.running = true
	t.last = time.Now()
}

// Stop marks the ticker stopped without resetting any counters.
func (t *Ticker) Stop() {
	t.running = false
}

// Tick advances one logical frame: it validates the delta, runs every
// system with the delta in seconds, increments the tick counter, and
// refreshes the fps estimate. A deltaMs of 0 means "no delta supplied"
// and uses DefaultDeltaMillis. Negative or non-finite deltas fail with
// ErrInvalidDelta before any system runs. System errors are returned
// joined but do not stop the tick from being counted.
func (t *Ticker) Tick(deltaMs float64) error {
	if deltaMs == 0 {
		deltaMs = DefaultDeltaMillis
	}
	if deltaMs < 0 || math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) {
		return fmt.Errorf("tick %g ms: %w", deltaMs, ErrInvalidDelta)
	}

	err := t.runner.Run(t.world, deltaMs/1000)

	t.tick++
	t.fps = int(math.Round(1000 / deltaMs))
	t.last = time.Now()
	return err
}

func (t *Ticker) Status() Status {
	return Status{
		Running:  t.running,
		Tick:     t.tick,
		FPS:      t.fps,
		LastTick: t.last,
	}
}

func (t *Ticker) World() *World {
	return t.world
}
