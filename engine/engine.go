// Package engine ties the ECS core to its collaborators: prefab
// archetypes, the level loader, scripted systems, and a fixed-timestep
// host loop. One goroutine owns an Engine; the core has no internal
// locking.
package engine

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/system"
	"github.com/milk9111/doomlite/level"
	"github.com/milk9111/doomlite/prefabs"
	"github.com/milk9111/doomlite/script"
)

type Engine struct {
	cfg   Config
	specs map[string]prefabs.EntitySpec

	world  *ecs.World
	runner *ecs.Runner
	ticker *ecs.Ticker
	lvl    *level.Level

	scripts []*script.System
	accum   float64
}

// New builds an engine with the built-in prefab archetypes and an empty
// world. Stepping before a level loads is a harmless no-op.
func New(cfg Config) (*Engine, error) {
	specs, err := prefabs.DefaultSpecs()
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg.withDefaults(), specs: specs}
	e.world = ecs.NewWorld()
	e.runner = ecs.NewRunner()
	e.ticker = ecs.NewTicker(e.world, e.runner)
	return e, nil
}

// AddScript registers a scripted system. It runs after the built-in
// systems, in add order, for the current world and every level loaded
// after.
func (e *Engine) AddScript(s *script.System) {
	if s == nil {
		return
	}
	e.scripts = append(e.scripts, s)
	e.runner.Add(s)
}

// LoadLevel populates a fresh world from lvl and swaps it in. The swap is
// all-or-nothing: a malformed level leaves the running world untouched
// and zero new entities behind.
func (e *Engine) LoadLevel(lvl *level.Level) error {
	w := ecs.NewWorld()
	if err := lvl.Populate(w, e.specs); err != nil {
		return err
	}

	r := ecs.NewRunner(
		system.NewGravitySystem(e.cfg.Gravity, lvl.Floor()),
		system.NewShootingSystem(e.cfg.ProjectileLifetime),
		system.NewLifetimeSystem(),
		system.NewHealthSystem(),
	)
	for _, s := range e.scripts {
		r.Add(s)
	}

	e.world = w
	e.runner = r
	e.lvl = lvl

	running := e.ticker != nil && e.ticker.Status().Running
	e.ticker = ecs.NewTicker(w, r)
	if running {
		e.ticker.Start()
	}
	return nil
}

// LoadLevelFile loads and decodes path, then swaps the level in.
func (e *Engine) LoadLevelFile(path string) error {
	lvl, err := level.Load(path)
	if err != nil {
		return err
	}
	return e.LoadLevel(lvl)
}

// Step advances one logical frame; 0 means the default delta.
func (e *Engine) Step(deltaMs float64) error {
	return e.ticker.Tick(deltaMs)
}

func (e *Engine) Start() {
	e.ticker.Start()
}

func (e *Engine) Stop() {
	e.ticker.Stop()
}

func (e *Engine) Status() ecs.Status {
	return e.ticker.Status()
}

func (e *Engine) World() *ecs.World {
	return e.world
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Level() *level.Level {
	return e.lvl
}

// Advance adds real elapsed time to the fixed-step accumulator and
// drains it in whole FixedStep ticks. Leftover time below one step
// carries over to the next call, so simulation speed doesn't drift with
// scheduler jitter. Errors from the drained ticks are returned joined;
// the remaining ticks of the same call still run.
func (e *Engine) Advance(elapsed time.Duration) error {
	e.accum += elapsed.Seconds()

	stepMs := e.cfg.FixedStep * 1000
	var errs []error
	// the epsilon absorbs float residue so an exact multiple of
	// FixedStep drains completely
	for e.accum+1e-12 >= e.cfg.FixedStep {
		if err := e.Step(stepMs); err != nil {
			errs = append(errs, err)
		}
		e.accum -= e.cfg.FixedStep
	}
	return errors.Join(errs...)
}

// Run drives Advance from a wall-clock ticker until ctx is cancelled.
// System errors are logged and the loop keeps going; only cancellation
// stops it.
func (e *Engine) Run(ctx context.Context) error {
	e.ticker.Start()
	defer e.Stop()

	interval := time.Duration(e.cfg.TickMillis * float64(time.Millisecond))
	loop := time.NewTicker(interval)
	defer loop.Stop()

	prev := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-loop.C:
			if err := e.Advance(now.Sub(prev)); err != nil {
				log.Printf("engine: tick %d: %v", e.ticker.Status().Tick, err)
			}
			prev = now
		}
	}
}
