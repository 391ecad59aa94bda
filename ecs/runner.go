package ecs

import (
	"errors"
	"fmt"
)

// System is one unit of per-tick logic. Update receives the world and the
// tick delta in seconds, queries for the entities it cares about, and
// mutates their components in place. Systems must tolerate an empty match
// set and must not rely on any particular entity ordering.
type System interface {
	Update(w *World, dt float64) error
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(w *World, dt float64) error

func (f SystemFunc) Update(w *World, dt float64) error {
	return f(w, dt)
}

// Runner holds systems in registration order and runs each once per tick.
// A failing system does not stop the ones after it: errors are collected
// and returned joined, so one bad system can't abort the rest of a tick.
type Runner struct {
	systems []System
}

func NewRunner(systems ...System) *Runner {
	return &Runner{systems: append([]System(nil), systems...)}
}

func (r *Runner) Add(s System) {
	if s == nil {
		return
	}
	r.systems = append(r.systems, s)
}

func (r *Runner) Systems() []System {
	return append([]System(nil), r.systems...)
}

// Run updates every system in order, synchronously. Changes a system
// makes are visible to the systems after it in the same tick.
func (r *Runner) Run(w *World, dt float64) error {
	var errs []error
	for i, s := range r.systems {
		if s == nil {
			continue
		}
		if err := s.Update(w, dt); err != nil {
			errs = append(errs, fmt.Errorf("system %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
