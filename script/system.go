// Package script lets hosts register systems written in tengo instead of
// Go. A script defines update(engine, dt) and drives the world through
// the engine map; its compiled program and state map persist across
// ticks.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
)

const dispatchScript = `
update(__engine, __state, __dt)
`

// System is an ecs.System whose per-tick logic lives in a tengo script.
type System struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// New compiles src once. The script must define
// update(engine, state, dt); state is a plain map that survives between
// ticks for script-owned bookkeeping.
func New(name string, src []byte) (*System, error) {
	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__dt", 0.0)

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: compile: %w", name, err)
	}

	return &System{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *System) Name() string {
	return s.name
}

// Update runs one tick of the script. Script failures surface as the
// system's error and are isolated by the runner like any other system
// failure.
func (s *System) Update(w *ecs.World, dt float64) error {
	if err := s.compiled.Set("__engine", buildEngine(w)); err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	if err := s.compiled.Set("__dt", &tengo.Float{Value: dt}); err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	return nil
}

func buildEngine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["count"] = &tengo.UserFunction{Name: "count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(w.Count())}, nil
	}}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.PositionComponent.Kind(), component.Position{X: x, Y: y}); err != nil {
			return nil, err
		}
		return &tengo.Int{Value: int64(e)}, nil
	}}

	values["remove"] = &tengo.UserFunction{Name: "remove", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := argEntity(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		if !w.IsAlive(e) {
			return tengo.FalseValue, nil
		}
		w.RemoveEntity(e)
		return tengo.TrueValue, nil
	}}

	values["is_alive"] = &tengo.UserFunction{Name: "is_alive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := argEntity(args)
		if ok && w.IsAlive(e) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["movers"] = &tengo.UserFunction{Name: "movers", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ids := w.Query(component.PositionComponent.Kind().ID(), component.VelocityComponent.Kind().ID())
		out := make([]tengo.Object, 0, len(ids))
		for _, e := range ids {
			out = append(out, &tengo.Int{Value: int64(e)})
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := argEntity(args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		pos, ok := ecs.Get(w, e, component.PositionComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: pos.X}, &tengo.Float{Value: pos.Y}}}, nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		e, ok := argEntity(args)
		if !ok || !w.IsAlive(e) {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		if err := ecs.Add(w, e, component.PositionComponent.Kind(), component.Position{X: x, Y: y}); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["get_velocity"] = &tengo.UserFunction{Name: "get_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := argEntity(args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: vel.DX}, &tengo.Float{Value: vel.DY}}}, nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		e, ok := argEntity(args)
		if !ok || !w.IsAlive(e) {
			return tengo.FalseValue, nil
		}
		dx, okX := tengo.ToFloat64(args[1])
		dy, okY := tengo.ToFloat64(args[2])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), component.Velocity{DX: dx, DY: dy}); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func argEntity(args []tengo.Object) (ecs.Entity, bool) {
	if len(args) < 1 {
		return 0, false
	}
	id, ok := tengo.ToInt64(args[0])
	if !ok || id <= 0 {
		return 0, false
	}
	return ecs.Entity(id), true
}
