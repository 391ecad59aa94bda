// Profiling harness for entity churn and query intersection:
//
//	go build ./cmd/profile
//	./profile -mode query
//	go tool pprof -http=":8000" cpu.pprof
package main

import (
	"flag"
	"log"

	"github.com/pkg/profile"

	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
	"github.com/milk9111/doomlite/ecs/system"
)

func main() {
	mode := flag.String("mode", "query", "query | churn")
	entities := flag.Int("entities", 100000, "entities per world")
	iters := flag.Int("iters", 1000, "iterations")
	mem := flag.Bool("mem", false, "profile allocations instead of CPU")
	flag.Parse()

	opt := profile.CPUProfile
	if *mem {
		opt = profile.MemProfileAllocs
	}
	defer profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook).Stop()

	switch *mode {
	case "query":
		runQuery(*entities, *iters)
	case "churn":
		runChurn(*entities, *iters)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runQuery(entities, iters int) {
	w := ecs.NewWorld()
	movement := system.NewMovementSystem()

	for i := 0; i < entities; i++ {
		e := w.CreateEntity()
		mustAdd(ecs.Add(w, e, component.PositionComponent.Kind(), component.Position{X: float64(i)}))
		if i%2 == 0 {
			mustAdd(ecs.Add(w, e, component.VelocityComponent.Kind(), component.Velocity{DX: 1}))
		}
		if i%3 == 0 {
			mustAdd(ecs.Add(w, e, component.SpriteComponent.Kind(), component.Sprite{Key: "imp_walk"}))
		}
	}

	for i := 0; i < iters; i++ {
		_ = w.Query(
			component.PositionComponent.Kind().ID(),
			component.VelocityComponent.Kind().ID(),
			component.SpriteComponent.Kind().ID(),
		)
		mustAdd(movement.Update(w, 1.0/60.0))
	}
}

func runChurn(entities, iters int) {
	for i := 0; i < iters; i++ {
		w := ecs.NewWorld()
		ents := make([]ecs.Entity, 0, entities)
		for j := 0; j < entities; j++ {
			e := w.CreateEntity()
			mustAdd(ecs.Add(w, e, component.PositionComponent.Kind(), component.Position{}))
			mustAdd(ecs.Add(w, e, component.LifetimeComponent.Kind(), component.Lifetime{Remaining: 1}))
			ents = append(ents, e)
		}
		for _, e := range ents {
			w.RemoveEntity(e)
		}
	}
}

func mustAdd(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
