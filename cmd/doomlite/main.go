package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/milk9111/doomlite/engine"
	"github.com/milk9111/doomlite/level"
	"github.com/milk9111/doomlite/script"
	"github.com/milk9111/doomlite/snapshot"
)

func main() {
	levelPath := flag.String("level", "", "level JSON file to load")
	configPath := flag.String("config", "", "engine config YAML (defaults used when empty)")
	ticks := flag.Uint64("ticks", 0, "stop after this many ticks (0 = run until interrupted)")
	watch := flag.Bool("watch", false, "reload the level file when it changes on disk")
	scriptPath := flag.String("script", "", "tengo script to run as a system each tick")
	savePath := flag.String("save", "", "write a world snapshot here on exit")
	flag.Parse()

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		c, err := engine.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		sys, err := script.New(filepath.Base(*scriptPath), src)
		if err != nil {
			log.Fatal(err)
		}
		eng.AddScript(sys)
	}

	if *levelPath != "" {
		if err := eng.LoadLevelFile(*levelPath); err != nil {
			log.Fatal(err)
		}
		log.Printf("loaded %s: %d entities", *levelPath, eng.World().Count())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reloads <-chan string
	if *watch && *levelPath != "" {
		watcher, err := level.NewWatcher(filepath.Dir(*levelPath))
		if err != nil {
			log.Fatal(err)
		}
		defer watcher.Close()
		reloads = watcher.Events
	}

	run(ctx, eng, *levelPath, *ticks, reloads)

	if *savePath != "" {
		data, err := snapshot.Builtin().Save(eng.World())
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*savePath, data, 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("saved snapshot to %s", *savePath)
	}
}

// run owns the engine for its whole lifetime: ticking, level reloads, and
// status logging all happen on this goroutine, matching the
// single-owner model of the core.
func run(ctx context.Context, eng *engine.Engine, levelPath string, budget uint64, reloads <-chan string) {
	loop := time.NewTicker(time.Duration(eng.Config().TickMillis * float64(time.Millisecond)))
	defer loop.Stop()

	status := time.NewTicker(5 * time.Second)
	defer status.Stop()

	eng.Start()
	defer eng.Stop()

	prev := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case changed, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			if filepath.Clean(changed) != filepath.Clean(levelPath) {
				continue
			}
			if err := eng.LoadLevelFile(levelPath); err != nil {
				log.Printf("reload %s: %v", levelPath, err)
				continue
			}
			log.Printf("reloaded %s: %d entities", levelPath, eng.World().Count())
		case <-status.C:
			s := eng.Status()
			log.Printf("tick=%d fps=%d entities=%d", s.Tick, s.FPS, eng.World().Count())
		case now := <-loop.C:
			if err := eng.Advance(now.Sub(prev)); err != nil {
				log.Printf("tick %d: %v", eng.Status().Tick, err)
			}
			prev = now
			if budget > 0 && eng.Status().Tick >= budget {
				return
			}
		}
	}
}
