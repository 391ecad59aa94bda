package ecs

import (
	"errors"
	"math"
	"testing"
)

func countingTicker() (*Ticker, *int, *float64) {
	ticks := 0
	lastDt := 0.0
	r := NewRunner(SystemFunc(func(w *World, dt float64) error {
		ticks++
		lastDt = dt
		return nil
	}))
	return NewTicker(NewWorld(), r), &ticks, &lastDt
}

func TestTickerDefaultDelta(t *testing.T) {
	tk, ticks, lastDt := countingTicker()
	tk.Start()

	if err := tk.Tick(0); err != nil {
		t.Fatal(err)
	}
	if *ticks != 1 {
		t.Fatalf("systems ran %d times, want 1", *ticks)
	}
	if math.Abs(*lastDt-0.016) > 1e-9 {
		t.Fatalf("default dt %g, want 0.016", *lastDt)
	}
	if got := tk.Status().FPS; got != 63 { // round(1000/16)
		t.Fatalf("fps %d, want 63", got)
	}
}

func TestTickerInvalidDelta(t *testing.T) {
	cases := []struct {
		name    string
		deltaMs float64
	}{
		{"negative", -16},
		{"nan", math.NaN()},
		{"positive_inf", math.Inf(1)},
		{"negative_inf", math.Inf(-1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tk, ticks, _ := countingTicker()
			tk.Start()

			err := tk.Tick(c.deltaMs)
			if !errors.Is(err, ErrInvalidDelta) {
				t.Fatalf("expected ErrInvalidDelta, got %v", err)
			}
			if *ticks != 0 {
				t.Fatal("systems ran despite invalid delta")
			}
			if tk.Status().Tick != 0 {
				t.Fatal("tick counter advanced despite invalid delta")
			}
		})
	}
}

func TestTickerFPSFromDelta(t *testing.T) {
	tk, _, _ := countingTicker()
	tk.Start()

	if err := tk.Tick(1000); err != nil {
		t.Fatal(err)
	}
	if got := tk.Status().FPS; got != 1 {
		t.Fatalf("fps %d, want 1", got)
	}

	if err := tk.Tick(16.6667); err != nil {
		t.Fatal(err)
	}
	if got := tk.Status().FPS; got != 60 {
		t.Fatalf("fps %d, want 60", got)
	}
}

func TestTickerStopKeepsCounters(t *testing.T) {
	tk, _, _ := countingTicker()
	tk.Start()

	for i := 0; i < 3; i++ {
		if err := tk.Tick(16); err != nil {
			t.Fatal(err)
		}
	}
	tk.Stop()

	s := tk.Status()
	if s.Running {
		t.Fatal("still running after Stop")
	}
	if s.Tick != 3 {
		t.Fatalf("tick counter %d, want 3", s.Tick)
	}
	if s.LastTick.IsZero() {
		t.Fatal("last tick timestamp never recorded")
	}
}

func TestTickWhileStoppedStillAdvances(t *testing.T) {
	tk, ticks, _ := countingTicker()

	if err := tk.Tick(16); err != nil {
		t.Fatal(err)
	}

	s := tk.Status()
	if s.Running {
		t.Fatal("ticker should not be running")
	}
	if s.Tick != 1 || *ticks != 1 {
		t.Fatalf("stopped tick did not advance: tick=%d systems=%d", s.Tick, *ticks)
	}
}
