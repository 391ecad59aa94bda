package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/doomlite/ecs/component"
)

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		removeIndex  int // -1 = none
		wantLiveleft int
	}{
		{"single", 1, 0, 0},
		{"three_remove_middle", 3, 1, 2},
		{"none_removed", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if w.Count() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.Count())
			}
			for i, e := range ents {
				if !e.Valid() {
					t.Fatalf("entity %d not valid", i)
				}
			}
			if c.removeIndex >= 0 {
				w.RemoveEntity(ents[c.removeIndex])
				if w.IsAlive(ents[c.removeIndex]) {
					t.Fatalf("entity should not be alive after removal")
				}
			}
			if w.Count() != c.wantLiveleft {
				t.Fatalf("expected %d live entities, got %d", c.wantLiveleft, w.Count())
			}
		})
	}
}

func TestWorldIDsAreMonotonicAndNeverReused(t *testing.T) {
	w := NewWorld()
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	if e2 <= e1 {
		t.Fatalf("ids must increase: %s then %s", e1, e2)
	}

	w.RemoveEntity(e2)
	e3 := w.CreateEntity()
	if e3 == e2 || e3 <= e1 {
		t.Fatalf("removed id reissued: got %s after removing %s", e3, e2)
	}
}

func TestWorldRemoveEntityIsIdempotent(t *testing.T) {
	w := NewWorld()
	h := component.New[int]("test_int")

	e := w.CreateEntity()
	if err := Add(w, e, h.Kind(), 7); err != nil {
		t.Fatal(err)
	}

	w.RemoveEntity(e)
	w.RemoveEntity(e) // no panic, no error
	if w.IsAlive(e) {
		t.Fatal("entity alive after double remove")
	}
}

func TestAddGetRemoveComponent(t *testing.T) {
	w := NewWorld()

	hInt := component.New[int]("test_add_int")
	hStr := component.New[string]("test_add_str")

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hInt.Kind(), 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hInt.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, hInt.Kind()) },
		},
		{
			name: "overwrite_keeps_one_value",
			setup: func() error {
				if err := Add(w, e1, hInt.Kind(), 1); err != nil {
					return err
				}
				return Add(w, e1, hInt.Kind(), 2)
			},
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hInt.Kind())
				if !ok || *v != 2 {
					t.Fatalf("expected overwrite to 2, got %v ok=%v", v, ok)
				}
				if got := len(w.Query(hInt.Kind().ID())); got != 1 {
					t.Fatalf("expected 1 entity in store, got %d", got)
				}
			},
			teardown: func() bool { return Remove(w, e1, hInt.Kind()) },
		},
		{
			name: "add_str_to_both",
			setup: func() error {
				if err := Add(w, e1, hStr.Kind(), "a"); err != nil {
					return err
				}
				return Add(w, e2, hStr.Kind(), "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, hStr.Kind()) || !Has(w, e2, hStr.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, hStr.Kind()) && Remove(w, e2, hStr.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddToDeadEntityFails(t *testing.T) {
	w := NewWorld()
	h := component.New[int]("test_dead_add")

	e := w.CreateEntity()
	w.RemoveEntity(e)

	err := Add(w, e, h.Kind(), 1)
	if !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if _, ok := Get(w, e, h.Kind()); ok {
		t.Fatal("component attached to dead entity")
	}
}

func TestGetUnknownEntityIsNotAnError(t *testing.T) {
	w := NewWorld()
	h := component.New[int]("test_get_unknown")

	if _, ok := Get(w, Entity(42), h.Kind()); ok {
		t.Fatal("expected absent for unknown entity")
	}
	if Remove(w, Entity(42), h.Kind()) {
		t.Fatal("remove of absent component should report false")
	}
}

func TestRemoveEntitySweepsAllStores(t *testing.T) {
	w := NewWorld()

	ha := component.New[int]("test_sweep_a")
	hb := component.New[string]("test_sweep_b")

	e := w.CreateEntity()
	if err := Add(w, e, ha.Kind(), 1); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e, hb.Kind(), "x"); err != nil {
		t.Fatal(err)
	}

	w.RemoveEntity(e)

	if len(w.Query(ha.Kind().ID())) != 0 {
		t.Fatal("orphaned entry left in first store")
	}
	if len(w.Query(hb.Kind().ID())) != 0 {
		t.Fatal("orphaned entry left in second store")
	}
	if _, ok := Get(w, e, ha.Kind()); ok {
		t.Fatal("component still readable after entity removal")
	}
}

func TestQueryIntersection(t *testing.T) {
	type attach struct {
		pos bool
		vel bool
		spr bool
	}

	hPos := component.New[[2]float64]("test_query_pos")
	hVel := component.New[[2]float64]("test_query_vel")
	hSpr := component.New[string]("test_query_spr")

	tests := []struct {
		name    string
		attach  []attach
		query   func(w *World) []Entity
		wantIdx []int
	}{
		{
			name:    "disjoint_sets_empty_intersection",
			attach:  []attach{{pos: true}, {vel: true}},
			query:   func(w *World) []Entity { return w.Query(hPos.Kind().ID(), hVel.Kind().ID()) },
			wantIdx: nil,
		},
		{
			name:    "both_on_one_entity",
			attach:  []attach{{pos: true, vel: true}, {vel: true}},
			query:   func(w *World) []Entity { return w.Query(hPos.Kind().ID(), hVel.Kind().ID()) },
			wantIdx: []int{0},
		},
		{
			name:    "identical_position_only_one_sprite",
			attach:  []attach{{pos: true, spr: true}, {pos: true}},
			query:   func(w *World) []Entity { return w.Query(hPos.Kind().ID(), hSpr.Kind().ID()) },
			wantIdx: []int{0},
		},
		{
			name:    "empty_kind_list_is_empty",
			attach:  []attach{{pos: true}},
			query:   func(w *World) []Entity { return w.Query() },
			wantIdx: nil,
		},
		{
			name:    "missing_store_is_empty",
			attach:  []attach{{pos: true}},
			query: func(w *World) []Entity {
				missing := component.New[int]("test_query_missing")
				return w.Query(hPos.Kind().ID(), missing.Kind().ID())
			},
			wantIdx: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, len(tc.attach))
			for i, a := range tc.attach {
				e := w.CreateEntity()
				ents[i] = e
				if a.pos {
					if err := Add(w, e, hPos.Kind(), [2]float64{5, 5}); err != nil {
						t.Fatal(err)
					}
				}
				if a.vel {
					if err := Add(w, e, hVel.Kind(), [2]float64{1, 0}); err != nil {
						t.Fatal(err)
					}
				}
				if a.spr {
					if err := Add(w, e, hSpr.Kind(), "imp"); err != nil {
						t.Fatal(err)
					}
				}
			}

			got := toSet(tc.query(w))
			if len(got) != len(tc.wantIdx) {
				t.Fatalf("expected %d entities, got %d", len(tc.wantIdx), len(got))
			}
			for _, idx := range tc.wantIdx {
				if _, ok := got[ents[idx]]; !ok {
					t.Fatalf("expected entity %s in result", ents[idx])
				}
			}
		})
	}
}

func TestQueryLifecycleScenario(t *testing.T) {
	w := NewWorld()
	hPos := component.New[[2]float64]("test_scenario_pos")

	if got := w.Query(hPos.Kind().ID()); len(got) != 0 {
		t.Fatalf("empty world query returned %v", got)
	}

	e1 := w.CreateEntity()
	if err := Add(w, e1, hPos.Kind(), [2]float64{5, 5}); err != nil {
		t.Fatal(err)
	}
	got := w.Query(hPos.Kind().ID())
	if len(got) != 1 || got[0] != e1 {
		t.Fatalf("expected [%s], got %v", e1, got)
	}

	w.RemoveEntity(e1)
	if got := w.Query(hPos.Kind().ID()); len(got) != 0 {
		t.Fatalf("query after removal returned %v", got)
	}
}

func TestQueryResultIsASnapshot(t *testing.T) {
	w := NewWorld()
	h := component.New[int]("test_snapshot_int")

	for i := 0; i < 3; i++ {
		e := w.CreateEntity()
		if err := Add(w, e, h.Kind(), i); err != nil {
			t.Fatal(err)
		}
	}

	got := w.Query(h.Kind().ID())
	for _, e := range got {
		w.RemoveEntity(e) // must not disturb the returned slice
	}
	if len(got) != 3 {
		t.Fatalf("snapshot shrank to %d", len(got))
	}
	if len(w.Query(h.Kind().ID())) != 0 {
		t.Fatal("store should be empty after removals")
	}
}

func TestForEachIntersections(t *testing.T) {
	t.Run("foreach_skips_entities_removed_mid_walk", func(t *testing.T) {
		w := NewWorld()
		h := component.New[int]("test_foreach_removal")

		var ents []Entity
		for i := 0; i < 4; i++ {
			e := w.CreateEntity()
			if err := Add(w, e, h.Kind(), i); err != nil {
				t.Fatal(err)
			}
			ents = append(ents, e)
		}

		seen := 0
		ForEach(w, h.Kind(), func(e Entity, _ *int) {
			seen++
			// removing another entity mid-iteration must not corrupt the walk
			for _, other := range ents {
				if other != e && w.IsAlive(other) {
					w.RemoveEntity(other)
					break
				}
			}
		})
		if seen == 0 || seen > 4 {
			t.Fatalf("walk visited %d entities", seen)
		}
	})

	t.Run("foreach2_intersection", func(t *testing.T) {
		w := NewWorld()
		ha := component.New[int]("test_fe2_a")
		hb := component.New[int]("test_fe2_b")

		e1 := w.CreateEntity()
		e2 := w.CreateEntity()
		if err := Add(w, e1, ha.Kind(), 1); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e2, ha.Kind(), 2); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e2, hb.Kind(), 3); err != nil {
			t.Fatal(err)
		}

		var res []Entity
		ForEach2(w, ha.Kind(), hb.Kind(), func(e Entity, a *int, b *int) {
			res = append(res, e)
			if *a != 2 || *b != 3 {
				t.Fatalf("wrong values a=%d b=%d", *a, *b)
			}
		})
		if len(res) != 1 || res[0] != e2 {
			t.Fatalf("expected only %s, got %v", e2, res)
		}
	})

	t.Run("foreach3_no_common", func(t *testing.T) {
		w := NewWorld()
		ha := component.New[int]("test_fe3_a")
		hb := component.New[int]("test_fe3_b")
		hc := component.New[int]("test_fe3_c")

		e1 := w.CreateEntity()
		e2 := w.CreateEntity()
		if err := Add(w, e1, ha.Kind(), 1); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e2, hb.Kind(), 2); err != nil {
			t.Fatal(err)
		}

		count := 0
		ForEach3(w, ha.Kind(), hb.Kind(), hc.Kind(), func(Entity, *int, *int, *int) { count++ })
		if count != 0 {
			t.Fatalf("expected no common entities, got %d", count)
		}
	})
}

func TestRestoreAndReserve(t *testing.T) {
	w := NewWorld()

	if err := w.Restore(Entity(5)); err != nil {
		t.Fatal(err)
	}
	if !w.IsAlive(Entity(5)) {
		t.Fatal("restored entity not alive")
	}
	if err := w.Restore(Entity(5)); err == nil {
		t.Fatal("restoring a live entity must fail")
	}
	if err := w.Restore(Entity(0)); err == nil {
		t.Fatal("restoring the zero sentinel must fail")
	}
	// ids past the sparse-index range come only from forged save data
	if err := w.Restore(Entity(1) << 63); err == nil {
		t.Fatal("restoring an unindexable id must fail")
	}

	// cursor moved past the restored id
	if e := w.CreateEntity(); e <= 5 {
		t.Fatalf("expected fresh id above 5, got %s", e)
	}

	w.Reserve(Entity(100))
	if e := w.CreateEntity(); e < 100 {
		t.Fatalf("expected id >= 100 after reserve, got %s", e)
	}
}
