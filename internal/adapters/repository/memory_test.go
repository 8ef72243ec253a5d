package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	var gauge int
	store := NewMemoryStore(WithGauge(func(n int) { gauge = n }))

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	run := Run{ID: "run-1", Unmatched: []string{"Guest"}, Counts: map[string]int{"Successful": 1}}
	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gauge != 1 {
		t.Errorf("expected gauge 1, got %d", gauge)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "run-1" || len(got.Unmatched) != 1 {
		t.Errorf("unexpected run: %+v", got)
	}

	sum := got.Summary()
	if sum.Unmatched != 1 || sum.Counts["Successful"] != 1 {
		t.Errorf("unexpected summary: %+v", sum)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}

	if err := store.Save(ctx, Run{}); !errors.Is(err, ErrInvalidRun) {
		t.Errorf("expected ErrInvalidRun, got %v", err)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithGauge(func(int) {}))

	for i := 1; i <= 4; i++ {
		if err := store.Save(ctx, Run{ID: fmt.Sprintf("run-%d", i)}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"run-4", "run-3", "run-2", "run-1"}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(runs))
	}
	for i, id := range want {
		if runs[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, runs[i].ID)
		}
	}

	runs, _ = store.List(ctx, 2)
	if len(runs) != 2 || runs[0].ID != "run-4" || runs[1].ID != "run-3" {
		t.Errorf("unexpected limited list: %+v", runs)
	}
}

func TestMemoryStore_Capacity(t *testing.T) {
	ctx := context.Background()
	var gauge int
	store := NewMemoryStore(WithCapacity(2), WithGauge(func(n int) { gauge = n }))

	for i := 1; i <= 3; i++ {
		_ = store.Save(ctx, Run{ID: fmt.Sprintf("run-%d", i)})
	}

	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if gauge != 2 {
		t.Errorf("expected gauge 2, got %d", gauge)
	}
	if _, err := store.Get(ctx, "run-1"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected oldest run evicted, got %v", err)
	}

	// Replacing keeps the position and does not evict.
	_ = store.Save(ctx, Run{ID: "run-2", Report: "updated"})
	runs, _ := store.List(ctx, 0)
	if len(runs) != 2 || runs[0].ID != "run-3" || runs[1].Report != "updated" {
		t.Errorf("unexpected list after replace: %+v", runs)
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore(WithGauge(func(int) {}))

	if err := store.Save(ctx, Run{ID: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := store.List(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithCapacity(50), WithGauge(func(int) {}))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_ = store.Save(ctx, Run{ID: fmt.Sprintf("g%d-%d", g, i)})
				_, _ = store.List(ctx, 5)
			}
		}(g)
	}
	wg.Wait()

	if count := store.Count(ctx); count != 50 {
		t.Errorf("expected count 50, got %d", count)
	}
}
