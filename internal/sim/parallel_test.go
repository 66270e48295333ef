package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/fortune/internal/wheel"
)

func TestEnsembleRun(t *testing.T) {
	base := New(letters, wheel.DefaultPhysics())
	results, err := NewEnsemble(base, 50, 100).Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 50 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Trace != nil {
			t.Errorf("result %d kept a trace of %d samples", i, len(r.Trace))
		}
		if r.Seed != 100+int64(i) {
			t.Errorf("result %d has seed %d", i, r.Seed)
		}
		single, err := New(letters, wheel.DefaultPhysics()).Run(context.Background(), Config{Seed: r.Seed})
		if err != nil {
			t.Fatal(err)
		}
		if single.Outcome != r.Outcome {
			t.Errorf("seed %d: ensemble %v, single %v", r.Seed, r.Outcome, single.Outcome)
		}
	}
}

func TestEnsembleWorkersAndCancel(t *testing.T) {
	base := New(letters, wheel.DefaultPhysics())
	e := NewEnsemble(base, 200, 1)
	e.workers = 3
	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("run %d missing", i)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEnsemble(base, 1000, 1).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled ensemble err = %v", err)
	}

	if results, err := NewEnsemble(base, 0, 1).Run(context.Background()); err != nil || len(results) != 0 {
		t.Errorf("empty ensemble = %v, %v", results, err)
	}
}

func TestTally(t *testing.T) {
	results := []*Result{
		{Ticks: 260, Outcome: wheel.Outcome{Index: 0, Winner: true}},
		{Ticks: 280, Outcome: wheel.Outcome{Index: 1}},
		{Ticks: 270, Outcome: wheel.Outcome{Index: 0, Winner: true}},
		nil,
	}
	s := Tally(results, 4)
	if s.Runs != 3 || s.Winners != 2 {
		t.Errorf("runs %d winners %d", s.Runs, s.Winners)
	}
	if s.Counts[0] != 2 || s.Counts[1] != 1 || s.Counts[2] != 0 {
		t.Errorf("counts = %v", s.Counts)
	}
	if s.MinTicks != 260 || s.MaxTicks != 280 || s.MeanTicks != 270 {
		t.Errorf("ticks min %d max %d mean %v", s.MinTicks, s.MaxTicks, s.MeanTicks)
	}
	if empty := Tally(nil, 2); empty.Runs != 0 || empty.MeanTicks != 0 {
		t.Errorf("empty tally = %+v", empty)
	}
}
