package main

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	idgen "github.com/Madison-Country-Day-School/id-gen"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeGenerator returns canned results keyed by record ID.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   []string
	failIDs map[string]error
}

func (g *fakeGenerator) Generate(_ context.Context, rec idgen.StudentRecord, in idgen.Input) (*idgen.Result, error) {
	g.mu.Lock()
	g.calls = append(g.calls, rec.ID)
	g.mu.Unlock()

	if err, ok := g.failIDs[rec.ID]; ok {
		return nil, err
	}
	if rec.PhotoRef == "" {
		return &idgen.Result{Record: rec, Outcome: idgen.OutcomeSkipped}, nil
	}
	return &idgen.Result{
		Record:     rec,
		Outcome:    idgen.OutcomeCreated,
		OutputPath: filepath.Join(in.OutputRoot, rec.ID+".pdf"),
	}, nil
}

// fakePool hands out a shared generator and tracks balance.
type fakePool struct {
	gen      Generator
	size     int
	mu       sync.Mutex
	acquired int
	released int
}

func (p *fakePool) Acquire() Generator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquired++
	return p.gen
}

func (p *fakePool) Release(Generator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *fakePool) Size() int { return p.size }

func job(rowIndex int, id, photoRef string) RecordJob {
	return RecordJob{
		RowIndex: rowIndex,
		Record: idgen.StudentRecord{
			FirstName: "Test",
			LastName:  id,
			Year:      "2099",
			ID:        id,
			PhotoRef:  photoRef,
		},
	}
}

// ---------------------------------------------------------------------------
// TestGenerateBatch - Concurrent batch dispatch
// ---------------------------------------------------------------------------

func TestGenerateBatch(t *testing.T) {
	t.Parallel()

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		pool := &fakePool{gen: &fakeGenerator{}, size: 2}
		results := generateBatch(context.Background(), pool, nil, idgen.Input{})
		if results != nil {
			t.Errorf("generateBatch() = %v, want nil", results)
		}
		if pool.acquired != 0 {
			t.Errorf("acquired %d services for an empty batch", pool.acquired)
		}
	})

	t.Run("results keep roster order", func(t *testing.T) {
		t.Parallel()

		pool := &fakePool{gen: &fakeGenerator{}, size: 4}
		jobs := []RecordJob{
			job(2, "S1001", "p1"),
			job(3, "S1002", "p2"),
			job(4, "S1003", "p3"),
			job(5, "S1004", "p4"),
		}

		results := generateBatch(context.Background(), pool, jobs, idgen.Input{OutputRoot: "./out"})
		if len(results) != len(jobs) {
			t.Fatalf("got %d results, want %d", len(results), len(jobs))
		}
		for i, r := range results {
			if r.Record.ID != jobs[i].Record.ID {
				t.Errorf("result %d is %s, want %s", i, r.Record.ID, jobs[i].Record.ID)
			}
			if r.RowIndex != jobs[i].RowIndex {
				t.Errorf("result %d row = %d, want %d", i, r.RowIndex, jobs[i].RowIndex)
			}
		}
	})

	t.Run("one failure does not stop the batch", func(t *testing.T) {
		t.Parallel()

		bad := errors.New("photo missing")
		gen := &fakeGenerator{failIDs: map[string]error{"S1002": bad}}
		pool := &fakePool{gen: gen, size: 2}
		jobs := []RecordJob{
			job(2, "S1001", "p1"),
			job(3, "S1002", "p2"),
			job(4, "S1003", "p3"),
		}

		results := generateBatch(context.Background(), pool, jobs, idgen.Input{OutputRoot: "./out"})

		if !errors.Is(results[1].Err, bad) {
			t.Errorf("results[1].Err = %v, want wrapped failure", results[1].Err)
		}
		if results[0].Err != nil || results[2].Err != nil {
			t.Error("failure leaked into sibling records")
		}
		if results[0].OutputPath == "" || results[2].OutputPath == "" {
			t.Error("healthy records missing output paths")
		}
	})

	t.Run("skip outcome carried through", func(t *testing.T) {
		t.Parallel()

		pool := &fakePool{gen: &fakeGenerator{}, size: 1}
		jobs := []RecordJob{job(2, "S1001", "")}

		results := generateBatch(context.Background(), pool, jobs, idgen.Input{})
		if results[0].Err != nil {
			t.Fatalf("skip treated as failure: %v", results[0].Err)
		}
		if results[0].Outcome != idgen.OutcomeSkipped {
			t.Errorf("Outcome = %v, want OutcomeSkipped", results[0].Outcome)
		}
	})

	t.Run("cancelled context fails pending records", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pool := &fakePool{gen: &fakeGenerator{}, size: 1}
		jobs := []RecordJob{job(2, "S1001", "p1"), job(3, "S1002", "p2")}

		results := generateBatch(ctx, pool, jobs, idgen.Input{})
		for i, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("results[%d].Err = %v, want context.Canceled", i, r.Err)
			}
		}
	})

	t.Run("acquire and release balance", func(t *testing.T) {
		t.Parallel()

		pool := &fakePool{gen: &fakeGenerator{}, size: 3}
		jobs := []RecordJob{
			job(2, "S1001", "p1"),
			job(3, "S1002", "p2"),
			job(4, "S1003", "p3"),
			job(5, "S1004", "p4"),
			job(6, "S1005", "p5"),
		}

		generateBatch(context.Background(), pool, jobs, idgen.Input{})
		if pool.acquired != pool.released {
			t.Errorf("acquired %d, released %d", pool.acquired, pool.released)
		}
		if pool.acquired > pool.size {
			t.Errorf("acquired %d services, pool size %d", pool.acquired, pool.size)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSummarize - Outcome tallies
// ---------------------------------------------------------------------------

func TestSummarize(t *testing.T) {
	t.Parallel()

	results := []GenerationResult{
		{Outcome: idgen.OutcomeCreated, OutputPath: "./out/S1001.pdf"},
		{Outcome: idgen.OutcomeSkipped},
		{Err: errors.New("boom")},
		{Outcome: idgen.OutcomeCreated, OutputPath: "./out/S1002.pdf"},
		{Err: errors.New("boom again")},
	}

	got := summarize(results)
	want := BatchSummary{Created: 2, Skipped: 1, Failed: 2}
	if got != want {
		t.Errorf("summarize() = %+v, want %+v", got, want)
	}

	if got := summarize(nil); got != (BatchSummary{}) {
		t.Errorf("summarize(nil) = %+v, want zero", got)
	}
}
