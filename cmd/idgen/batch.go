package main

import (
	"context"
	"sync"
	"time"

	idgen "github.com/Madison-Country-Day-School/id-gen"
)

// Generator is the interface for the card generation service.
type Generator interface {
	Generate(ctx context.Context, rec idgen.StudentRecord, in idgen.Input) (*idgen.Result, error)
}

// Compile-time interface implementation check.
var _ Generator = (*idgen.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() Generator
	Release(Generator)
	Size() int
}

// servicePool adapts idgen.ServicePool to the Pool interface.
type servicePool struct {
	pool *idgen.ServicePool
}

func (p *servicePool) Acquire() Generator    { return p.pool.Acquire() }
func (p *servicePool) Release(svc Generator) { p.pool.Release(svc.(*idgen.Service)) }
func (p *servicePool) Size() int             { return p.pool.Size() }

// RecordJob is one roster record queued for generation.
type RecordJob struct {
	RowIndex int
	Record   idgen.StudentRecord
}

// GenerationResult holds the outcome of generating one record's card.
type GenerationResult struct {
	RowIndex        int
	Record          idgen.StudentRecord
	Outcome         idgen.Outcome
	OutputPath      string
	UnmatchedTokens []string
	Err             error
	Duration        time.Duration
}

// generateBatch processes records concurrently using the service pool.
// A single record's failure is captured in its result; the rest of the
// batch keeps going. Context cancellation fails the not-yet-started
// records without touching already-written outputs.
func generateBatch(ctx context.Context, pool Pool, jobs []RecordJob, input idgen.Input) []GenerationResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]GenerationResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = GenerationResult{
						RowIndex: jobs[idx].RowIndex,
						Record:   jobs[idx].Record,
						Err:      ctx.Err(),
					}
					continue
				}
				results[idx] = generateRecord(ctx, svc, jobs[idx], input)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// generateRecord processes a single record and returns the result.
func generateRecord(ctx context.Context, svc Generator, job RecordJob, input idgen.Input) GenerationResult {
	start := time.Now()
	result := GenerationResult{
		RowIndex: job.RowIndex,
		Record:   job.Record,
	}

	res, err := svc.Generate(ctx, job.Record, input)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}

	result.Outcome = res.Outcome
	result.OutputPath = res.OutputPath
	result.UnmatchedTokens = res.UnmatchedTokens
	return result
}

// BatchSummary tallies the outcomes of a batch.
type BatchSummary struct {
	Created int
	Skipped int
	Failed  int
}

// summarize counts created, skipped, and failed records.
func summarize(results []GenerationResult) BatchSummary {
	var s BatchSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Outcome == idgen.OutcomeSkipped:
			s.Skipped++
		default:
			s.Created++
		}
	}
	return s
}
