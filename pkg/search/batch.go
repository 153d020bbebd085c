package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sternrassler/places-client/pkg/places"
)

// BatchConfig holds the worker pool configuration of DetailsForPlaces.
type BatchConfig struct {
	// MaxConcurrency is the maximum number of parallel details requests.
	// The client rate limiter still applies across all workers.
	MaxConcurrency int

	// Timeout per details request.
	Timeout time.Duration
}

// DefaultBatchConfig returns the default worker pool configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxConcurrency: 5,
		Timeout:        15 * time.Second,
	}
}

func (c BatchConfig) withDefaults() BatchConfig {
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = 5
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}

// detailsResult is the outcome of one worker request.
type detailsResult struct {
	placeID string
	result  *places.DetailsResult
	err     error
}

// DetailsForPlaces fetches details for every id in parallel. template
// supplies the shared criteria (fields, language, ...); its PlaceID is
// replaced per request. Duplicate ids are fetched once. The first error
// cancels the remaining requests and is returned.
func (s *Service) DetailsForPlaces(ctx context.Context, ids []string, template DetailsCriteria) (map[string]*places.DetailsResult, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, preconditionf("place id is required")
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	results := make(map[string]*places.DetailsResult, len(unique))
	if len(unique) == 0 {
		return results, nil
	}

	template.PlaceID = unique[0]
	if err := template.Validate(); err != nil {
		return nil, preconditionf("%w", err)
	}

	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan string, len(unique))
	for _, id := range unique {
		queue <- id
	}
	close(queue)

	out := make(chan detailsResult, len(unique))

	workers := min(s.batch.MaxConcurrency, len(unique))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.detailsWorker(ctx, template, queue, out, &wg, i)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var firstErr error
	for r := range out {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		results[r.placeID] = r.result
	}
	if firstErr == nil && len(results) < len(unique) {
		// Workers stop early only when the caller cancels.
		firstErr = ctx.Err()
	}

	if firstErr != nil {
		s.logger.Warn().
			Err(firstErr).
			Int("fetched", len(results)).
			Int("total", len(unique)).
			Msg("Details batch aborted")
		return nil, fmt.Errorf("details batch (%d/%d fetched): %w", len(results), len(unique), firstErr)
	}

	s.logger.Info().
		Int("places", len(results)).
		Int("workers", workers).
		Dur("duration", time.Since(start)).
		Msg("Details batch complete")

	return results, nil
}

// detailsWorker processes place ids from the queue.
func (s *Service) detailsWorker(ctx context.Context, template DetailsCriteria, queue <-chan string, out chan<- detailsResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	processed := 0

	for id := range queue {
		select {
		case <-ctx.Done():
			s.logger.Debug().
				Int("worker_id", workerID).
				Int("processed", processed).
				Msg("Worker stopping (context cancelled)")
			return
		default:
		}

		criteria := template.clone()
		criteria.PlaceID = id

		reqCtx, cancel := context.WithTimeout(ctx, s.batch.Timeout)
		result, err := s.details(reqCtx, criteria)
		cancel()

		out <- detailsResult{placeID: id, result: result, err: err}
		if err != nil {
			return
		}
		processed++
	}

	if processed > 0 {
		s.logger.Debug().
			Int("worker_id", workerID).
			Int("processed", processed).
			Msg("Worker completed")
	}
}
