package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/sourcegraph/conc/pool"
)

const defaultMaxWorkers = 4

func normalizeWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultMaxWorkers
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// evaluatePerManager runs fn for every manager on a bounded pool. The first
// error cancels the context handed to the remaining calls.
func evaluatePerManager[T any](
	ctx context.Context,
	managers []manager.Manager,
	maxWorkers int,
	fn func(ctx context.Context, item manager.Manager) (T, error),
) ([]T, error) {
	if len(managers) == 0 {
		return nil, nil
	}

	p := pool.NewWithResults[T]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(normalizeWorkerCount(maxWorkers, len(managers)))
	for _, item := range managers {
		item := item
		p.Go(func(ctx context.Context) (T, error) {
			return fn(ctx, item)
		})
	}

	return p.Wait()
}

// runTasks submits I/O bound tasks to an ants pool and returns the first
// task error once every task has finished. The first error cancels the
// context seen by tasks that have not started yet.
func runTasks(ctx context.Context, maxWorkers int, tasks []func(context.Context) error) error {
	if len(tasks) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers, err := ants.NewPool(normalizeWorkerCount(maxWorkers, len(tasks)))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(taskErr error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = taskErr
			cancel()
		}
	}

	for _, task := range tasks {
		task := task
		wg.Add(1)
		if submitErr := workers.Submit(func() {
			defer wg.Done()
			if ctxErr := ctx.Err(); ctxErr != nil {
				record(ctxErr)
				return
			}
			if taskErr := task(ctx); taskErr != nil {
				record(taskErr)
			}
		}); submitErr != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("submit task to worker pool: %w", submitErr)
		}
	}

	wg.Wait()
	return firstErr
}
