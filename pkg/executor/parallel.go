package executor

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
	"github.com/devicelab-dev/zylix-runner/pkg/logger"
)

// Worker binds one worker routine to the driver for its allocated device.
type Worker struct {
	ID      int
	Driver  core.Driver
	Cleanup func()
}

// ParallelExecutor runs queued tasks across a pool of workers. Workers
// exit cooperatively: only once every posted task has a result and no
// peer holds an in-flight task.
type ParallelExecutor struct {
	queue        *WorkQueue
	workers      []Worker
	pollInterval time.Duration
}

// NewParallelExecutor creates an executor over the queue. With no workers
// given, it spawns one driverless worker per logical CPU.
func NewParallelExecutor(queue *WorkQueue, workers []Worker) *ParallelExecutor {
	if len(workers) == 0 {
		for i := 0; i < runtime.NumCPU(); i++ {
			workers = append(workers, Worker{ID: i})
		}
	}
	return &ParallelExecutor{
		queue:        queue,
		workers:      workers,
		pollInterval: 10 * time.Millisecond,
	}
}

// Execute runs until every queued task has a posted result, then returns
// all results. Priority orders task start, not completion.
func (e *ParallelExecutor) Execute(ctx context.Context) []TaskResult {
	var wg sync.WaitGroup
	for i := range e.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			if w.Cleanup != nil {
				defer w.Cleanup()
			}
			e.workerLoop(ctx, w)
		}(e.workers[i])
	}
	wg.Wait()
	return e.queue.Results()
}

// workerLoop pulls tasks until the queue reports done. An empty poll does
// not mean finished: a peer may still be mid-task and about to post.
func (e *ParallelExecutor) workerLoop(ctx context.Context, w Worker) {
	for {
		task, ok := e.queue.GetTask()
		if !ok {
			if e.queue.Progress().Done() {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(e.pollInterval):
			}
			continue
		}

		result := e.runTask(ctx, w, task)
		e.queue.AddResult(result)
	}
}

// runTask executes one task under its timeout and retry budget. Timeouts
// and explicit skips are terminal; ordinary failures are retried while
// attempts remain. The final message is the last attempt's error.
//
// Timeout checking is cooperative: elapsed time is compared against the
// deadline between attempts, so a body blocked in network I/O past its
// deadline is not preempted.
func (e *ParallelExecutor) runTask(ctx context.Context, w Worker, task TestTask) TaskResult {
	result := TaskResult{
		TaskID:   task.ID,
		Name:     task.Name,
		Suite:    task.Suite,
		WorkerID: w.ID,
	}
	start := time.Now()

	for attempt := 0; ; attempt++ {
		result.RetryCount = attempt

		if err := ctx.Err(); err != nil {
			result.Status = StatusError
			result.Message = "execution cancelled"
			break
		}
		if task.Timeout > 0 && time.Since(start) >= task.Timeout {
			result.Status = StatusTimeout
			result.Message = "task exceeded timeout of " + task.Timeout.String()
			break
		}

		err := task.Run(w.Driver)
		if err == nil {
			result.Status = StatusPassed
			break
		}
		if errors.Is(err, ErrSkip) {
			result.Status = StatusSkipped
			result.Message = err.Error()
			break
		}

		result.Status = StatusFailed
		result.Message = err.Error()
		if attempt >= task.Retries {
			break
		}
		logger.Debug("Task %s failed (attempt %d/%d), retrying: %v",
			task.Name, attempt+1, task.Retries+1, err)
	}

	result.Duration = time.Since(start)
	return result
}
