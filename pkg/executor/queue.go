package executor

import (
	"container/heap"
	"sync"
)

// Progress is a point-in-time snapshot of queue throughput.
type Progress struct {
	Completed int
	Total     int
	Active    int
}

// Done reports whether every added task has a posted result and no worker
// holds an in-flight task.
func (p Progress) Done() bool {
	return p.Completed >= p.Total && p.Active == 0
}

// WorkQueue is a thread-safe priority queue of pending tasks plus an
// append-only result sink. One coarse lock guards all mutable state.
// Tasks pop in descending priority order; ties break arbitrarily.
type WorkQueue struct {
	mu        sync.Mutex
	pending   taskHeap
	results   []TaskResult
	total     int
	completed int
	active    int
}

// NewWorkQueue creates an empty queue.
func NewWorkQueue() *WorkQueue {
	return &WorkQueue{}
}

// AddTask inserts a task and increments the total count.
func (q *WorkQueue) AddTask(task TestTask) {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.pending, task)
	q.total++
}

// GetTask pops the highest-priority pending task, marking it active.
// Returns false when nothing is pending.
func (q *WorkQueue) GetTask() (TestTask, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending.Len() == 0 {
		return TestTask{}, false
	}
	task := heap.Pop(&q.pending).(TestTask)
	q.active++
	return task, true
}

// AddResult posts a task's terminal result and retires its active slot.
func (q *WorkQueue) AddResult(result TaskResult) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results = append(q.results, result)
	q.completed++
	if q.active > 0 {
		q.active--
	}
}

// Progress returns the current counters.
func (q *WorkQueue) Progress() Progress {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Progress{Completed: q.completed, Total: q.total, Active: q.active}
}

// Results returns a copy of all posted results. Order reflects completion
// order across workers, not priority order.
func (q *WorkQueue) Results() []TaskResult {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]TaskResult, len(q.results))
	copy(out, q.results)
	return out
}

// taskHeap orders tasks by descending priority.
type taskHeap []TestTask

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].Priority > h[j].Priority }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x interface{}) { *h = append(*h, x.(TestTask)) }

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	task := old[n-1]
	*h = old[:n-1]
	return task
}
