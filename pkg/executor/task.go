// Package executor schedules test tasks across a concurrent worker pool
// with per-task timeout and retry policy.
package executor

import (
	"errors"
	"time"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// ErrSkip marks a task body outcome as an explicit skip. Skips are
// terminal: they are never retried.
var ErrSkip = errors.New("test skipped")

// TaskStatus is a terminal task outcome.
type TaskStatus string

const (
	StatusPassed  TaskStatus = "passed"
	StatusFailed  TaskStatus = "failed"
	StatusSkipped TaskStatus = "skipped"
	StatusTimeout TaskStatus = "timeout"
	StatusError   TaskStatus = "error"
)

// TestTask is an immutable declaration of one schedulable test. Higher
// priority runs first. Run receives the driver bound to the worker's
// allocated device; a nil error is a pass and ErrSkip is a skip.
type TestTask struct {
	ID       string
	Name     string
	Suite    string
	Priority int
	Timeout  time.Duration
	Retries  int
	Tags     []string
	Run      func(driver core.Driver) error
}

// HasTag reports whether the task carries the tag.
func (t TestTask) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// FilterByTags selects tasks by tag. A task runs when it carries at least
// one include tag (or include is empty) and none of the exclude tags.
func FilterByTags(tasks []TestTask, include, exclude []string) []TestTask {
	var out []TestTask
	for _, task := range tasks {
		if tagged(task, exclude) {
			continue
		}
		if len(include) > 0 && !tagged(task, include) {
			continue
		}
		out = append(out, task)
	}
	return out
}

func tagged(t TestTask, tags []string) bool {
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

// TaskResult is the single terminal outcome of a task. Exactly one result
// is emitted per task regardless of how many attempts it took.
type TaskResult struct {
	TaskID     string        `json:"task_id"`
	Name       string        `json:"name"`
	Suite      string        `json:"suite,omitempty"`
	Status     TaskStatus    `json:"status"`
	Duration   time.Duration `json:"duration"`
	Message    string        `json:"message,omitempty"`
	RetryCount int           `json:"retry_count"`
	WorkerID   int           `json:"worker_id"`
}

// Passed reports whether the task ultimately succeeded.
func (r TaskResult) Passed() bool { return r.Status == StatusPassed }
