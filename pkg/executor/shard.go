package executor

// TestShard deterministically partitions a task list for CI sharding.
// Correct non-overlapping partitioning requires every shard job to see
// the same task ordering.
type TestShard struct {
	Index int // 0-based shard index
	Total int // total number of shards, >= 1
}

// ShouldRun reports whether the task at position idx belongs to this shard.
func (s TestShard) ShouldRun(idx int) bool {
	if s.Total <= 1 {
		return true
	}
	return idx%s.Total == s.Index
}

// FilterTasks returns the positional subset of tasks belonging to this shard.
func (s TestShard) FilterTasks(tasks []TestTask) []TestTask {
	var out []TestTask
	for i, t := range tasks {
		if s.ShouldRun(i) {
			out = append(out, t)
		}
	}
	return out
}
