package executor

import (
	"fmt"
	"testing"
)

// TestShard_DisjointUnionComplete verifies that for any shard count, every
// index lands in exactly one shard.
func TestShard_DisjointUnionComplete(t *testing.T) {
	const n = 100

	for total := 1; total <= 7; total++ {
		t.Run(fmt.Sprintf("shards=%d", total), func(t *testing.T) {
			owners := make([]int, n)
			for i := range owners {
				owners[i] = -1
			}

			for shard := 0; shard < total; shard++ {
				s := TestShard{Index: shard, Total: total}
				for i := 0; i < n; i++ {
					if !s.ShouldRun(i) {
						continue
					}
					if owners[i] != -1 {
						t.Errorf("index %d claimed by shards %d and %d", i, owners[i], shard)
					}
					owners[i] = shard
				}
			}

			for i, owner := range owners {
				if owner == -1 {
					t.Errorf("index %d claimed by no shard", i)
				}
			}
		})
	}
}

func TestShard_SingleShardRunsEverything(t *testing.T) {
	s := TestShard{Index: 0, Total: 1}
	for i := 0; i < 10; i++ {
		if !s.ShouldRun(i) {
			t.Errorf("expected index %d to run in the only shard", i)
		}
	}

	// Zero total behaves like no sharding
	s = TestShard{}
	if !s.ShouldRun(3) {
		t.Error("expected unsharded config to run everything")
	}
}

func TestShard_FilterTasksIsPositional(t *testing.T) {
	tasks := []TestTask{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}

	s0 := TestShard{Index: 0, Total: 2}
	s1 := TestShard{Index: 1, Total: 2}

	got0 := s0.FilterTasks(tasks)
	got1 := s1.FilterTasks(tasks)

	wantIDs := func(got []TestTask, want ...string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("expected %d tasks, got %d", len(want), len(got))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("task[%d]: expected %s, got %s", i, id, got[i].ID)
			}
		}
	}

	wantIDs(got0, "a", "c", "e")
	wantIDs(got1, "b", "d")
}
