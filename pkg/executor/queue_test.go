package executor

import "testing"

func TestWorkQueue_PriorityOrder(t *testing.T) {
	q := NewWorkQueue()
	q.AddTask(TestTask{ID: "low", Priority: 1})
	q.AddTask(TestTask{ID: "high", Priority: 9})
	q.AddTask(TestTask{ID: "mid", Priority: 5})

	want := []string{"high", "mid", "low"}
	for _, id := range want {
		task, ok := q.GetTask()
		if !ok {
			t.Fatalf("expected task %s, queue empty", id)
		}
		if task.ID != id {
			t.Errorf("expected %s, got %s", id, task.ID)
		}
	}

	if _, ok := q.GetTask(); ok {
		t.Error("expected empty queue")
	}
}

func TestWorkQueue_Progress(t *testing.T) {
	q := NewWorkQueue()
	q.AddTask(TestTask{ID: "a"})
	q.AddTask(TestTask{ID: "b"})

	p := q.Progress()
	if p.Total != 2 || p.Completed != 0 || p.Active != 0 {
		t.Errorf("unexpected initial progress: %+v", p)
	}
	if p.Done() {
		t.Error("queue with pending tasks must not be done")
	}

	task, _ := q.GetTask()
	p = q.Progress()
	if p.Active != 1 {
		t.Errorf("expected 1 active, got %d", p.Active)
	}
	if p.Done() {
		t.Error("queue with an in-flight task must not be done")
	}

	q.AddResult(TaskResult{TaskID: task.ID, Status: StatusPassed})
	p = q.Progress()
	if p.Completed != 1 || p.Active != 0 {
		t.Errorf("unexpected progress after result: %+v", p)
	}

	task, _ = q.GetTask()
	q.AddResult(TaskResult{TaskID: task.ID, Status: StatusFailed})
	if !q.Progress().Done() {
		t.Error("expected done once every task has a result")
	}
}

func TestWorkQueue_ResultsAreCopies(t *testing.T) {
	q := NewWorkQueue()
	q.AddTask(TestTask{ID: "a"})
	task, _ := q.GetTask()
	q.AddResult(TaskResult{TaskID: task.ID, Status: StatusPassed})

	results := q.Results()
	results[0].Status = StatusFailed

	if q.Results()[0].Status != StatusPassed {
		t.Error("mutating a Results copy should not affect the queue")
	}
}
