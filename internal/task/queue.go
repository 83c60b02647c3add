package task

import (
	"container/heap"
	"sort"
)

// readyQueue is a min-heap of tasks ordered by Task.Less. Only tasks
// with an empty dependency set are ever pushed; a task becomes a queue
// entry at creation (if it starts with no dependencies) or when
// readiness propagation empties its set.
//
// Deletion is lazy. Completing a task does not touch the heap, so the
// queue may hold entries that are no longer live. Liveness is checked
// against the authoritative active set at read time: an entry is live
// only while the active set still maps its name to the same *Task
// (pointer identity guards against a completed name being reused for a
// fresh task). Dead heads are discarded as peek encounters them; dead
// entries elsewhere in the heap wait their turn.
type readyQueue []*Task

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(i, j int) bool { return q[i].Less(q[j]) }

func (q readyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Push appends x. Use heap.Push, never call this directly.
func (q *readyQueue) Push(x any) {
	*q = append(*q, x.(*Task))
}

// Pop removes and returns the last element. Use heap.Pop.
func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// peek returns the minimum live task without removing it, popping dead
// heads along the way. Returns nil when the queue holds no live entry.
// Calling peek twice without an intervening mutation returns the same
// task.
func (q *readyQueue) peek(active map[string]*Task) *Task {
	for q.Len() > 0 {
		head := (*q)[0]
		if active[head.Name] == head {
			return head
		}
		heap.Pop(q)
	}
	return nil
}

// live returns every live entry sorted by the scheduling order. It is a
// read-only snapshot: the heap is not mutated, so dead non-head entries
// remain for peek to purge later.
func (q readyQueue) live(active map[string]*Task) []*Task {
	out := make([]*Task, 0, len(q))
	for _, t := range q {
		if active[t.Name] == t {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
