// Implements the ReadyQueue, which holds arrived processes waiting for the CPU.
// Processes are pushed on arrival and whenever they are preempted.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is an ordered collection of arrived, unfinished, non-running processes.
// FCFS and RR use it as a FIFO (PushBack/PopFront, O(1) amortized); SJF and SRTF
// scan it with MinBy and take the winner out with RemoveAt (O(n)).
type ReadyQueue struct {
	queue []*Process
}

// PushBack adds a process to the tail of the queue.
func (rq *ReadyQueue) PushBack(p *Process) {
	if p == nil {
		panic("PushBack: p must not be nil")
	}
	rq.queue = append(rq.queue, p)
}

// PopFront removes and returns the process at the head of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) PopFront() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	head := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return head
}

// Peek returns the process at the head of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// MinBy returns the index of the process with the smallest key.
// Ties resolve to the earliest position. Returns -1 if the queue is empty.
func (rq *ReadyQueue) MinBy(key func(*Process) int) int {
	if key == nil {
		panic("MinBy: key must not be nil")
	}
	best := -1
	bestKey := 0
	for i, p := range rq.queue {
		k := key(p)
		if best == -1 || k < bestKey {
			best, bestKey = i, k
		}
	}
	return best
}

// RemoveAt removes and returns the process at index i, preserving the
// relative order of the others.
func (rq *ReadyQueue) RemoveAt(i int) *Process {
	if i < 0 || i >= len(rq.queue) {
		panic(fmt.Sprintf("RemoveAt: index %d out of range [0,%d)", i, len(rq.queue)))
	}
	p := rq.queue[i]
	rq.queue = append(rq.queue[:i], rq.queue[i+1:]...)
	return p
}

// Remove takes the process with the given ID out of the queue.
// Returns nil if no such process is queued.
func (rq *ReadyQueue) Remove(id int) *Process {
	for i, p := range rq.queue {
		if p.ID == id {
			return rq.RemoveAt(i)
		}
	}
	return nil
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers within the
// sim package may iterate over it but MUST NOT append to or reslice it.
func (rq *ReadyQueue) Items() []*Process {
	return rq.queue
}

// IDs returns the process IDs in queue order as a fresh slice.
func (rq *ReadyQueue) IDs() []int {
	ids := make([]int, len(rq.queue))
	for i, p := range rq.queue {
		ids[i] = p.ID
	}
	return ids
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(fmt.Sprint(p.ID))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
