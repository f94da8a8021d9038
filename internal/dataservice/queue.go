package dataservice

import (
	"sync/atomic"

	"github.com/pitchcore/exchange-sim/internal/pitch"
)

// DefaultQueueCapacity matches the reference sizing of the hand-off buffer
// between matching shards and the data service consumer.
const DefaultQueueCapacity = 128

// Queue is the bounded hand-off from matching goroutines to the data service
// drain loop. Pushes never block: when the consumer falls behind, frames are
// dropped and counted rather than stalling matching.
type Queue struct {
	ch      chan pitch.Message
	dropped atomic.Uint64
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{ch: make(chan pitch.Message, capacity)}
}

// TryPush enqueues one frame, reporting whether it was accepted.
func (q *Queue) TryPush(m pitch.Message) bool {
	select {
	case q.ch <- m:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Dropped returns the number of frames discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

func (q *Queue) Len() int {
	return len(q.ch)
}

func (q *Queue) Cap() int {
	return cap(q.ch)
}
