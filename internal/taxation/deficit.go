package taxation

import (
	"math"

	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

// DeficitQueue is an immutable FIFO of carried-forward deficits. Every operation
// returns a new queue and leaves the receiver untouched.
type DeficitQueue struct {
	buckets []domain.DeficitBucket
}

func (q DeficitQueue) Len() int { return len(q.buckets) }

func (q DeficitQueue) Total() float64 {
	var total float64
	for _, b := range q.buckets {
		total += b.Remaining
	}
	return total
}

// Buckets returns a copy of the pending buckets, oldest first.
func (q DeficitQueue) Buckets() []domain.DeficitBucket {
	return append([]domain.DeficitBucket(nil), q.buckets...)
}

// Push queues amount incurred in year. Non-positive amounts are ignored.
func (q DeficitQueue) Push(year int, amount float64) DeficitQueue {
	if amount <= 0 {
		return q
	}
	next := make([]domain.DeficitBucket, len(q.buckets), len(q.buckets)+1)
	copy(next, q.buckets)
	return DeficitQueue{buckets: append(next, domain.DeficitBucket{YearIncurred: year, Remaining: amount})}
}

// Expire drops buckets that can no longer be used in year. A bucket incurred in
// year Y is usable through Y+lifetime. A zero lifetime never expires.
func (q DeficitQueue) Expire(year, lifetime int) DeficitQueue {
	if lifetime <= 0 || len(q.buckets) == 0 {
		return q
	}
	next := make([]domain.DeficitBucket, 0, len(q.buckets))
	for _, b := range q.buckets {
		if year-b.YearIncurred <= lifetime {
			next = append(next, b)
		}
	}
	return DeficitQueue{buckets: next}
}

// Consume offsets up to amount against the oldest buckets first.
func (q DeficitQueue) Consume(amount float64) (DeficitQueue, float64) {
	if amount <= 0 || len(q.buckets) == 0 {
		return q, 0
	}
	next := make([]domain.DeficitBucket, 0, len(q.buckets))
	var used float64
	for _, b := range q.buckets {
		take := math.Min(b.Remaining, amount-used)
		used += take
		if b.Remaining-take > 0 {
			next = append(next, domain.DeficitBucket{YearIncurred: b.YearIncurred, Remaining: b.Remaining - take})
		}
	}
	return DeficitQueue{buckets: next}, used
}

// NewDeficitQueue builds a queue from existing buckets, oldest first.
func NewDeficitQueue(buckets ...domain.DeficitBucket) DeficitQueue {
	q := DeficitQueue{}
	for _, b := range buckets {
		q = q.Push(b.YearIncurred, b.Remaining)
	}
	return q
}
