// Package peripheral implements the sensor-side node: the pending-event
// queue, the command channel, the sampling tasks, and the bus port service.
package peripheral

import (
	"sync"

	"nodelink-go/wire"
)

// EventQueue holds at most one pending event per kind. A sample offered while
// its kind is already pending is dropped silently: designed backpressure, the
// peripheral never overwrites an unconsumed event. NextOutgoing is the sole
// consumer and serves kinds in fixed priority order, card before environment.
//
// Offer runs in the main loop's sampling tasks, NextOutgoing in the port's
// request path; the mutex is the critical section joining the two (spec'd as
// the interrupt/main-loop boundary on hardware).
type EventQueue struct {
	mu sync.Mutex

	card        wire.Frame
	cardPending bool
	env         wire.Frame
	envPending  bool
}

// Offer stores an encoded event only if no event of kind is pending. The
// false return is not an error; the caller skips re-sampling until the slot
// frees. Payloads over the frame limit surface the codec error.
func (q *EventQueue) Offer(kind wire.Kind, payload []byte) (bool, error) {
	f, err := wire.Encode(kind, payload)
	if err != nil {
		return false, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	switch kind {
	case wire.KindCard:
		if q.cardPending {
			return false, nil
		}
		q.card = f
		q.cardPending = true
	case wire.KindEnv:
		if q.envPending {
			return false, nil
		}
		q.env = f
		q.envPending = true
	default:
		return false, nil
	}
	return true, nil
}

// OfferCard queues a card event if the card slot is free.
func (q *EventQueue) OfferCard(id wire.CardID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cardPending {
		return false
	}
	q.card = wire.EncodeCard(id)
	q.cardPending = true
	return true
}

// OfferEnv queues an environment event if the env slot is free.
func (q *EventQueue) OfferEnv(r wire.EnvReading) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.envPending {
		return false
	}
	q.env = wire.EncodeEnv(r)
	q.envPending = true
	return true
}

// Pending reports whether an event of kind is waiting. Sampling tasks use it
// to suppress reads while their slot is occupied.
func (q *EventQueue) Pending(kind wire.Kind) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch kind {
	case wire.KindCard:
		return q.cardPending
	case wire.KindEnv:
		return q.envPending
	}
	return false
}

// NextOutgoing returns the frame for the highest-priority pending kind and
// clears that slot; the idle frame when nothing is pending. Each stored
// sample is delivered at most once.
func (q *EventQueue) NextOutgoing() wire.Frame {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cardPending {
		q.cardPending = false
		return q.card
	}
	if q.envPending {
		q.envPending = false
		return q.env
	}
	return wire.Idle
}
