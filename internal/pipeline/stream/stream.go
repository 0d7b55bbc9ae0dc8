// Package stream buffers a Source's raw entity/error channels behind a
// bounded queue so a slow destination never forces a fast source to block
// inside its own Produce goroutine, and so an orchestrator can cancel and
// drain a run deterministically.
package stream

import (
	"context"

	"github.com/airweave-ai/airweave-core/internal/core/domain"
	"github.com/airweave-ai/airweave-core/internal/logging"
)

var log = logging.Component("pipeline-stream")

// DefaultCapacity is the queue depth applied when callers don't override it
// (§4.2): enough to absorb a source's burst without unbounded memory growth.
const DefaultCapacity = 10000

// Stream is a bounded, cancellable relay between a source's entity/error
// channels and a consumer. Entities are dropped only once the stream itself
// has been cancelled (Drain logs how many it discarded, at debug level);
// before that it blocks the upstream producer, providing backpressure.
type Stream struct {
	capacity int
	entities chan domain.Entity
	errs     chan error
	done     chan struct{}
}

// New creates a Stream with the given capacity. A capacity <= 0 uses
// DefaultCapacity.
func New(capacity int) *Stream {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stream{
		capacity: capacity,
		entities: make(chan domain.Entity, capacity),
		errs:     make(chan error, capacity),
		done:     make(chan struct{}),
	}
}

// Pump copies from the source's raw channels into the bounded queue until
// both close or ctx is cancelled. It runs in its own goroutine; callers read
// Entities()/Errors() from the consumer side.
func (s *Stream) Pump(ctx context.Context, entitiesCh <-chan domain.Entity, errsCh <-chan error) {
	defer close(s.entities)
	defer close(s.errs)

	for entitiesCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case e, ok := <-entitiesCh:
			if !ok {
				entitiesCh = nil
				continue
			}
			select {
			case s.entities <- e:
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			select {
			case s.errs <- err:
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
	}
}

// Entities returns the consumer-facing entity channel.
func (s *Stream) Entities() <-chan domain.Entity { return s.entities }

// Errors returns the consumer-facing error channel.
func (s *Stream) Errors() <-chan error { return s.errs }

// Cancel stops Pump and unblocks any goroutine waiting to enqueue. Safe to
// call more than once.
func (s *Stream) Cancel() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Drain discards any entities left buffered in the queue after a run ends,
// so a cancelled Pump's in-flight send doesn't leak a blocked goroutine.
// Returns the number of entities discarded.
func (s *Stream) Drain() int {
	discarded := 0
	for {
		select {
		case _, ok := <-s.entities:
			if !ok {
				return discarded
			}
			discarded++
		default:
			if discarded > 0 {
				log.Debugf("drained %d buffered entities", discarded)
			}
			return discarded
		}
	}
}

// Capacity returns the stream's configured buffer depth.
func (s *Stream) Capacity() int { return s.capacity }
