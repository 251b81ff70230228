// Package stream implements the listen_* subscription streams: typed,
// filtered, lazy sequences derived from an OrderBookManager's shared update
// channel.
//
// Competitive, not broadcast. The manager's update channel is a single
// many-producer/many-consumer Go channel; every emitted OrderBookUpdate is
// received by exactly one reader. Each listen_* call here starts its own
// goroutine reading that same channel, so subscribing to two streams
// concurrently (e.g. NewTrades and OrderbookFills at once) silently
// partitions the stream between them: a FILLED event taken by the trades
// listener is discarded as a non-match and never reaches the fills
// listener, and a NEW_TRADE event taken by the fills listener is likewise
// lost to the trades listener. This
// just mirrors a Go channel's native delivery semantics rather than
// introducing a fan-out hub. Callers that need the same event visible to
// more than one logical consumer must run a single demultiplexer goroutine
// themselves and fan out to per-consumer queues; a correct topology
// otherwise constrains itself to exactly one stream per manager.
package stream

import (
	"context"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/saiputravu/orderbook/internal/common"
)

// Subscription is a cancellable, typed sequence produced by a supervised
// goroutine. It is restartable only by calling the originating listen_*
// function again; once stopped, a Subscription is spent.
type Subscription[T any] struct {
	out  chan T
	t    *tomb.Tomb
	kind string
}

// Out returns the channel payloads are delivered on. It is closed when the
// subscription stops, whether by context cancellation, Stop, or the source
// channel closing.
func (s *Subscription[T]) Out() <-chan T {
	return s.out
}

// Stop requests the subscription's goroutine to exit and waits for it.
func (s *Subscription[T]) Stop() error {
	s.t.Kill(nil)
	return s.t.Wait()
}

// Err returns the reason the subscription's goroutine exited, if any.
func (s *Subscription[T]) Err() error {
	return s.t.Err()
}

// Option configures a listen_* subscription. WithBufferSize is currently
// the only one.
type Option func(*options)

type options struct {
	bufferSize int
}

// WithBufferSize sets the capacity of the Subscription's Out channel. The
// default is unbuffered, which means a slow Out reader applies backpressure
// all the way to the goroutine draining the manager's shared channel.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// run is the shared pump every listen_* builds on: read source until it
// closes or the tomb dies, applying filter+project to each update and
// forwarding the ones that match.
func run[T any](ctx context.Context, kind string, source <-chan common.OrderBookUpdate, project func(common.OrderBookUpdate) (T, bool), opts ...Option) *Subscription[T] {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	if o.bufferSize < 0 {
		o.bufferSize = 0
	}

	t, tombCtx := tomb.WithContext(ctx)
	sub := &Subscription[T]{
		out:  make(chan T, o.bufferSize),
		t:    t,
		kind: kind,
	}

	t.Go(func() error {
		defer close(sub.out)
		for {
			select {
			case <-t.Dying():
				return nil
			case <-tombCtx.Done():
				return tombCtx.Err()
			case update, ok := <-source:
				if !ok {
					return nil
				}
				value, matched := project(update)
				if !matched {
					continue
				}
				select {
				case sub.out <- value:
				case <-t.Dying():
					return nil
				}
			}
		}
	})

	log.Debug().Str("stream", kind).Msg("subscription started")
	return sub
}
