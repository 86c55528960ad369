package mpsc

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/fogfish/opts"
)

var (
	// ErrDisconnected is reported when the other side of the channel is gone:
	// by Send once the receiver closed, and by Recv/TryRecv once every sender
	// closed and the buffer is drained.
	ErrDisconnected = errors.New("mpsc: channel disconnected")

	// ErrEmpty is reported by TryRecv when nothing is buffered but at least
	// one sender is still live, so another item may yet arrive.
	ErrEmpty = errors.New("mpsc: channel empty")
)

// Config carries the channel construction options.
type Config struct {
	// Capacity bounds the buffer; zero means unbounded.
	Capacity int
}

// WithCapacity bounds the channel buffer to n items. Send blocks while the
// buffer is full. The default is an unbounded buffer on which Send never
// blocks.
var WithCapacity = opts.ForName[Config, int]("Capacity")

// channel is the state shared by all Sender clones and the Receiver.
type channel[T any] struct {
	mu       sync.Mutex
	notEmpty sync.Cond
	notFull  sync.Cond

	buf      []T
	capacity int  // 0 = unbounded
	senders  int  // live sender handles
	closed   bool // receiver closed
}

// New creates a channel and returns its first producer handle and its sole
// consumer handle. Additional producers are made with Sender.Clone, never by
// sharing a *Sender between goroutines that close independently.
func New[T any](options ...opts.Option[Config]) (*Sender[T], *Receiver[T]) {
	var cfg Config
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}

	ch := &channel[T]{capacity: cfg.Capacity, senders: 1}
	ch.notEmpty.L = &ch.mu
	ch.notFull.L = &ch.mu
	return &Sender[T]{ch: ch}, &Receiver[T]{ch: ch}
}

// Sender is a producer handle. Clones share the underlying buffer; each clone
// is closed exactly once, and the channel reaches end-of-stream when the last
// clone closes.
type Sender[T any] struct {
	ch     *channel[T]
	closed atomic.Bool
}

// Send enqueues v, blocking while a bounded buffer is full. It returns
// ErrDisconnected, leaving v undelivered, once the receiver has closed or
// this handle itself was closed.
func (s *Sender[T]) Send(v T) error {
	if s.closed.Load() {
		return ErrDisconnected
	}

	c := s.ch
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if c.closed {
			return ErrDisconnected
		}
		if c.capacity == 0 || len(c.buf) < c.capacity {
			break
		}
		c.notFull.Wait()
	}

	c.buf = append(c.buf, v)
	c.notEmpty.Signal()
	return nil
}

// Clone returns a new independent producer handle for the same channel.
// Cloning a closed handle is a programming error: it would resurrect a stream
// the consumer may already have seen end on.
func (s *Sender[T]) Clone() *Sender[T] {
	if s.closed.Load() {
		panic("mpsc: Clone on a closed Sender")
	}
	c := s.ch
	c.mu.Lock()
	c.senders++
	c.mu.Unlock()
	return &Sender[T]{ch: c}
}

// Close releases this producer handle. Closing the last handle wakes a
// blocked Recv so the consumer can observe end-of-stream. Close is idempotent
// and must be called once per handle, including clones.
func (s *Sender[T]) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	c := s.ch
	c.mu.Lock()
	c.senders--
	if c.senders == 0 {
		c.notEmpty.Broadcast()
	}
	c.mu.Unlock()
}

// Receiver is the single consumer handle for a channel.
type Receiver[T any] struct {
	ch   *channel[T]
	once sync.Once
}

// Recv blocks until an item is available and returns it. Buffered items are
// still delivered after the senders are gone; once the buffer is drained and
// no sender remains (or this receiver closed itself), Recv returns
// ErrDisconnected.
func (r *Receiver[T]) Recv() (T, error) {
	c := r.ch
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if len(c.buf) > 0 {
			return c.pop(), nil
		}
		if c.closed || c.senders == 0 {
			var zero T
			return zero, ErrDisconnected
		}
		c.notEmpty.Wait()
	}
}

// TryRecv returns the next buffered item without blocking. It reports
// ErrEmpty when the buffer is empty but senders remain, and ErrDisconnected
// when nothing is buffered and nothing more can arrive.
func (r *Receiver[T]) TryRecv() (T, error) {
	c := r.ch
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.buf) > 0 {
		return c.pop(), nil
	}
	var zero T
	if c.closed || c.senders == 0 {
		return zero, ErrDisconnected
	}
	return zero, ErrEmpty
}

// Close tears the channel down from the consumer side: buffered items are
// discarded, every subsequent Send fails with ErrDisconnected, and senders
// blocked on a full bounded buffer are woken. Close is idempotent.
func (r *Receiver[T]) Close() {
	r.once.Do(func() {
		c := r.ch
		c.mu.Lock()
		c.closed = true
		c.buf = nil
		c.notFull.Broadcast()
		c.notEmpty.Broadcast()
		c.mu.Unlock()
	})
}

// pop removes and returns the head of the buffer. Callers hold c.mu.
func (c *channel[T]) pop() T {
	v := c.buf[0]
	var zero T
	c.buf[0] = zero // release the reference for the collector
	c.buf = c.buf[1:]
	if c.capacity > 0 {
		c.notFull.Signal()
	}
	return v
}
