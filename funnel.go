package funnel

import (
	"github.com/casualjim/funnel/mpsc"
	"github.com/fogfish/opts"
)

// Emitter is a producer handle bound to one category value and one payload
// type. The binding is fixed at construction: an Emitter[C, E] can only ever
// deliver E values and only ever announce its own category tag, so handing an
// emitter to a module is handing it a capability for exactly that slice of
// the event space.
//
// Emitters are cheap values. Pass them by value, but give every goroutine
// that wants its own lifecycle a Clone, since the underlying sender handles
// are closed per handle, not per channel.
type Emitter[C comparable, E any] struct {
	events     *mpsc.Sender[E]
	category   C
	categories *mpsc.Sender[C]
}

// New binds an emitter to its category. It takes ownership of both sender
// handles: the private payload sender and a handle (usually a Clone) of the
// program-wide category sender. The three inputs are trusted to be correctly
// paired by the caller that owns the receiving ends; no validation happens
// here and construction has no other effect.
func New[C comparable, E any](events *mpsc.Sender[E], category C, categories *mpsc.Sender[C]) Emitter[C, E] {
	return Emitter[C, E]{
		events:     events,
		category:   category,
		categories: categories,
	}
}

// Wire builds the payload channel and its bound emitter in one call, handing
// back the receiver for whoever owns the consumer loop. It is sugar over
// mpsc.New and New; the options configure the payload channel.
func Wire[C comparable, E any](category C, categories *mpsc.Sender[C], options ...opts.Option[mpsc.Config]) (Emitter[C, E], *mpsc.Receiver[E]) {
	tx, rx := mpsc.New[E](options...)
	return New(tx, category, categories), rx
}

// Category returns the category value this emitter announces on every send.
func (e Emitter[C, E]) Category() C {
	return e.category
}

// Send delivers event on the payload channel and then announces the bound
// category on the shared category channel, in that order. The order is the
// contract the consumer relies on: a category notification implies the
// payload was already enqueued.
//
// The two enqueues are not atomic. If the payload delivery fails the send
// stops there and the event comes back inside a *PayloadSendError. If the
// payload was delivered but the category announcement fails, the tag comes
// back inside a *CategorySendError and the payload remains enqueued,
// unannounced. Send never retries and never blocks on the category channel
// under the default unbounded configuration.
func (e Emitter[C, E]) Send(event E) error {
	if err := e.events.Send(event); err != nil {
		return &PayloadSendError[E]{Event: event, cause: err}
	}
	if err := e.categories.Send(e.category); err != nil {
		return &CategorySendError[C]{Category: e.category, cause: err}
	}
	return nil
}

// Clone returns an independent emitter feeding the same two channels. Sends
// through a clone are indistinguishable from sends through the original;
// cloning exists so that many call sites in one module can each hold and
// close their own handle.
func (e Emitter[C, E]) Clone() Emitter[C, E] {
	return Emitter[C, E]{
		events:     e.events.Clone(),
		category:   e.category,
		categories: e.categories.Clone(),
	}
}

// Close releases the emitter's two sender handles. When the last handles on a
// channel are released the consumer's blocking read reports end-of-stream,
// which is the idiomatic way to tear the whole fan-in down without a
// dedicated shutdown event. Close is idempotent per emitter.
func (e Emitter[C, E]) Close() {
	e.events.Close()
	e.categories.Close()
}
