/*
Package funnel provides a typed event fan-in primitive: many independent
producer goroutines, each restricted to its own category of events, feeding a
single consumer that multiplexes all of them without blocking on more than one
source at a time.

The problem it solves is event-set hygiene. When several modules signal one
observer, the lazy design is a single shared event enumeration that every
module may send on, and sooner or later a module fires an event that was
never meant to originate from it. Funnel splits the event space instead: each
module gets its own payload type (its event subset), and an Emitter handle
that is permanently bound, at construction time, to exactly one category value
and that payload type. The type system makes cross-category dispatch
inexpressible rather than merely discouraged.

# Mechanics

An Emitter holds three things: a producer handle to its private payload
channel, its immutable category value, and a cloned producer handle to the
category channel shared by every emitter in the program. Send is two
sequential steps: deliver the payload, then announce the category. By the time
the consumer reads a category notification, the matching payload is (almost
always, see below) already waiting.

The consumer side is a plain loop owned by the caller: block on the category
channel, switch on the category, and drain the matching payload channel with a
non-blocking TryRecv. One goroutine observes every module this way.

	type category int

	const (
		network category = iota
		ui
	)

	categoryTx, categoryRx := mpsc.New[category]()

	networkTx, networkRx := mpsc.New[netEvent]()
	networkEvents := funnel.New(networkTx, network, categoryTx.Clone())

	uiTx, uiRx := mpsc.New[uiEvent]()
	uiEvents := funnel.New(uiTx, ui, categoryTx)

	go func() {
		for {
			cat, err := categoryRx.Recv()
			if err != nil {
				return
			}
			switch cat {
			case network:
				if ev, err := networkRx.TryRecv(); err == nil {
					// handle ev
				}
			case ui:
				if ev, err := uiRx.TryRecv(); err == nil {
					// handle ev
				}
			}
		}
	}()

	_ = networkEvents.Send(netEvent{Connected: true})

# Design decisions

  - Construction-time capability binding: the (category, payload type) pairing
    is fixed in the Emitter's type parameters and its stored category value;
    there is no rebind operation.
  - Two channels, no transaction: payload delivery happens-before category
    publication, but the two enqueues are not atomic. A consumer can read a
    category and find the payload channel still empty because the producer was
    preempted between the steps. That race is benign and accepted: skip the
    notification and continue, the payload's own ordering is unaffected. No
    internal retry is performed.
  - Failures return the value: a failed Send hands the undelivered event (or
    category tag) back inside the error, so nothing is silently dropped.
  - No internal logging, retries, or panics: every failure surfaces
    synchronously to the caller, who owns the policy.
  - Channel hand-off is the only coordination: no mutexes or shared mutable
    state outside the mpsc package.

# Error semantics

Send fails in one of two ways. A *PayloadSendError means the consumer for this
emitter's subset is gone; the event is inside the error. A *CategorySendError
means the shared consumer loop itself is gone, which is the more severe
condition. Because payload delivery already succeeded at that point, the
payload sits delivered but unannounced. Both unwrap to mpsc.ErrDisconnected.
*/
package funnel
