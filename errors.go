package funnel

import "fmt"

// PayloadSendError reports that the consumer for this emitter's event subset
// is gone. The undelivered event rides along so the caller can inspect, log,
// or requeue it instead of losing it.
type PayloadSendError[E any] struct {
	Event E
	cause error
}

func (e *PayloadSendError[E]) Error() string {
	return fmt.Sprintf("funnel: event not delivered, payload channel disconnected: %v", e.Event)
}

func (e *PayloadSendError[E]) Unwrap() error {
	return e.cause
}

// CategorySendError reports that the shared category channel has no live
// consumer, meaning the whole fan-in is down rather than one subset. The
// payload for this send was already delivered when this error is returned;
// only the announcement was lost. The rejected category tag rides along.
type CategorySendError[C comparable] struct {
	Category C
	cause    error
}

func (e *CategorySendError[C]) Error() string {
	return fmt.Sprintf("funnel: category not announced, category channel disconnected: %v", e.Category)
}

func (e *CategorySendError[C]) Unwrap() error {
	return e.cause
}
