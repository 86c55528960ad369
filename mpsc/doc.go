// Package mpsc implements the multi-producer, single-consumer FIFO queue that
// the funnel emitters are built on. Go's built-in channels are close but not
// close enough: a send on a native channel cannot observe that the receiving
// side went away, producer handles are not counted, and a non-blocking receive
// cannot distinguish "nothing buffered right now" from "no producer will ever
// send again". All three distinctions matter to a dispatch primitive that
// promises to hand a rejected value back to its caller.
//
// Design decisions:
//   - Handles, not channels: producers hold *Sender values and the consumer
//     holds a *Receiver. Senders are cloned (reference counted), never shared.
//   - Send fails fast: once the Receiver is closed, Send returns ErrDisconnected
//     without consuming the value.
//   - End-of-stream is explicit: when the last Sender closes, a blocking Recv
//     drains whatever is buffered and then returns ErrDisconnected.
//   - TryRecv never blocks: it returns ErrEmpty while producers are still
//     live, ErrDisconnected once the stream can produce nothing further.
//   - Unbounded by default: Send never blocks unless WithCapacity selects a
//     bounded buffer, in which case Send blocks while the buffer is full.
//
// Example usage:
//
//	tx, rx := mpsc.New[string]()
//	go func() {
//		defer tx.Close()
//		_ = tx.Send("hello")
//	}()
//	for {
//		msg, err := rx.Recv()
//		if err != nil {
//			break // all senders closed
//		}
//		fmt.Println(msg)
//	}
package mpsc
