package mpsc

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSendRecvFIFO(t *testing.T) {
	tx, rx := New[int]()

	for i := range 5 {
		require.NoError(t, tx.Send(i))
	}
	for i := range 5 {
		v, err := rx.Recv()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestTryRecv(t *testing.T) {
	tx, rx := New[string]()

	_, err := rx.TryRecv()
	require.ErrorIs(t, err, ErrEmpty, "live sender, nothing buffered")

	require.NoError(t, tx.Send("hello"))
	v, err := rx.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	tx.Close()
	_, err = rx.TryRecv()
	require.ErrorIs(t, err, ErrDisconnected, "no sender, nothing buffered")
}

func TestBufferedItemsSurviveSenderClose(t *testing.T) {
	tx, rx := New[int]()
	require.NoError(t, tx.Send(1))
	require.NoError(t, tx.Send(2))
	tx.Close()

	v, err := rx.Recv()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = rx.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = rx.Recv()
	require.ErrorIs(t, err, ErrDisconnected)
}

func TestRecvUnblocksWhenLastSenderCloses(t *testing.T) {
	tx, rx := New[int]()
	clone := tx.Clone()

	done := make(chan error, 1)
	go func() {
		_, err := rx.Recv()
		done <- err
	}()

	tx.Close()
	select {
	case <-done:
		t.Fatal("Recv returned while a clone was still live")
	case <-time.After(50 * time.Millisecond):
	}

	clone.Close()
	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrDisconnected)
	case <-time.After(time.Second):
		t.Fatal("Recv did not unblock after the last sender closed")
	}
}

func TestSendFailsAfterReceiverClose(t *testing.T) {
	tx, rx := New[int]()
	rx.Close()

	err := tx.Send(42)
	require.ErrorIs(t, err, ErrDisconnected)
}

func TestSenderCloseIsIdempotent(t *testing.T) {
	tx, rx := New[int]()
	clone := tx.Clone()

	// Closing the same handle twice must not decrement the count twice.
	tx.Close()
	tx.Close()

	require.NoError(t, clone.Send(7))
	v, err := rx.Recv()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestBoundedSendBlocksUntilRecv(t *testing.T) {
	tx, rx := New[int](WithCapacity(1))
	require.NoError(t, tx.Send(1))

	sent := make(chan struct{})
	go func() {
		_ = tx.Send(2)
		close(sent)
	}()

	select {
	case <-sent:
		t.Fatal("Send returned with the buffer full")
	case <-time.After(50 * time.Millisecond):
	}

	v, err := rx.Recv()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("Send did not unblock after Recv made room")
	}
}

func TestBoundedSendUnblocksOnReceiverClose(t *testing.T) {
	tx, rx := New[int](WithCapacity(1))
	require.NoError(t, tx.Send(1))

	done := make(chan error, 1)
	go func() {
		done <- tx.Send(2)
	}()

	time.Sleep(20 * time.Millisecond)
	rx.Close()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrDisconnected)
	case <-time.After(time.Second):
		t.Fatal("blocked Send did not observe the receiver closing")
	}
}

func TestManyProducersAllDelivered(t *testing.T) {
	const producers = 8
	const perProducer = 100

	tx, rx := New[int]()

	var wg sync.WaitGroup
	for p := range producers {
		clone := tx.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer clone.Close()
			for i := range perProducer {
				assert.NoError(t, clone.Send(p*perProducer+i))
			}
		}()
	}
	tx.Close()

	seen := make(map[int]bool, producers*perProducer)
	recvDone := make(chan struct{})
	go func() {
		defer close(recvDone)
		for {
			v, err := rx.Recv()
			if err != nil {
				return
			}
			seen[v] = true
		}
	}()

	wg.Wait()
	select {
	case <-recvDone:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not reach end-of-stream")
	}
	assert.Len(t, seen, producers*perProducer)
}

func TestProperty_FIFOPreservedPerChannel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		items := rapid.SliceOfN(rapid.Int(), 0, 200).Draw(rt, "items")
		capacity := rapid.IntRange(0, 8).Draw(rt, "capacity")

		tx, rx := New[int](WithCapacity(capacity))
		done := make(chan []int, 1)
		go func() {
			var got []int
			for {
				v, err := rx.Recv()
				if err != nil {
					break
				}
				got = append(got, v)
			}
			done <- got
		}()

		for _, v := range items {
			if err := tx.Send(v); err != nil {
				rt.Fatalf("send failed: %v", err)
			}
		}
		tx.Close()

		got := <-done
		if len(items) == 0 {
			require.Empty(rt, got)
			return
		}
		require.Equal(rt, items, got, "receive order diverged from send order")
	})
}
