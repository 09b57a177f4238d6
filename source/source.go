// Package source adapts byte streams into the non-blocking ByteSource the
// bridge polls.
//
// Every adapter owns one goroutine that feeds a buffered queue; TryReadByte
// never blocks. Bytes are delivered one at a time in arrival order and the
// terminating error is only reported once the queue has been drained.
package source

import (
	"errors"
	"io"
	"net"
	"sync"
)

// QueueSize is the number of bytes an adapter buffers ahead of the reader.
const QueueSize = 4096

// ErrClosed is reported by TryReadByte after Close.
var ErrClosed = net.ErrClosed

// ByteSource yields one Commodore code at a time.
type ByteSource interface {
	// TryReadByte returns the next byte when one is available. ok is false
	// and err nil when nothing has arrived yet; a non-nil err means the
	// source has ended.
	TryReadByte() (b byte, ok bool, err error)
	io.Closer
}

type queue struct {
	ch   chan byte
	done chan struct{}
	once sync.Once
	err  error
}

func newQueue() *queue {
	return &queue{ch: make(chan byte, QueueSize), done: make(chan struct{})}
}

// push blocks until b is queued or the queue has finished.
func (q *queue) push(b byte) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.ch <- b:
		return true
	case <-q.done:
		return false
	}
}

// finish ends the queue with err. Only the first call counts.
func (q *queue) finish(err error) {
	q.once.Do(func() {
		q.err = err
		close(q.done)
	})
}

func (q *queue) TryReadByte() (byte, bool, error) {
	select {
	case b := <-q.ch:
		return b, true, nil
	default:
	}
	select {
	case <-q.done:
		select {
		case b := <-q.ch:
			return b, true, nil
		default:
		}
		return 0, false, q.err
	default:
		return 0, false, nil
	}
}

// Reader turns any io.Reader into a ByteSource.
type Reader struct {
	*queue
	r io.Reader
}

// NewReader starts pumping r. When r is also an io.Closer, Close closes it.
func NewReader(r io.Reader) *Reader {
	rd := &Reader{queue: newQueue(), r: r}
	go rd.pump()
	return rd
}

func (r *Reader) pump() {
	buf := make([]byte, 256)
	for {
		n, err := r.r.Read(buf)
		for _, b := range buf[:n] {
			if !r.push(b) {
				return
			}
		}
		if err != nil {
			r.finish(err)
			return
		}
	}
}

func (r *Reader) Close() error {
	r.finish(ErrClosed)
	if c, ok := r.r.(io.Closer); ok {
		if err := c.Close(); err != nil && !errors.Is(err, ErrClosed) {
			return err
		}
	}
	return nil
}
