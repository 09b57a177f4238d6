// Package testing holds fakes shared by package tests.
package testing

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/petkey/petkey/keymap"
)

// SinkCall is one recorded call on a RecordingSink.
type SinkCall struct {
	Op  string // "press" or "release"
	Key keymap.KeyCode
}

func (c SinkCall) String() string {
	if c.Op == "release" {
		return "release"
	}
	return fmt.Sprintf("press(%v)", c.Key)
}

// PressCall and ReleaseCall build expected call lists.
func PressCall(k keymap.KeyCode) SinkCall { return SinkCall{Op: "press", Key: k} }
func ReleaseCall() SinkCall { return SinkCall{Op: "release"} }

// ErrSinkFailed is returned by a RecordingSink configured to fail.
var ErrSinkFailed = errors.New("sink failed")

// RecordingSink records Press and ReleaseAll calls. It is safe for use from
// the deferred release timer.
type RecordingSink struct {
	mu    sync.Mutex
	calls []SinkCall

	// FailPress makes Press return ErrSinkFailed for this key.
	FailPress keymap.KeyCode
	// FailRelease makes ReleaseAll return ErrSinkFailed.
	FailRelease bool
	// Released, if set, receives a value after every ReleaseAll.
	Released chan struct{}
}

func (s *RecordingSink) Press(k keymap.KeyCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, PressCall(k))
	if s.FailPress != keymap.KeyNone && k == s.FailPress {
		return ErrSinkFailed
	}
	return nil
}

func (s *RecordingSink) ReleaseAll() error {
	s.mu.Lock()
	s.calls = append(s.calls, ReleaseCall())
	fail := s.FailRelease
	s.mu.Unlock()
	if s.Released != nil {
		s.Released <- struct{}{}
	}
	if fail {
		return ErrSinkFailed
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (s *RecordingSink) Calls() []SinkCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return nil
	}
	out := make([]SinkCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// Reset forgets recorded calls.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// ByteQueue is a ByteSource fed from a fixed byte slice. It reports End once
// the bytes are used up.
type ByteQueue struct {
	mu    sync.Mutex
	data  []byte
	End   error
	Empty int // polls that report "no byte" before each delivered byte
	skip  int
}

// NewByteQueue returns a queue delivering data and then io.EOF.
func NewByteQueue(data ...byte) *ByteQueue {
	return &ByteQueue{data: data, End: io.EOF}
}

func (q *ByteQueue) TryReadByte() (byte, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.data) == 0 {
		return 0, false, q.End
	}
	if q.skip < q.Empty {
		q.skip++
		return 0, false, nil
	}
	q.skip = 0
	b := q.data[0]
	q.data = q.data[1:]
	return b, true, nil
}

func (q *ByteQueue) Close() error { return nil }
