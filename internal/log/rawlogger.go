package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// Direction tells a RawLogger which way bytes travelled.
type Direction bool

const (
	RX Direction = true  // received from the byte source
	TX Direction = false // written to a sender port
)

func (d Direction) String() string {
	if d == RX {
		return "RX"
	}
	return "TX"
}

// RawLogger handles raw byte logging with optional file output.
type RawLogger interface {
	Log(dir Direction, data []byte)
}

// rawLogger implements RawLogger with thread-safe logging.
type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

// Log emits a single-line raw log with timestamp and hex dump.
func (r *rawLogger) Log(dir Direction, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s %d bytes, hex: %s\n",
		r.now().Format("2006/01/02 15:04:05.000"),
		dir,
		len(data),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
