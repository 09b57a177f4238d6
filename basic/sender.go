package basic

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/petkey/petkey/internal/log"
	"github.com/petkey/petkey/keymap"
)

// DefaultDelay paces bytes so the receiving side has typed the previous key
// (hold plus blink) before the next one arrives.
const DefaultDelay = 100 * time.Millisecond

// Sender writes codes to W one byte at a time.
type Sender struct {
	W     io.Writer
	Delay time.Duration
	// Raw, if set, gets a TX record of every byte written.
	Raw log.RawLogger
	// Progress, if set, is called after every byte with the count sent so far.
	Progress func(sent, total int)
}

// Send writes data, waiting Delay after each byte.
func (s *Sender) Send(ctx context.Context, data []byte) error {
	var t *time.Timer
	if s.Delay > 0 {
		t = time.NewTimer(s.Delay)
		defer t.Stop()
	}
	for i, b := range data {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.W.Write([]byte{b}); err != nil {
			return fmt.Errorf("write byte %d: %w", i, err)
		}
		if s.Raw != nil {
			s.Raw.Log(log.TX, []byte{b})
		}
		if s.Progress != nil {
			s.Progress(i+1, len(data))
		}
		if t == nil {
			continue
		}
		t.Reset(s.Delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

// LoadAndRun clears whatever is running, types NEW, the program and RUN.
func (s *Sender) LoadAndRun(ctx context.Context, program []byte) error {
	steps := [][]byte{
		{keymap.CodeRestore},
		[]byte("new\r"),
		program,
		[]byte("run\r"),
	}
	for _, step := range steps {
		if err := s.Send(ctx, step); err != nil {
			return err
		}
	}
	return nil
}
