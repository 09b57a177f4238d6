// Package sequencer turns a keymap.Descriptor into press and release calls on
// a keyboard output.
package sequencer

import (
	"errors"
	"fmt"
	"time"

	"github.com/petkey/petkey/keymap"
)

// DefaultHold is how long keys stay down before they are released.
const DefaultHold = 50 * time.Millisecond

// Sink is the keyboard output driven by the sequencer.
type Sink interface {
	// Press adds k to the set of held keys.
	Press(k keymap.KeyCode) error
	// ReleaseAll releases every held key.
	ReleaseAll() error
}

// Config controls key timing.
type Config struct {
	// Hold is the time between the last press and the release.
	Hold time.Duration `help:"Time keys are held before release" default:"50ms" env:"PETKEY_HOLD"`
	// Deferred makes Send return right after the presses; the release runs on a
	// timer and is awaited by the next Send or Flush.
	Deferred bool `help:"Release keys on a timer instead of blocking the loop" name:"deferred-release" env:"PETKEY_DEFERRED_RELEASE"`
}

// Sequencer presses the keys of one descriptor at a time.
type Sequencer struct {
	sink    Sink
	cfg     Config
	pending chan error
}

// New returns a Sequencer driving sink.
func New(sink Sink, cfg Config) *Sequencer {
	if cfg.Hold < 0 {
		cfg.Hold = 0
	}
	return &Sequencer{sink: sink, cfg: cfg}
}

// Send presses the modifiers of d in the order Ctrl, Shift, Alt, Gui, Esc,
// then its key, holds, and releases everything. A descriptor without a key
// causes no sink calls.
//
// The release is attempted on every path, including a failed press. After a
// failed press the remaining presses and the hold are skipped. The returned
// error joins the press error, the release error and any error of a deferred
// release from the previous call.
//
// A started sequence always runs to completion, hold included.
func (s *Sequencer) Send(d keymap.Descriptor) error {
	if d.IsNone() {
		return nil
	}
	prevErr := s.Flush()

	pressErr := s.press(d)
	if pressErr == nil && s.cfg.Deferred {
		done := make(chan error, 1)
		s.pending = done
		time.AfterFunc(s.cfg.Hold, func() {
			done <- s.release()
		})
		return prevErr
	}
	if pressErr == nil {
		time.Sleep(s.cfg.Hold)
	}
	return errors.Join(prevErr, pressErr, s.release())
}

// Flush waits for a pending deferred release and returns its error.
func (s *Sequencer) Flush() error {
	if s.pending == nil {
		return nil
	}
	err := <-s.pending
	s.pending = nil
	return err
}

func (s *Sequencer) press(d keymap.Descriptor) error {
	for _, k := range d.Mods.Keys() {
		if err := s.sink.Press(k); err != nil {
			return fmt.Errorf("press %v: %w", k, err)
		}
	}
	if err := s.sink.Press(d.Key); err != nil {
		return fmt.Errorf("press %v: %w", d.Key, err)
	}
	return nil
}

func (s *Sequencer) release() error {
	if err := s.sink.ReleaseAll(); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return nil
}
