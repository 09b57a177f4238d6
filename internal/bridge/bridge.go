// Package bridge runs the poll loop that carries bytes from a byte source
// through the mapping table and the sequencer to the keyboard output.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/petkey/petkey/internal/log"
	"github.com/petkey/petkey/keymap"
	"github.com/petkey/petkey/output"
	"github.com/petkey/petkey/sequencer"
	"github.com/petkey/petkey/source"
	"github.com/petkey/petkey/status"
)

// Config controls loop pacing.
type Config struct {
	PollInterval time.Duration `help:"Sleep between polls when no byte is waiting" default:"1ms" env:"PETKEY_POLL_INTERVAL"`
	Blink        time.Duration `help:"Status LED blink per key (0 disables)" default:"50ms" env:"PETKEY_BLINK"`
}

// Stats counts what happened to received bytes.
type Stats struct {
	Received uint64 // bytes read from the source
	Sent     uint64 // descriptors typed without error
	Dropped  uint64 // codes without a mapping
	Failed   uint64 // descriptors whose Send returned an error
}

type Bridge struct {
	src     source.ByteSource
	seq     *sequencer.Sequencer
	ind     status.Indicator
	raw     log.RawLogger
	cfg     Config
	session uuid.UUID
	logger  *slog.Logger

	received atomic.Uint64
	sent     atomic.Uint64
	dropped  atomic.Uint64
	failed   atomic.Uint64
}

// New wires a bridge. ind and raw may be nil.
func New(src source.ByteSource, seq *sequencer.Sequencer, ind status.Indicator, raw log.RawLogger, cfg Config, logger *slog.Logger) *Bridge {
	if ind == nil {
		ind = status.Nop{}
	}
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Millisecond
	}
	session := uuid.New()
	return &Bridge{
		src:     src,
		seq:     seq,
		ind:     ind,
		raw:     raw,
		cfg:     cfg,
		session: session,
		logger:  logger.With("session", session.String()),
	}
}

// SessionID identifies this bridge in logs.
func (b *Bridge) SessionID() string { return b.session.String() }

func (b *Bridge) Stats() Stats {
	return Stats{
		Received: b.received.Load(),
		Sent:     b.sent.Load(),
		Dropped:  b.dropped.Load(),
		Failed:   b.failed.Load(),
	}
}

// Run polls the source until ctx is cancelled or the source ends. io.EOF and
// cancellation are clean stops; any other source error is returned. A pending
// deferred release is always completed before Run returns.
func (b *Bridge) Run(ctx context.Context) (err error) {
	b.logger.Info("bridge started", "pollInterval", b.cfg.PollInterval)
	b.ind.Blink(status.StartupBlink)

	defer func() {
		if ferr := b.seq.Flush(); ferr != nil {
			b.failed.Add(1)
			b.logger.Warn("final release failed", "error", ferr)
		}
		st := b.Stats()
		b.logger.Info("bridge stopped", "received", st.Received, "sent", st.Sent, "dropped", st.Dropped, "failed", st.Failed)
	}()

	idle := time.NewTimer(b.cfg.PollInterval)
	defer idle.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		c, ok, rerr := b.src.TryReadByte()
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				b.logger.Info("byte source ended")
				return nil
			}
			return fmt.Errorf("byte source: %w", rerr)
		}
		if !ok {
			idle.Reset(b.cfg.PollInterval)
			select {
			case <-ctx.Done():
				return nil
			case <-idle.C:
			}
			continue
		}
		b.handle(ctx, c)
	}
}

func (b *Bridge) handle(ctx context.Context, c byte) {
	b.received.Add(1)
	b.raw.Log(log.RX, []byte{c})

	d := keymap.Map(c)
	if d.IsNone() {
		b.dropped.Add(1)
		b.logger.Debug("unmapped code dropped", "code", keymap.Name(c))
		return
	}

	b.logger.Log(ctx, log.LevelTrace, "typing", "code", keymap.Name(c), "keys", d.String())
	if err := b.seq.Send(d); err != nil {
		b.failed.Add(1)
		if errors.Is(err, output.ErrSinkUnavailable) {
			b.logger.Debug("keyboard not attached, code lost", "code", keymap.Name(c), "error", err)
		} else {
			b.logger.Warn("typing failed", "code", keymap.Name(c), "error", err)
		}
		return
	}
	b.sent.Add(1)
	// Only typed keys blink; dropped and failed codes leave the LED dark.
	b.ind.Blink(b.cfg.Blink)
}
