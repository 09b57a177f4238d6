package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petkey/petkey/internal/log"
	internaltesting "github.com/petkey/petkey/internal/testing"
	"github.com/petkey/petkey/keymap"
	"github.com/petkey/petkey/output"
	"github.com/petkey/petkey/sequencer"
	"github.com/petkey/petkey/status"
)

type blinkRecorder struct {
	mu     sync.Mutex
	blinks []time.Duration
}

func (r *blinkRecorder) Blink(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blinks = append(r.blinks, d)
}

type rawRecorder struct {
	mu  sync.Mutex
	rx  []byte
	dir []log.Direction
}

func (r *rawRecorder) Log(dir log.Direction, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dir = append(r.dir, dir)
	r.rx = append(r.rx, data...)
}

var fast = Config{PollInterval: time.Millisecond, Blink: status.EventBlink}

func TestRunTypesUntilEOF(t *testing.T) {
	sink := &internaltesting.RecordingSink{}
	blinks := &blinkRecorder{}
	raw := &rawRecorder{}
	src := internaltesting.NewByteQueue(keymap.CodeClrHome, 0x00, 'A')
	src.Empty = 2

	b := New(src, sequencer.New(sink, sequencer.Config{}), blinks, raw, fast, log.Discard())
	require.NoError(t, b.Run(context.Background()))

	assert.Equal(t, []internaltesting.SinkCall{
		internaltesting.PressCall(keymap.KeyLeftShift),
		internaltesting.PressCall(keymap.KeyHome),
		internaltesting.ReleaseCall(),
		internaltesting.PressCall('A'),
		internaltesting.ReleaseCall(),
	}, sink.Calls())
	assert.Equal(t, Stats{Received: 3, Sent: 2, Dropped: 1}, b.Stats())
	assert.Equal(t, []time.Duration{status.StartupBlink, status.EventBlink, status.EventBlink}, blinks.blinks)
	assert.Equal(t, []byte{keymap.CodeClrHome, 0x00, 'A'}, raw.rx)
	assert.Equal(t, []log.Direction{log.RX, log.RX, log.RX}, raw.dir)
}

func TestRunReturnsSourceError(t *testing.T) {
	boom := errors.New("uart gone")
	src := internaltesting.NewByteQueue('x')
	src.End = boom
	sink := &internaltesting.RecordingSink{}

	err := New(src, sequencer.New(sink, sequencer.Config{}), nil, nil, fast, log.Discard()).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, sink.Calls(), 2)
}

func TestRunStopsOnCancel(t *testing.T) {
	src := internaltesting.NewByteQueue()
	src.End = nil
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	sink := &internaltesting.RecordingSink{}
	err := New(src, sequencer.New(sink, sequencer.Config{}), nil, nil, fast, log.Discard()).Run(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sink.Calls())
}

func TestSendFailuresDoNotStopTheLoop(t *testing.T) {
	sink := &internaltesting.RecordingSink{FailRelease: true}
	blinks := &blinkRecorder{}
	src := internaltesting.NewByteQueue('a', 'b')

	b := New(src, sequencer.New(sink, sequencer.Config{}), blinks, nil, fast, log.Discard())
	require.NoError(t, b.Run(context.Background()))

	assert.Equal(t, Stats{Received: 2, Failed: 2}, b.Stats())
	assert.Equal(t, []time.Duration{status.StartupBlink}, blinks.blinks)
}

type unavailableSink struct{ internaltesting.RecordingSink }

func (s *unavailableSink) Press(k keymap.KeyCode) error {
	_ = s.RecordingSink.Press(k)
	return fmt.Errorf("%w: host not attached", output.ErrSinkUnavailable)
}

func TestUnavailableSinkIsLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewHandler(&buf, &buf, log.LevelTrace)
	sink := &unavailableSink{}

	b := New(internaltesting.NewByteQueue('q'), sequencer.New(sink, sequencer.Config{}), nil, nil, fast, slog.New(logger))
	require.NoError(t, b.Run(context.Background()))

	assert.Equal(t, uint64(1), b.Stats().Failed)
	assert.Contains(t, buf.String(), `level=DEBUG msg="keyboard not attached, code lost"`)
	assert.NotContains(t, buf.String(), "level=WARN")
}

type cancelOnPressSink struct {
	internaltesting.RecordingSink
	cancel context.CancelFunc
}

func (s *cancelOnPressSink) Press(k keymap.KeyCode) error {
	s.cancel()
	return s.RecordingSink.Press(k)
}

func TestCancelDuringHoldFinishesKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := &cancelOnPressSink{cancel: cancel}
	hold := 30 * time.Millisecond

	b := New(internaltesting.NewByteQueue('a', 'b'), sequencer.New(sink, sequencer.Config{Hold: hold}), nil, nil, fast, log.Discard())
	start := time.Now()
	require.NoError(t, b.Run(ctx))

	assert.GreaterOrEqual(t, time.Since(start), hold)
	assert.Equal(t, []internaltesting.SinkCall{internaltesting.PressCall('a'), internaltesting.ReleaseCall()}, sink.Calls())
	assert.Equal(t, Stats{Received: 1, Sent: 1}, b.Stats())
}

func TestDeferredReleaseFlushedOnExit(t *testing.T) {
	sink := &internaltesting.RecordingSink{}
	seq := sequencer.New(sink, sequencer.Config{Hold: 20 * time.Millisecond, Deferred: true})

	b := New(internaltesting.NewByteQueue(keymap.CodeReturn), seq, nil, nil, fast, log.Discard())
	require.NoError(t, b.Run(context.Background()))

	assert.Equal(t, []internaltesting.SinkCall{
		internaltesting.PressCall(keymap.KeyReturn),
		internaltesting.ReleaseCall(),
	}, sink.Calls())
}

func TestSessionID(t *testing.T) {
	seq := sequencer.New(&internaltesting.RecordingSink{}, sequencer.Config{})
	a := New(internaltesting.NewByteQueue(), seq, nil, nil, Config{}, log.Discard())
	b := New(internaltesting.NewByteQueue(), seq, nil, nil, Config{}, log.Discard())

	_, err := uuid.Parse(a.SessionID())
	assert.NoError(t, err)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}
