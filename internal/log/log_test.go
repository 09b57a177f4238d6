package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestHandlerSplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(NewHandler(&stdout, &stderr, LevelTrace))

	logger.Log(context.Background(), LevelTrace, "byte", "code", 0x41)
	logger.Info("started")
	logger.Error("boom")

	assert.Contains(t, stdout.String(), "level=TRACE")
	assert.Contains(t, stdout.String(), "msg=started")
	assert.NotContains(t, stdout.String(), "boom")
	assert.Contains(t, stderr.String(), "msg=boom")
	assert.NotContains(t, stderr.String(), "started")
}

func TestHandlerHonoursLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(NewHandler(&stdout, &stderr, slog.LevelWarn))

	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, stdout.String(), "quiet")
	assert.Contains(t, stdout.String(), "loud")
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	r := &rawLogger{w: &buf, now: func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }}

	r.Log(RX, []byte{0x93, 0x41})
	r.Log(TX, nil)
	r.Log(TX, []byte{0x0d})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"2024/05/01 12:00:00.000 RX 2 bytes, hex: 93 41",
		"2024/05/01 12:00:00.000 TX 1 bytes, hex: 0d",
	}, lines)
}

func TestRawLoggerNilWriter(t *testing.T) {
	assert.NotPanics(t, func() { NewRaw(nil).Log(RX, []byte{1}) })
}
