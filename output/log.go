package output

import (
	"fmt"
	"log/slog"

	"github.com/petkey/petkey/keymap"
)

// Log is a dry-run sink that logs the report each call would send.
type Log struct {
	logger *slog.Logger
	keys   held
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Press(k keymap.KeyCode) error {
	st, err := l.keys.press(k)
	if err != nil {
		return err
	}
	l.logger.Info("key down", "key", k.String(), "report", fmt.Sprintf("% x", st.BootReport()))
	return nil
}

func (l *Log) ReleaseAll() error {
	st := l.keys.release()
	l.logger.Info("keys up", "report", fmt.Sprintf("% x", st.BootReport()))
	return nil
}

func (l *Log) Close() error { return nil }
