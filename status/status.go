// Package status drives the activity LED that blinks once per typed key.
package status

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	// StartupBlink is shown once when the bridge comes up.
	StartupBlink = 200 * time.Millisecond
	// EventBlink is shown after every key sent to the host.
	EventBlink = 50 * time.Millisecond
)

// Indicator shows activity. Blink may block for up to d.
type Indicator interface {
	Blink(d time.Duration)
}

// Nop is an Indicator without hardware.
type Nop struct{}

func (Nop) Blink(time.Duration) {}

// LED toggles a Linux LED class device through its sysfs brightness file,
// e.g. /sys/class/leds/led0/brightness.
type LED struct {
	path   string
	logger *slog.Logger
	sleep  func(time.Duration)

	warned sync.Once
}

func NewLED(path string, logger *slog.Logger) *LED {
	return &LED{path: path, logger: logger, sleep: time.Sleep}
}

// Blink turns the LED on for d. A zero or negative d does nothing. Write
// failures are logged the first time and otherwise ignored.
func (l *LED) Blink(d time.Duration) {
	if d <= 0 {
		return
	}
	if err := l.set(true); err != nil {
		l.warn(err)
		return
	}
	l.sleep(d)
	if err := l.set(false); err != nil {
		l.warn(err)
	}
}

func (l *LED) set(on bool) error {
	v := []byte("0")
	if on {
		v = []byte("1")
	}
	if err := os.WriteFile(l.path, v, 0o644); err != nil {
		return fmt.Errorf("set led %s: %w", l.path, err)
	}
	return nil
}

func (l *LED) warn(err error) {
	l.warned.Do(func() {
		l.logger.Warn("status LED unavailable", "error", err)
	})
}
