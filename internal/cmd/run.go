package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/petkey/petkey/internal/bridge"
	"github.com/petkey/petkey/internal/log"
	"github.com/petkey/petkey/output"
	"github.com/petkey/petkey/sequencer"
	"github.com/petkey/petkey/source"
	"github.com/petkey/petkey/status"
)

// Run types every received Commodore code on the host keyboard.
type Run struct {
	Source    string                 `help:"Where Commodore codes come from" enum:"serial,ws,tty,stdin" default:"serial" env:"PETKEY_SOURCE"`
	Serial    source.SerialConfig    `embed:"" prefix:"serial."`
	WS        source.WebSocketConfig `embed:"" prefix:"ws."`
	Output    string                 `help:"Keyboard to type on" enum:"gadget,viiper,log" default:"gadget" env:"PETKEY_OUTPUT"`
	Gadget    output.GadgetConfig    `embed:"" prefix:"gadget."`
	Viiper    output.ViiperConfig    `embed:"" prefix:"viiper."`
	Sequencer sequencer.Config       `embed:""`
	Bridge    bridge.Config          `embed:""`
	LED       string                 `help:"sysfs brightness file of the status LED" name:"led" env:"PETKEY_LED"`

	stdin io.Reader
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Start(ctx, logger, rawLogger)
}

// Start wires source, sink and bridge and blocks until the source ends or
// ctx is cancelled.
func (r *Run) Start(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	src, err := r.openSource(logger)
	if err != nil {
		return fmt.Errorf("open %s source: %w", r.Source, err)
	}
	defer src.Close()

	sink, err := r.openSink(ctx, logger)
	if err != nil {
		return fmt.Errorf("open %s output: %w", r.Output, err)
	}
	defer sink.Close()

	var ind status.Indicator = status.Nop{}
	if r.LED != "" {
		ind = status.NewLED(r.LED, logger)
	}

	logger.Info("petkey running", "source", r.Source, "output", r.Output, "hold", r.Sequencer.Hold, "deferredRelease", r.Sequencer.Deferred)
	b := bridge.New(src, sequencer.New(sink, r.Sequencer), ind, rawLogger, r.Bridge, logger)
	return b.Run(ctx)
}

func (r *Run) openSource(logger *slog.Logger) (source.ByteSource, error) {
	switch r.Source {
	case "serial":
		logger.Info("opening serial port", "device", r.Serial.Device, "baud", r.Serial.Baud)
		return source.OpenSerial(r.Serial)
	case "ws":
		return source.NewWebSocket(r.WS, logger)
	case "tty":
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("stdin is not a terminal")
		}
		return source.NewTerminal()
	case "stdin":
		in := r.stdin
		if in == nil {
			// Hide os.Stdin's Close from the reader.
			in = struct{ io.Reader }{os.Stdin}
		}
		return source.NewReader(in), nil
	default:
		return nil, fmt.Errorf("unknown source %q", r.Source)
	}
}

func (r *Run) openSink(ctx context.Context, logger *slog.Logger) (output.Sink, error) {
	switch r.Output {
	case "gadget":
		return output.OpenGadget(r.Gadget.Device)
	case "viiper":
		return output.OpenViiper(ctx, r.Viiper, logger)
	case "log":
		return output.NewLog(logger), nil
	default:
		return nil, fmt.Errorf("unknown output %q", r.Output)
	}
}
