package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/petkey/petkey/basic"
	"github.com/petkey/petkey/internal/log"
	"github.com/petkey/petkey/source"
)

// Send types a BASIC listing through a serial port into a running bridge:
// RESTORE, NEW, the program and RUN.
type Send struct {
	Serial source.SerialConfig `embed:"" prefix:"serial."`
	Delay  time.Duration       `help:"Pause after every byte" default:"100ms" env:"PETKEY_SEND_DELAY"`
	Raw    bool                `help:"Send the file byte for byte, without tokenizing or NEW/RUN" env:"PETKEY_SEND_RAW"`
	File   string              `arg:"" type:"existingfile" help:"BASIC listing to send"`
}

func (s *Send) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port, err := source.OpenSerialWriter(s.Serial)
	if err != nil {
		return err
	}
	defer port.Close()

	var progress io.Writer
	if term.IsTerminal(int(os.Stdout.Fd())) {
		progress = os.Stdout
	}
	return s.send(ctx, port, progress, logger, rawLogger)
}

func (s *Send) send(ctx context.Context, w, progress io.Writer, logger *slog.Logger, rawLogger log.RawLogger) error {
	data, err := os.ReadFile(s.File)
	if err != nil {
		return err
	}

	sender := &basic.Sender{W: w, Delay: s.Delay, Raw: rawLogger}
	if progress != nil {
		sender.Progress = func(sent, total int) {
			fmt.Fprintf(progress, "\r%d/%d", sent, total)
			if sent == total {
				fmt.Fprintln(progress)
			}
		}
	}

	if s.Raw {
		logger.Info("sending file", "file", s.File, "bytes", len(data))
		return sender.Send(ctx, data)
	}

	program, err := basic.Program(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", s.File, err)
	}
	logger.Info("sending program", "file", s.File, "bytes", len(program), "eta", time.Duration(len(program)+8)*s.Delay)
	if err := sender.LoadAndRun(ctx, program); err != nil {
		return err
	}
	logger.Info("program sent", "file", s.File)
	return nil
}
